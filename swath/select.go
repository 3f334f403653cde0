// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

// SelectSwathTransitions picks transitions whose precursor m/z is
// strictly inside (lower, upper) and at least minUpperEdgeDist Th from
// the upper edge, per spec.md §4.6's selectSwathTransitions contract.
// The referenced peptides and proteins are pulled in transitively.
func SelectSwathTransitions(te TargetedExperiment, lower, upper, minUpperEdgeDist float64) TargetedExperiment {
	var kept []Transition
	peptideRefs := make(map[string]bool)
	for _, t := range te.Transitions {
		if t.PrecursorMZ <= lower || t.PrecursorMZ >= upper {
			continue
		}
		if upper-t.PrecursorMZ < minUpperEdgeDist {
			continue
		}
		kept = append(kept, t)
		peptideRefs[t.PeptideRef] = true
	}

	var peptides []Peptide
	proteinRefs := make(map[string]bool)
	for _, p := range te.Peptides {
		if !peptideRefs[p.Ref] {
			continue
		}
		peptides = append(peptides, p)
		for _, pr := range p.ProteinRefs {
			proteinRefs[pr] = true
		}
	}

	var proteins []string
	for _, p := range te.Proteins {
		if proteinRefs[p] {
			proteins = append(proteins, p)
		}
	}

	return TargetedExperiment{Proteins: proteins, Peptides: peptides, Transitions: kept}
}
