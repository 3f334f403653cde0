// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fragindex implements the fragment-indexed peptide database of
// spec.md §4.5: digestion and modification expansion of protein
// sequences into candidate peptides, a bucketed fragment table for
// sub-linear peptide-spectrum matching, and the query algorithm that
// recovers candidate peptides from an observed precursor mass and
// fragment peak list.
package fragindex

import "github.com/kortschak/msengine/msdata"

// ProtonMass is the monoisotopic mass of a proton, added once per
// charge when converting between neutral mass and m/z.
const ProtonMass = 1.00727646688

// Peptide is one candidate generated by digestion and modification
// expansion, per spec.md §4.5's Peptide structure.
type Peptide struct {
	ProteinIdx  int
	Offset      int // residue offset into the owning protein's sequence
	Length      int
	ModComboIdx int
	Mass        float64 // neutral monoisotopic precursor mass
	Sequence    msdata.AASequence
}

// Fragment is one theoretical b- or y-ion, tagged with the peptide it
// was generated from, per spec.md §4.5's Fragment structure.
type Fragment struct {
	PeptideIdx int
	MZ         float64
}

// Protein is one FASTA-style input sequence.
type Protein struct {
	Name     string
	Sequence string
}
