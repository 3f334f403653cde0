// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import (
	"sort"

	"github.com/kortschak/msengine/mserr"
	"github.com/kortschak/msengine/msdata"
)

// BuildParams governs the whole construction algorithm of spec.md
// §4.5.
type BuildParams struct {
	Digest DigestParams

	MinMass, MaxMass float64 // precursor mass filter, 0 disables a bound

	FixedMods                 []string
	VariableMods              []string
	MaxVariableModsPerPeptide int

	FragmentMinMZ, FragmentMaxMZ float64
	BucketSize                   int
}

// Build runs the full construction algorithm: digestion, modification
// expansion, precursor-mass sort, fragment generation, and bucketing,
// returning a queryable in-memory index. Single-threaded by contract
// (spec.md §5: the index is built single-threaded, then queried
// concurrently read-only).
func Build(proteins []Protein, params BuildParams) (*MemIndex, error) {
	if params.BucketSize <= 0 {
		return nil, mserr.New(mserr.IllegalArgument, "fragindex.Build", errBadBucketSize{})
	}

	var peptides []Peptide
	for proteinIdx, p := range proteins {
		for _, c := range Digest(p.Sequence, params.Digest) {
			plain := p.Sequence[c.Offset : c.Offset+c.Length]
			seq, err := msdata.ParseUnmodified(plain)
			if err != nil {
				// A peptide with a residue ParseUnmodified rejects is
				// simply dropped from the candidate set. The ambiguous
				// codes B, Z, J and X are not rejected: ResidueDB lists
				// them (B, Z and J with averaged masses, X with mass 0),
				// so such peptides are kept.
				continue
			}
			seq = ApplyFixedMods(seq, params.FixedMods)
			variants := ExpandVariableMods(seq, params.VariableMods, params.MaxVariableModsPerPeptide)
			for comboIdx, v := range variants {
				mass, ok := precursorMass(v)
				if !ok {
					continue
				}
				if params.MinMass > 0 && mass < params.MinMass {
					continue
				}
				if params.MaxMass > 0 && mass > params.MaxMass {
					continue
				}
				peptides = append(peptides, Peptide{
					ProteinIdx:  proteinIdx,
					Offset:      c.Offset,
					Length:      c.Length,
					ModComboIdx: comboIdx,
					Mass:        mass,
					Sequence:    v,
				})
			}
		}
	}

	// Step 3: sort peptides ascending by precursor mass. Peptide index
	// is now this sorted position.
	sort.Slice(peptides, func(i, j int) bool { return peptides[i].Mass < peptides[j].Mass })

	// Step 4: generate b-/y-ion fragments per peptide.
	var fragments []Fragment
	for idx, p := range peptides {
		mzs, err := generateIonMZs(p.Sequence, params.FragmentMinMZ, params.FragmentMaxMZ)
		if err != nil {
			return nil, err
		}
		for _, mz := range mzs {
			fragments = append(fragments, Fragment{PeptideIdx: idx, MZ: mz})
		}
	}

	// Step 5: sort fragments globally by m/z, bucket into fixed-size
	// blocks, record each bucket's minimum m/z before the
	// within-bucket peptide-index re-sort, then re-sort each bucket by
	// owning peptide index.
	sort.Slice(fragments, func(i, j int) bool { return fragments[i].MZ < fragments[j].MZ })

	var buckets []bucket
	for start := 0; start < len(fragments); start += params.BucketSize {
		end := start + params.BucketSize
		if end > len(fragments) {
			end = len(fragments)
		}
		block := append([]Fragment{}, fragments[start:end]...)
		minMZ := block[0].MZ
		sort.Slice(block, func(i, j int) bool { return block[i].PeptideIdx < block[j].PeptideIdx })
		buckets = append(buckets, bucket{minMZ: minMZ, fragments: block})
	}

	return &MemIndex{peptides: peptides, buckets: buckets}, nil
}

type errBadBucketSize struct{}

func (errBadBucketSize) Error() string { return "BucketSize must be positive" }
