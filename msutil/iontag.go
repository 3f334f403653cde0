// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msutil

import "github.com/kortschak/msengine/msdata"

// residueMassTable maps an amino acid code to its residue mass; callers
// typically pass msdata.GlobalResidueDB().MonoMass as the lookup.
type residueMassTable func(code byte) (float64, bool)

// TagPPMTolerance bounds how far an m/z gap may drift from a candidate
// residue mass and still be accepted as that residue.
type TagPPMTolerance float64

func (t TagPPMTolerance) within(gap, residueMass float64) bool {
	if residueMass == 0 {
		return false
	}
	d := gap - residueMass
	if d < 0 {
		d = -d
	}
	return d/residueMass <= float64(t)*1e-6
}

// Tag is one sequence tag recovered from a peak ladder: the residues
// read off consecutive m/z gaps, and the indices of the peaks spanning
// it.
type Tag struct {
	Sequence    string
	PeakIndices []int
}

// ExtractTags runs the DFS ion-series tagger of spec.md §4.8 over an
// ascending peak list: from every starting peak it extends a tag by
// matching consecutive m/z differences against amino-acid residue
// masses (branching on L/I, which share a mass), yielding every tag
// whose length falls within [minLen, maxLen].
func ExtractTags(mzs []float64, masses residueMassTable, ppmTol TagPPMTolerance, minLen, maxLen int) []Tag {
	var tags []Tag
	for start := range mzs {
		var path []byte
		var idx []int
		dfs(mzs, start, masses, ppmTol, minLen, maxLen, path, append(idx, start), &tags)
	}
	return tags
}

func dfs(mzs []float64, cur int, masses residueMassTable, ppmTol TagPPMTolerance, minLen, maxLen int, path []byte, idx []int, tags *[]Tag) {
	if len(path) >= minLen && len(path) <= maxLen {
		seq := make([]byte, len(path))
		copy(seq, path)
		peaks := make([]int, len(idx))
		copy(peaks, idx)
		*tags = append(*tags, Tag{Sequence: string(seq), PeakIndices: peaks})
	}
	if len(path) >= maxLen {
		return
	}
	for next := cur + 1; next < len(mzs); next++ {
		gap := mzs[next] - mzs[cur]
		for code := byte('A'); code <= 'Z'; code++ {
			m, ok := masses(code)
			if !ok || !ppmTol.within(gap, m) {
				continue
			}
			dfs(mzs, next, masses, ppmTol, minLen, maxLen, append(path, code), append(idx, next), tags)
		}
	}
}

// ResidueDBLookup adapts msdata.ResidueDB.MonoMass to residueMassTable.
func ResidueDBLookup(db *msdata.ResidueDB) residueMassTable {
	return db.MonoMass
}
