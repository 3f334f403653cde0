// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import "sort"

// Peak is one observed fragment ion.
type Peak struct {
	MZ        float64
	Intensity float64
}

// QueryParams governs a single-spectrum query, spec.md §4.5's query
// algorithm.
type QueryParams struct {
	PrecursorMZ      float64
	Charge           int
	PrecursorPPMTol  float64 // ppm tolerance combined into the mass window
	OpenSearchWindow float64 // additional constant Da window; 0 for closed search
	FragmentPPMTol   float64
	TopN             int
}

// Hit aggregates the fragments of one peptide that matched an observed
// peak list.
type Hit struct {
	PeptideIdx int
	NumMatched int
	Score      float64 // sum of matched fragments' contribution; ties broken by NumMatched
}

// Query implements spec.md §4.5's query algorithm: a precursor mass
// window narrows the candidate peptide-index range, then each observed
// peak is matched against the bucketed fragment table within that
// range.
func (idx *MemIndex) Query(params QueryParams, peaks []Peak) []Hit {
	neutralMass := float64(params.Charge) * (params.PrecursorMZ - ProtonMass)
	delta := neutralMass*params.PrecursorPPMTol*1e-6 + params.OpenSearchWindow
	lo, hi := neutralMass-delta, neutralMass+delta

	pLo := sort.Search(len(idx.peptides), func(i int) bool { return idx.peptides[i].Mass >= lo })
	pHi := sort.Search(len(idx.peptides), func(i int) bool { return idx.peptides[i].Mass > hi })
	if pLo >= pHi {
		return nil
	}

	counts := make(map[int]int)
	for _, pk := range peaks {
		eps := pk.MZ * params.FragmentPPMTol * 1e-6
		idx.matchPeak(pk.MZ, eps, pLo, pHi, counts)
	}

	hits := make([]Hit, 0, len(counts))
	for pIdx, n := range counts {
		hits = append(hits, Hit{PeptideIdx: pIdx, NumMatched: n, Score: float64(n)})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].NumMatched != hits[j].NumMatched {
			return hits[i].NumMatched > hits[j].NumMatched
		}
		return hits[i].PeptideIdx < hits[j].PeptideIdx
	})
	if params.TopN > 0 && len(hits) > params.TopN {
		hits = hits[:params.TopN]
	}
	return hits
}

// matchPeak implements steps 3a-3c: locate candidate buckets by m/z,
// then within each bucket extract the peptide-index subrange
// intersecting [pLo,pHi) and check fragment m/z tolerance.
func (idx *MemIndex) matchPeak(mz, eps float64, pLo, pHi int, counts map[int]int) {
	start := sort.Search(len(idx.buckets), func(i int) bool { return idx.buckets[i].minMZ > mz-eps })
	if start > 0 {
		start--
	}
	for bi := start; bi < len(idx.buckets); bi++ {
		b := idx.buckets[bi]
		if b.minMZ > mz+eps {
			break
		}
		frags := b.fragments
		lo := sort.Search(len(frags), func(i int) bool { return frags[i].PeptideIdx >= pLo })
		hi := sort.Search(len(frags), func(i int) bool { return frags[i].PeptideIdx >= pHi })
		for _, f := range frags[lo:hi] {
			if f.MZ >= mz-eps && f.MZ <= mz+eps {
				counts[f.PeptideIdx]++
			}
		}
	}
}
