// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

// bucket is a fixed-size block of fragments sorted by owning peptide
// index, with the minimum fragment m/z it held before that re-sort.
type bucket struct {
	minMZ     float64
	fragments []Fragment
}

// MemIndex is the in-memory, slice-backed fragment index: the direct
// product of Build, and the variant small inputs and tests query
// against without needing the on-disk KVIndex.
type MemIndex struct {
	peptides []Peptide
	buckets  []bucket
}

func (idx *MemIndex) NumPeptides() int { return len(idx.peptides) }

func (idx *MemIndex) Peptide(i int) Peptide { return idx.peptides[i] }
