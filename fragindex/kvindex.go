// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import (
	"io"
	"sort"

	"modernc.org/kv"

	"github.com/kortschak/msengine/internal/store"
	"github.com/kortschak/msengine/mserr"
)

// KVIndex is the persisted variant of MemIndex: peptides stay resident
// (their table is small relative to the fragment table and the
// construction/query algorithm only ever binary-searches it), while
// fragments are written to a modernc.org/kv store ordered by
// (bucket, peptide index, fragment m/z) via store.ByBucketThenPeptide,
// so that a bucket's peptide-index subrange (spec.md §4.5 step 3b) is
// a contiguous key range the store's own sorted iteration already
// gives us.
type KVIndex struct {
	peptides []Peptide
	bucketMZ []float64 // per-bucket minimum fragment m/z, same order as on-disk bucket numbers
	db       *kv.DB
}

// BuildKV runs the same construction algorithm as Build, persisting the
// fragment table to path rather than keeping it as an in-memory slice.
func BuildKV(path string, proteins []Protein, params BuildParams) (*KVIndex, error) {
	mem, err := Build(proteins, params)
	if err != nil {
		return nil, err
	}

	db, err := kv.Create(path, &kv.Options{Compare: store.ByBucketThenPeptide})
	if err != nil {
		return nil, mserr.New(mserr.UnableToCreateFile, "fragindex.BuildKV", err)
	}

	bucketMZ := make([]float64, len(mem.buckets))
	for bi, b := range mem.buckets {
		bucketMZ[bi] = b.minMZ
		for _, f := range b.fragments {
			key := store.MarshalFragmentKey(store.FragmentKey{
				Bucket:     int32(bi),
				PeptideIdx: int32(f.PeptideIdx),
				FragmentMZ: f.MZ,
			})
			if err := db.Set(key, nil); err != nil {
				db.Close()
				return nil, mserr.New(mserr.UnableToCreateFile, "fragindex.BuildKV", err)
			}
		}
	}

	return &KVIndex{peptides: mem.peptides, bucketMZ: bucketMZ, db: db}, nil
}

// OpenKV opens a fragment store previously written by BuildKV, paired
// with its in-memory peptide table (the peptide table is small and is
// not itself persisted by this package; callers that need to survive a
// process restart serialize it separately, e.g. with encoding/gob).
func OpenKV(path string, peptides []Peptide, bucketMZ []float64) (*KVIndex, error) {
	db, err := kv.Open(path, &kv.Options{Compare: store.ByBucketThenPeptide})
	if err != nil {
		return nil, mserr.New(mserr.FileNotReadable, "fragindex.OpenKV", err)
	}
	return &KVIndex{peptides: peptides, bucketMZ: bucketMZ, db: db}, nil
}

func (idx *KVIndex) Close() error { return idx.db.Close() }

func (idx *KVIndex) NumPeptides() int { return len(idx.peptides) }

func (idx *KVIndex) Peptide(i int) Peptide { return idx.peptides[i] }

// Peptides returns the full peptide table, for a builder to persist
// alongside the on-disk fragment store so a later process can reopen it
// with OpenKV (see cmd/fragindex-build).
func (idx *KVIndex) Peptides() []Peptide { return idx.peptides }

// BucketBoundaries returns the per-bucket minimum fragment m/z table
// OpenKV needs to reconstruct a KVIndex in a later process.
func (idx *KVIndex) BucketBoundaries() []float64 { return idx.bucketMZ }

// SeekFirst returns an enumerator positioned at the first stored
// fragment key, for callers that inspect the raw store directly (see
// cmd/fragindex-audit) rather than querying through Query.
func (idx *KVIndex) SeekFirst() (*kv.Enumerator, error) { return idx.db.SeekFirst() }

// Query mirrors MemIndex.Query, but walks the on-disk bucket range with
// a kv.Enumerator seeked to the bucket's first key instead of slicing
// an in-memory block.
func (idx *KVIndex) Query(params QueryParams, peaks []Peak) ([]Hit, error) {
	neutralMass := float64(params.Charge) * (params.PrecursorMZ - ProtonMass)
	delta := neutralMass*params.PrecursorPPMTol*1e-6 + params.OpenSearchWindow
	lo, hi := neutralMass-delta, neutralMass+delta

	pLo := sort.Search(len(idx.peptides), func(i int) bool { return idx.peptides[i].Mass >= lo })
	pHi := sort.Search(len(idx.peptides), func(i int) bool { return idx.peptides[i].Mass > hi })
	if pLo >= pHi {
		return nil, nil
	}

	counts := make(map[int]int)
	for _, pk := range peaks {
		eps := pk.MZ * params.FragmentPPMTol * 1e-6
		if err := idx.matchPeak(pk.MZ, eps, pLo, pHi, counts); err != nil {
			return nil, err
		}
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
	return hits, nil
}

func (idx *KVIndex) matchPeak(mz, eps float64, pLo, pHi int, counts map[int]int) error {
	start := sort.Search(len(idx.bucketMZ), func(i int) bool { return idx.bucketMZ[i] > mz-eps })
	if start > 0 {
		start--
	}
	for bi := start; bi < len(idx.bucketMZ); bi++ {
		if idx.bucketMZ[bi] > mz+eps {
			break
		}
		seekKey := store.MarshalFragmentKey(store.FragmentKey{Bucket: int32(bi), PeptideIdx: int32(pLo), FragmentMZ: 0})
		enum, _, err := idx.db.Seek(seekKey)
		if err != nil {
			return mserr.New(mserr.ParseError, "fragindex.KVIndex.matchPeak", err)
		}
		for {
			k, _, err := enum.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return mserr.New(mserr.ParseError, "fragindex.KVIndex.matchPeak", err)
			}
			fk := store.UnmarshalFragmentKey(k)
			if fk.Bucket != int32(bi) || int(fk.PeptideIdx) >= pHi {
				break
			}
			if fk.FragmentMZ >= mz-eps && fk.FragmentMZ <= mz+eps {
				counts[int(fk.PeptideIdx)]++
			}
		}
	}
	return nil
}
