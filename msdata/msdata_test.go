// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "testing"

func TestSpectrumSortIdempotent(t *testing.T) {
	s := NewSpectrum("scan=1", 12.5, 1)
	s.SetPeaks([]Peak1D{{MZ: 3, Intensity: 1}, {MZ: 1, Intensity: 2}, {MZ: 2, Intensity: 3}})
	if s.IsSorted() {
		t.Fatal("unsorted input reported as sorted")
	}
	s.SortByMZ()
	if !s.IsSorted() {
		t.Fatal("IsSorted false after SortByMZ")
	}
	want := []float64{1, 2, 3}
	for i, p := range s.Peaks {
		if p.MZ != want[i] {
			t.Fatalf("peak %d: got %v want %v", i, p.MZ, want[i])
		}
	}
	// Idempotence: calling again is a no-op.
	before := append([]Peak1D(nil), s.Peaks...)
	s.SortByMZ()
	for i, p := range s.Peaks {
		if p != before[i] {
			t.Fatalf("second sort mutated peak %d", i)
		}
	}
}

func TestExperimentUpdateRangesEmpty(t *testing.T) {
	e := NewExperiment()
	e.UpdateRanges()
	r := e.Ranges()
	if !r.Empty() {
		t.Fatal("empty experiment should have empty ranges")
	}
	if e.Size() != 0 {
		t.Fatal("empty experiment should report size 0")
	}
}

func TestExperimentUpdateRangesIdempotent(t *testing.T) {
	e := NewExperiment()
	s := NewSpectrum("scan=1", 10, 1)
	s.SetPeaks([]Peak1D{{MZ: 100, Intensity: 5}, {MZ: 200, Intensity: 10}})
	e.AddSpectrum(s)
	e.UpdateRanges()
	r1 := e.Ranges()
	e.UpdateRanges()
	r2 := e.Ranges()
	if r1 != r2 {
		t.Fatalf("UpdateRanges not idempotent: %+v vs %+v", r1, r2)
	}
	if r1.MZ.Min != 100 || r1.MZ.Max != 200 {
		t.Fatalf("unexpected mz range: %+v", r1.MZ)
	}
}

func TestUniqueIdIndexerRebuild(t *testing.T) {
	fm := NewFeatureMap()
	fm.Add(&Feature{UID: 1})
	fm.Add(&Feature{UID: 2})
	fm.Add(&Feature{UID: InvalidUID})
	if err := fm.RebuildIndex(); err != nil {
		t.Fatal(err)
	}
	f, ok := fm.ByUID(2)
	if !ok || f.UID != 2 {
		t.Fatal("expected to find feature with uid 2")
	}
	if _, ok := fm.ByUID(999); ok {
		t.Fatal("expected miss for unknown uid")
	}
}

func TestUniqueIdIndexerDuplicateIsPostcondition(t *testing.T) {
	fm := NewFeatureMap()
	fm.Add(&Feature{UID: 7})
	fm.Add(&Feature{UID: 7})
	err := fm.RebuildIndex()
	if err == nil {
		t.Fatal("expected error for duplicate uid")
	}
}

func TestConsensusFeatureWeightedMean(t *testing.T) {
	c := &ConsensusFeature{Members: []FeatureHandle{
		{RT: 10, MZ: 500, Intensity: 100},
		{RT: 20, MZ: 502, Intensity: 300},
	}}
	wantRT := (10.0*100 + 20.0*300) / 400
	if got := c.RT(); got != wantRT {
		t.Fatalf("RT: got %v want %v", got, wantRT)
	}
	wantMZ := (500.0*100 + 502.0*300) / 400
	if got := c.MZ(); got != wantMZ {
		t.Fatalf("MZ: got %v want %v", got, wantMZ)
	}
}

func TestAASequenceMonoMass(t *testing.T) {
	seq, err := ParseUnmodified("PEPTIDE")
	if err != nil {
		t.Fatal(err)
	}
	m, err := seq.MonoMass()
	if err != nil {
		t.Fatal(err)
	}
	// PEPTIDE monoisotopic neutral mass is a well known reference value
	// (~799.36 Da); assert within a coarse tolerance given our literal
	// residue mass table.
	if m < 799 || m > 800 {
		t.Fatalf("unexpected PEPTIDE mass: %v", m)
	}
}

func TestRangeQuery(t *testing.T) {
	var idx Range1DIndex
	idx.Insert(0, 10, 0)
	idx.Insert(20, 30, 1)
	idx.Insert(5, 25, 2)
	idx.Build()
	got := idx.Query(8, 22)
	seen := map[int]bool{}
	for _, g := range got {
		seen[g] = true
	}
	if !seen[0] || !seen[1] || !seen[2] {
		t.Fatalf("expected all three intervals to be hit, got %v", got)
	}
}
