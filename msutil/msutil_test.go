// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msutil

import (
	"testing"

	"github.com/kortschak/msengine/msdata"
)

func TestMatchedIteratorSkipsUnmatched(t *testing.T) {
	a := []float64{1, 5, 10, 20}
	b := []float64{1.01, 9.98, 19.5}
	it := NewMatchedIterator(a, b, AbsoluteTolerance{Delta: 0.1})

	var got []Match
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, m)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches (5 has none within tolerance), got %d: %+v", len(got), got)
	}
	if got[0].A != 1 || got[0].B != 1.01 {
		t.Fatalf("unexpected first match: %+v", got[0])
	}
	if got[1].A != 10 || got[1].B != 9.98 {
		t.Fatalf("unexpected second match: %+v", got[1])
	}
}

func TestMatchedIteratorPPMTolerance(t *testing.T) {
	a := []float64{500.0}
	b := []float64{500.002}
	it := NewMatchedIterator(a, b, PPMTolerance{PPM: 10})
	m, ok := it.Next()
	if !ok {
		t.Fatal("expected a match within 10 ppm of 500")
	}
	if m.B != 500.002 {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestExtractTagsFindsKnownSequence(t *testing.T) {
	db := msdata.GlobalResidueDB()
	gMass, _ := db.MonoMass('G')
	aMass, _ := db.MonoMass('A')
	sMass, _ := db.MonoMass('S')

	mzs := []float64{100, 100 + gMass, 100 + gMass + aMass, 100 + gMass + aMass + sMass}
	tags := ExtractTags(mzs, db.MonoMass, TagPPMTolerance(20), 3, 3)

	found := false
	for _, tag := range tags {
		if tag.Sequence == "GAS" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to recover tag GAS from the ladder, got %+v", tags)
	}
}

func TestExtractTagsRespectsLengthBounds(t *testing.T) {
	db := msdata.GlobalResidueDB()
	gMass, _ := db.MonoMass('G')
	mzs := []float64{100, 100 + gMass}
	tags := ExtractTags(mzs, db.MonoMass, TagPPMTolerance(20), 2, 5)
	for _, tag := range tags {
		if len(tag.Sequence) < 2 {
			t.Fatalf("tag shorter than minLen: %+v", tag)
		}
	}
}

func TestRangeMobilityHalfOpen(t *testing.T) {
	r := RangeMobility{Lower: 1, Upper: 2}
	if !r.Contains(1) {
		t.Fatal("expected lower bound to be included")
	}
	if r.Contains(2) {
		t.Fatal("expected upper bound to be excluded")
	}
	if r.Empty() {
		t.Fatal("expected non-empty range")
	}
}
