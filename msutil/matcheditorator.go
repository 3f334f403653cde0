// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msutil collects cross-cutting utilities used by several
// components: matching two sorted sequences within a tolerance,
// extracting sequence tags from a peak ladder, and a half-open interval
// type for ion-mobility filtering (spec.md §4.8).
package msutil

// Tolerance reports whether target is within tolerance of ref, per
// spec.md §4.8's "tolerance trait (absolute or ppm)".
type Tolerance interface {
	Within(ref, target float64) bool
}

// AbsoluteTolerance matches when |target-ref| <= Delta.
type AbsoluteTolerance struct{ Delta float64 }

func (t AbsoluteTolerance) Within(ref, target float64) bool {
	return absf(target-ref) <= t.Delta
}

// PPMTolerance matches when |target-ref|/ref <= PPM*1e-6.
type PPMTolerance struct{ PPM float64 }

func (t PPMTolerance) Within(ref, target float64) bool {
	if ref == 0 {
		return target == 0
	}
	return absf(target-ref)/ref <= t.PPM*1e-6
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Match pairs one A element with its closest B element.
type Match struct {
	AIndex, BIndex int
	A, B           float64
}

// MatchedIterator walks sorted sequences A (reference) and B (target)
// forward-only, per spec.md §4.8: for each element of A it yields the
// closest element of B within tol, skipping A elements with no match. A
// and B must both be ascending. The B cursor never moves backward across
// calls to Next, the classic merge-closest two-pointer technique.
type MatchedIterator struct {
	a, b []float64
	tol  Tolerance
	ai   int
	bi   int
}

// NewMatchedIterator constructs an iterator over ascending a and b.
func NewMatchedIterator(a, b []float64, tol Tolerance) *MatchedIterator {
	return &MatchedIterator{a: a, b: b, tol: tol}
}

// Next advances to the next matched pair, returning ok=false once A is
// exhausted.
func (it *MatchedIterator) Next() (m Match, ok bool) {
	for it.ai < len(it.a) {
		ref := it.a[it.ai]
		if len(it.b) == 0 {
			it.ai++
			continue
		}
		if it.bi >= len(it.b) {
			it.bi = len(it.b) - 1
		}
		for it.bi+1 < len(it.b) && absf(it.b[it.bi+1]-ref) <= absf(it.b[it.bi]-ref) {
			it.bi++
		}
		cand := it.b[it.bi]
		i := it.ai
		it.ai++
		if !it.tol.Within(ref, cand) {
			continue
		}
		return Match{AIndex: i, BIndex: it.bi, A: ref, B: cand}, true
	}
	return Match{}, false
}
