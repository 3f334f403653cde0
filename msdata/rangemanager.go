// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import (
	"math"

	"github.com/biogo/store/interval"
)

// Range1D is a closed [Min, Max] interval over one dimension. The zero
// value is not "empty" on its own; Empty must be consulted by callers that
// construct a Range1D incrementally (see Experiment.UpdateRanges).
type Range1D struct {
	Min, Max float64
}

// sentinelRange is what an empty dimension reports: Min above Max so that
// any comparison against it is trivially false, matching the "empty maps
// propagate empty ranges" boundary behavior (spec.md §8).
var sentinelRange = Range1D{Min: math.Inf(1), Max: math.Inf(-1)}

func (r Range1D) Empty() bool { return r.Min > r.Max }

func (r Range1D) Contains(v float64) bool { return !r.Empty() && v >= r.Min && v <= r.Max }

func (r *Range1D) extend(v float64) {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}

// RangeManager is the abstract 2D range (RT × m/z) plus an intensity range,
// recomputed by Experiment.UpdateRanges. DIMENSION in the spec's abstract
// design is realized here as the pair (RT, MZ); intensity is tracked
// alongside since Experiment.UpdateRanges computes it in the same pass.
type RangeManager struct {
	RT        Range1D
	MZ        Range1D
	Intensity Range1D
}

// Clear resets all three dimensions to their empty sentinel.
func (rm *RangeManager) Clear() {
	rm.RT = sentinelRange
	rm.MZ = sentinelRange
	rm.Intensity = sentinelRange
}

// NewRangeManager returns a RangeManager initialized to the empty sentinel.
func NewRangeManager() *RangeManager {
	rm := &RangeManager{}
	rm.Clear()
	return rm
}

// Empty reports whether every dimension is still at its sentinel.
func (rm *RangeManager) Empty() bool {
	return rm.RT.Empty() && rm.MZ.Empty() && rm.Intensity.Empty()
}

// PeakIndex is the canonical two-level handle into an Experiment: a
// spectrum index plus a peak index within that spectrum. Clear sets both
// to the sentinel (max of the size type), per spec.md §4.1.
type PeakIndex struct {
	SpectrumIdx int
	PeakIdx     int
}

const sentinelIdx = int(^uint(0) >> 1) // max of int

// Clear sets both fields to the sentinel value.
func (p *PeakIndex) Clear() {
	p.SpectrumIdx = sentinelIdx
	p.PeakIdx = sentinelIdx
}

// Valid reports whether the index has been set to something other than
// the sentinel.
func (p PeakIndex) Valid() bool {
	return p.SpectrumIdx != sentinelIdx && p.PeakIdx != sentinelIdx
}

// scale converts a float64 coordinate to the fixed-point int64 domain the
// biogo/store/interval tree operates over. 1e4 matches the 1e-4 Th m/z
// tolerance from spec.md §8's round-trip testable property, and is ample
// resolution for RT expressed in seconds.
const scale = 1e4

func toFixed(v float64) int {
	return int(math.Round(v * scale))
}

// rangeNode adapts a half-open [lo, hi) region plus an opaque payload
// index to biogo/store/interval.IntNode, the same adapter shape the
// teacher used for subjectInterval in cmd/ins/main.go and cmd/cull.
type rangeNode struct {
	id       uintptr
	lo, hi   int
	payload  int
}

func (n rangeNode) Overlap(b interval.IntRange) bool { return b.Start < n.hi && n.lo < b.End }
func (n rangeNode) ID() uintptr                       { return n.id }
func (n rangeNode) Range() interval.IntRange          { return interval.IntRange{Start: n.lo, End: n.hi} }

// Range1DIndex is a sub-linear windowed-query index over a single
// dimension (RT or m/z), backed by an interval tree the way the teacher
// indexed BLAST hit containment. It stores, for each inserted interval,
// an integer payload (typically a slice index into the owning container)
// so that Query can report which elements fall in a window without
// a linear scan.
type Range1DIndex struct {
	tree    interval.IntTree
	built   bool
	nextID  uintptr
}

// Insert adds the half-open interval [lo, hi) with the given payload.
func (idx *Range1DIndex) Insert(lo, hi float64, payload int) error {
	n := rangeNode{id: idx.nextID, lo: toFixed(lo), hi: toFixed(hi), payload: payload}
	idx.nextID++
	idx.built = false
	return idx.tree.Insert(n, true)
}

// Build finalizes the tree for querying; must be called after the last
// Insert and before any Query, matching biogo/store/interval's
// AdjustRanges contract.
func (idx *Range1DIndex) Build() {
	idx.tree.AdjustRanges()
	idx.built = true
}

// Query returns the payloads of every interval overlapping [lo, hi).
func (idx *Range1DIndex) Query(lo, hi float64) []int {
	if !idx.built {
		idx.Build()
	}
	q := rangeNode{lo: toFixed(lo), hi: toFixed(hi)}
	hits := idx.tree.Get(q)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(rangeNode).payload)
	}
	return out
}
