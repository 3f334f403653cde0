// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peakpick

import (
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/kortschak/msengine/mserr"
)

// package1D is one contiguous run of input points fit with a spline
// (or, as a fallback for runs too short for Akima's five-point minimum, a
// piecewise-linear interpolant — still monotone-safe and a reasonable
// degradation for a two- or three-point package).
type package1D struct {
	lo, hi  float64 // [lo, hi] domain this package covers
	spacing float64 // mean input spacing within the package
	fn      interp.Predictor
}

// Navigator evaluates the spline-interpolated intensity of profile data
// decomposed into packages, per spec.md §4.3. It caches the last-visited
// package index to accelerate locality of reference; correctness never
// depends on the cache (every method re-derives the right package if the
// cache misses).
type Navigator struct {
	packages []package1D
	last     int
}

// BuildNavigator decomposes points (assumed sorted ascending by Pos) into
// contiguous packages delimited by gaps larger than gapThreshold, fits a
// cubic spline within each, and returns a Navigator over them. Packages
// that end up with only a single point are merged into the following
// package (or, if it is the last package, into the preceding one) to
// avoid the ill-conditioned single-point spline spec.md §4.3 calls out.
func BuildNavigator(points []Point, gapThreshold float64) (*Navigator, error) {
	if len(points) == 0 {
		return &Navigator{}, nil
	}
	if !sort.SliceIsSorted(points, func(i, j int) bool { return points[i].Pos < points[j].Pos }) {
		return nil, mserr.New(mserr.IllegalArgument, "peakpick.BuildNavigator", errUnsorted{})
	}

	runs := splitRuns(points, gapThreshold)
	runs = mergeSingletons(runs)

	nav := &Navigator{packages: make([]package1D, 0, len(runs))}
	for _, run := range runs {
		pkg, err := fitPackage(run)
		if err != nil {
			return nil, err
		}
		nav.packages = append(nav.packages, pkg)
	}
	return nav, nil
}

type errUnsorted struct{}

func (errUnsorted) Error() string { return "input points must be sorted ascending by position" }

func splitRuns(points []Point, gapThreshold float64) [][]Point {
	var runs [][]Point
	start := 0
	for i := 1; i < len(points); i++ {
		if points[i].Pos-points[i-1].Pos > gapThreshold {
			runs = append(runs, points[start:i])
			start = i
		}
	}
	runs = append(runs, points[start:])
	return runs
}

func mergeSingletons(runs [][]Point) [][]Point {
	var out [][]Point
	for i := 0; i < len(runs); i++ {
		if len(runs[i]) == 1 && i+1 < len(runs) {
			runs[i+1] = append(append([]Point{}, runs[i][0]), runs[i+1]...)
			continue
		}
		if len(runs[i]) == 1 && i+1 >= len(runs) && len(out) > 0 {
			out[len(out)-1] = append(out[len(out)-1], runs[i]...)
			continue
		}
		out = append(out, runs[i])
	}
	return out
}

func fitPackage(points []Point) (package1D, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Pos
		ys[i] = p.Intensity
	}

	var spacing float64
	if len(xs) > 1 {
		spacing = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
	}

	var fn interp.Predictor
	if len(xs) >= 5 {
		var akima interp.AkimaSpline
		if err := akima.Fit(xs, ys); err == nil {
			fn = &akima
		}
	}
	if fn == nil {
		var lin interp.PiecewiseLinear
		if err := lin.Fit(xs, ys); err != nil {
			return package1D{}, mserr.New(mserr.UnableToFit, "peakpick.fitPackage", err)
		}
		fn = &lin
	}

	return package1D{lo: xs[0], hi: xs[len(xs)-1], spacing: spacing, fn: fn}, nil
}

// Eval returns the interpolated intensity at pos, or zero if pos lies
// outside every package. The last-visited package is tried first.
func (n *Navigator) Eval(pos float64) float64 {
	if len(n.packages) == 0 {
		return 0
	}
	if n.last < len(n.packages) && n.packages[n.last].contains(pos) {
		return n.packages[n.last].fn.Predict(pos)
	}
	idx := n.find(pos)
	if idx < 0 {
		return 0
	}
	n.last = idx
	return n.packages[idx].fn.Predict(pos)
}

func (p package1D) contains(pos float64) bool { return pos >= p.lo && pos <= p.hi }

func (n *Navigator) find(pos float64) int {
	for i, p := range n.packages {
		if p.contains(pos) {
			return i
		}
	}
	return -1
}

// GetNextPos returns the next sampling position after pos: inside a
// package it advances by scaling*spacing of that package; at a package
// boundary it jumps to the first position of the next package; beyond
// all packages it returns the global max, per spec.md §4.3.
func (n *Navigator) GetNextPos(pos float64, scaling float64) float64 {
	if len(n.packages) == 0 {
		return pos
	}
	idx := n.find(pos)
	if idx < 0 {
		// Beyond (or between) packages: jump to the first position of
		// the next package whose lo is greater than pos, else return
		// the global max.
		for _, p := range n.packages {
			if p.lo > pos {
				return p.lo
			}
		}
		return n.packages[len(n.packages)-1].hi
	}
	n.last = idx
	next := pos + scaling*n.packages[idx].spacing
	if next > n.packages[idx].hi {
		if idx+1 < len(n.packages) {
			return n.packages[idx+1].lo
		}
		return n.packages[idx].hi
	}
	return next
}
