// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package peakpick implements the two cooperating peak-picking/resampling
// pieces of spec.md §4.3: a linear resampler onto a uniform grid, and a
// cubic-spline Navigator over contiguous packages of profile data.
package peakpick

import "math"

// Point is a (position, intensity) sample; position is m/z or RT
// depending on the caller's domain.
type Point struct {
	Pos       float64
	Intensity float64
}

// LinearResample redistributes a non-uniform sequence of Points onto a
// uniform grid with spacing delta, splitting each input peak's intensity
// linearly between the two nearest bin centers in proportion to
// (1 - d/delta) on each side, per spec.md §4.3. Total intensity is
// preserved within floating-point rounding, and the centroid of an
// isolated peak is preserved. Using delta larger than the input spacing
// is valid but discards resolution; the spec recommends delta no larger
// than the input spacing.
func LinearResample(input []Point, delta float64) []Point {
	if len(input) == 0 || delta <= 0 {
		return nil
	}
	minPos, maxPos := input[0].Pos, input[0].Pos
	for _, p := range input[1:] {
		if p.Pos < minPos {
			minPos = p.Pos
		}
		if p.Pos > maxPos {
			maxPos = p.Pos
		}
	}
	start := math.Floor(minPos/delta) * delta
	nbins := int(math.Ceil((maxPos-start)/delta)) + 2
	bins := make([]float64, nbins)

	for _, p := range input {
		pos := (p.Pos - start) / delta
		lo := int(math.Floor(pos))
		frac := pos - float64(lo)
		if lo >= 0 && lo < nbins {
			bins[lo] += p.Intensity * (1 - frac)
		}
		hi := lo + 1
		if hi >= 0 && hi < nbins {
			bins[hi] += p.Intensity * frac
		}
	}

	out := make([]Point, nbins)
	for i := range bins {
		out[i] = Point{Pos: start + float64(i)*delta, Intensity: bins[i]}
	}
	return out
}

// TotalIntensity sums the intensity of a Point slice, used to check the
// resampler's intensity-preservation invariant (spec.md §8 scenario S1).
func TotalIntensity(points []Point) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Intensity
	}
	return sum
}
