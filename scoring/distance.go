// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scoring implements the similarity and correlation kernels of
// spec.md §4.7: distance/angle measures between equal-length intensity
// vectors, cross-correlation over an RT or m/z grid, DIA prescoring
// features, and binned spectrum similarity for clustering.
package scoring

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/msengine/mserr"
)

// NormalizedManhattan computes sqrt((1/N)·Σ|xᵢ/μx − yᵢ/μy|), per spec.md
// §4.7. It is 0 when x and y are proportional. x and y must have equal,
// nonzero length.
func NormalizedManhattan(x, y []float64) (float64, error) {
	if err := sameLen(x, y, "scoring.NormalizedManhattan"); err != nil {
		return 0, err
	}
	mx := stat.Mean(x, nil)
	my := stat.Mean(y, nil)
	if mx == 0 || my == 0 {
		return 0, nil
	}
	var sum float64
	for i := range x {
		sum += math.Abs(x[i]/mx - y[i]/my)
	}
	return math.Sqrt(sum / float64(len(x))), nil
}

// RMSD computes sqrt((1/N)·Σ(xᵢ−yᵢ)²), per spec.md §4.7.
func RMSD(x, y []float64) (float64, error) {
	if err := sameLen(x, y, "scoring.RMSD"); err != nil {
		return 0, err
	}
	diff := make([]float64, len(x))
	copy(diff, x)
	floats.Sub(diff, y)
	return math.Sqrt(floats.Dot(diff, diff) / float64(len(x))), nil
}

// SpectralAngle computes acos(<x,y> / (‖x‖·‖y‖)), per spec.md §4.7. Zero
// vectors have no well-defined angle and return π/2 (orthogonal), the
// same convention as a zero dot product with nonzero norms.
func SpectralAngle(x, y []float64) (float64, error) {
	if err := sameLen(x, y, "scoring.SpectralAngle"); err != nil {
		return 0, err
	}
	nx := floats.Norm(x, 2)
	ny := floats.Norm(y, 2)
	if nx == 0 || ny == 0 {
		return math.Pi / 2, nil
	}
	cos := floats.Dot(x, y) / (nx * ny)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos), nil
}

func sameLen(x, y []float64, op string) error {
	if len(x) != len(y) {
		return mserr.New(mserr.IllegalArgument, op, errLenMismatch{len(x), len(y)})
	}
	if len(x) == 0 {
		return mserr.New(mserr.IllegalArgument, op, errEmpty{})
	}
	return nil
}

type errLenMismatch struct{ nx, ny int }

func (e errLenMismatch) Error() string { return "vectors differ in length" }

type errEmpty struct{}

func (errEmpty) Error() string { return "vectors are empty" }
