// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"
	"strconv"

	"github.com/kortschak/msengine/mserr"
)

// Gaussian is the (mean, variance, scaling) elution model of spec.md
// §4.4.
type Gaussian struct {
	Mean     float64
	Variance float64
	Scaling  float64
}

// NewGaussian returns a Gaussian with the given parameters.
func NewGaussian(mean, variance, scaling float64) *Gaussian {
	return &Gaussian{Mean: mean, Variance: variance, Scaling: scaling}
}

func (g *Gaussian) SetParams(p []float64) error {
	if len(p) != 3 {
		return mserr.New(mserr.IllegalArgument, "fit.Gaussian.SetParams", errParamCount{want: 3, got: len(p)})
	}
	if p[1] <= 0 {
		return mserr.New(mserr.InvalidValue, "fit.Gaussian.SetParams", errNonPositive{name: "variance"})
	}
	g.Mean, g.Variance, g.Scaling = p[0], p[1], p[2]
	return nil
}

func (g *Gaussian) Params() []float64 { return []float64{g.Mean, g.Variance, g.Scaling} }

func (g *Gaussian) Intensity(pos float64) float64 {
	d := pos - g.Mean
	return g.Scaling / math.Sqrt(2*math.Pi*g.Variance) * math.Exp(-d*d/(2*g.Variance))
}

func (g *Gaussian) Center() float64 { return g.Mean }

func (g *Gaussian) SetOffset(delta float64) { g.Mean += delta }

func (g *Gaussian) Samples(out []Sample) []Sample {
	sd := math.Sqrt(g.Variance)
	lo, hi := g.Mean-4*sd, g.Mean+4*sd
	const n = 100
	step := (hi - lo) / (n - 1)
	for i := 0; i < n; i++ {
		pos := lo + float64(i)*step
		out = append(out, Sample{Pos: pos, Intensity: g.Intensity(pos)})
	}
	return out
}

type errParamCount struct{ want, got int }

func (e errParamCount) Error() string {
	return "wrong parameter count: want " + strconv.Itoa(e.want) + " got " + strconv.Itoa(e.got)
}

type errNonPositive struct{ name string }

func (e errNonPositive) Error() string { return e.name + " must be positive" }
