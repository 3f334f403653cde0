// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"github.com/kortschak/msengine/mserr"
)

// EGH is the Exponentially-Gaussian Hybrid elution model of spec.md
// §4.4, parameterized by (retention, height, A, B, alpha). It is
// asymmetric: the left and right half-widths (A, B) differ, giving the
// characteristic fronting/tailing shape of a real chromatographic peak.
type EGH struct {
	Retention float64
	Height    float64
	A         float64
	B         float64
	Alpha     float64
}

func NewEGH(retention, height, a, b, alpha float64) *EGH {
	return &EGH{Retention: retention, Height: height, A: a, B: b, Alpha: alpha}
}

func (m *EGH) SetParams(p []float64) error {
	if len(p) != 5 {
		return mserr.New(mserr.IllegalArgument, "fit.EGH.SetParams", errParamCount{want: 5, got: len(p)})
	}
	m.Retention, m.Height, m.A, m.B, m.Alpha = p[0], p[1], p[2], p[3], p[4]
	return nil
}

func (m *EGH) Params() []float64 {
	return []float64{m.Retention, m.Height, m.A, m.B, m.Alpha}
}

// Intensity evaluates the EGH at pos: height * exp(-(pos-tR)^2 / denom)
// where denom = 2*A^2 + alpha*(pos-tR) on the left side of tR and
// 2*B^2 + alpha*(pos-tR) on the right, clamped to zero once the
// denominator goes non-positive (the standard EGH truncation).
func (m *EGH) Intensity(pos float64) float64 {
	d := pos - m.Retention
	var denom float64
	if d <= 0 {
		denom = 2*m.A*m.A + m.Alpha*d
	} else {
		denom = 2*m.B*m.B + m.Alpha*d
	}
	if denom <= 0 {
		return 0
	}
	return m.Height * math.Exp(-d*d/denom)
}

func (m *EGH) Center() float64 { return m.Retention }

func (m *EGH) SetOffset(delta float64) { m.Retention += delta }

func (m *EGH) Samples(out []Sample) []Sample {
	lo, hi := m.Retention-4*(m.A+m.B), m.Retention+4*(m.A+m.B)
	const n = 100
	step := (hi - lo) / (n - 1)
	for i := 0; i < n; i++ {
		pos := lo + float64(i)*step
		out = append(out, Sample{Pos: pos, Intensity: m.Intensity(pos)})
	}
	return out
}
