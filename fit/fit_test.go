// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"
	"testing"
)

func TestGaussianFit(t *testing.T) {
	truth := NewGaussian(10, 1, 100)
	var samples []Sample
	for x := 5.0; x <= 15; x += 0.25 {
		samples = append(samples, Sample{Pos: x, Intensity: truth.Intensity(x)})
	}

	guess := NewGaussian(9, 1.5, 80)
	res, err := Fit(guess, samples, DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(guess.Mean-10) > 0.05 {
		t.Fatalf("mean not recovered: got %v want 10", guess.Mean)
	}
	if res.SSE > 1e-3 {
		t.Fatalf("expected a near-exact fit to noiseless data, SSE=%v", res.SSE)
	}
}

func TestIsotopeModelAreaNearUnity(t *testing.T) {
	// S5: mean=1000, charge=2, isotope_stdev=0.15, max_isotope=5, scaling=1
	// must produce a local maximum near x=1000 and area ~= 1.
	m, err := NewIsotope(IsotopeParams{
		Mean: 1000, Charge: 2, IsotopeStdev: 0.15, MaxIsotope: 5,
		TrimRightCutoff: 0.01, Scaling: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	area := m.areaUnnormalized() * m.norm
	if math.Abs(area-1) > 0.01 {
		t.Fatalf("isotope model area not normalized: got %v want ~1", area)
	}

	peakVal := m.Intensity(1000)
	if peakVal <= m.Intensity(999) || peakVal <= m.Intensity(1000.5) {
		t.Fatalf("expected local maximum near mean=1000, got I(999)=%v I(1000)=%v I(1000.5)=%v",
			m.Intensity(999), peakVal, m.Intensity(1000.5))
	}
}

func TestIsotopeSetOffsetShiftsCenters(t *testing.T) {
	m, err := NewIsotope(IsotopeParams{Mean: 500, Charge: 1, IsotopeStdev: 0.2, MaxIsotope: 3, TrimRightCutoff: 0.01, Scaling: 1})
	if err != nil {
		t.Fatal(err)
	}
	before := m.centers[0]
	m.SetOffset(5)
	if math.Abs(m.centers[0]-(before+5)) > 1e-9 {
		t.Fatalf("SetOffset did not shift centers: got %v want %v", m.centers[0], before+5)
	}
	if m.Center() != 505 {
		t.Fatalf("Center() not updated: got %v", m.Center())
	}
}

func TestEGHAsymmetry(t *testing.T) {
	m := NewEGH(10, 100, 1, 2, 0.1)
	// Right half-width B > A: intensity should fall off more slowly to
	// the right of the retention time than to the left, at equal
	// distance.
	left := m.Intensity(10 - 2)
	right := m.Intensity(10 + 2)
	if right <= left {
		t.Fatalf("expected slower right-side falloff with B>A: left=%v right=%v", left, right)
	}
}

func TestLogNormalDegenerate(t *testing.T) {
	m := NewLogNormal(10, 50, 1)
	if m.Intensity(10) <= m.Intensity(12) {
		t.Fatalf("expected peak at mode: I(10)=%v I(12)=%v", m.Intensity(10), m.Intensity(12))
	}
}
