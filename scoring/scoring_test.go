// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoring

import (
	"math"
	"testing"

	"github.com/kortschak/msengine/msdata"
)

func TestNormalizedManhattanProportional(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}
	d, err := NormalizedManhattan(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d) > 1e-9 {
		t.Fatalf("expected ~0 for proportional vectors, got %v", d)
	}
}

func TestRMSDIdentical(t *testing.T) {
	x := []float64{1, 2, 3}
	d, err := RMSD(x, x)
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Fatalf("expected 0 RMSD for identical vectors, got %v", d)
	}
}

func TestSpectralAngleIdentical(t *testing.T) {
	x := []float64{1, 2, 3}
	a, err := SpectralAngle(x, x)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a) > 1e-9 {
		t.Fatalf("expected ~0 angle for identical vectors, got %v", a)
	}
}

func TestSpectralAngleOrthogonal(t *testing.T) {
	x := []float64{1, 0}
	y := []float64{0, 1}
	a, err := SpectralAngle(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-math.Pi/2) > 1e-9 {
		t.Fatalf("expected pi/2 for orthogonal vectors, got %v", a)
	}
}

// TestNormalizedXCorrSelfMaxAtZeroLag is the testable property named in
// spec.md: NormalizedXCorr(x,x) is maximal at lag 0 and equals 1.
func TestNormalizedXCorrSelfMaxAtZeroLag(t *testing.T) {
	x := []float64{1, 4, 9, 2, 7, 3, 5, 8}
	m, err := CrossCorrelation(x, x, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	lag, value, err := BestXCorrPeak(m)
	if err != nil {
		t.Fatal(err)
	}
	if lag != 0 {
		t.Fatalf("expected best lag 0 for self-correlation, got %d", lag)
	}
	if math.Abs(value-1) > 1e-9 {
		t.Fatalf("expected self-correlation at lag 0 to equal 1, got %v", value)
	}
	for i, v := range m.Values {
		if v > value {
			t.Fatalf("lag %d value %v exceeds lag-0 value %v", m.Lags[i], v, value)
		}
	}
}

func TestCrossCorrelationZeroVarianceYieldsZeroSignal(t *testing.T) {
	x := []float64{5, 5, 5, 5}
	y := []float64{1, 2, 3, 4}
	m, err := CrossCorrelation(x, y, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Values {
		if v != 0 {
			t.Fatalf("expected all-zero correlation when x has zero variance, got %v at lag %d", v, m.Lags[i])
		}
	}
}

func TestBestXCorrPeakTiesBreakBySmallestAbsLag(t *testing.T) {
	m := XCorrMap{Lags: []int{-2, -1, 0, 1, 2}, Values: []float64{5, 3, 4, 5, 1}}
	lag, _, err := BestXCorrPeak(m)
	if err != nil {
		t.Fatal(err)
	}
	if lag != 1 {
		t.Fatalf("expected tie broken toward smaller |lag| (1 over -2), got %d", lag)
	}
}

func TestComputeDIAPrescoreLibraryDotProduct(t *testing.T) {
	obs := []TransitionObservation{
		{LibraryIntensity: 100, ObservedPeakArea: 100},
		{LibraryIntensity: 50, ObservedPeakArea: 50},
	}
	score := ComputeDIAPrescore(obs)
	if math.Abs(score.LibraryDotProduct-1) > 1e-9 {
		t.Fatalf("expected dot product ~1 for proportional observed/library intensities, got %v", score.LibraryDotProduct)
	}
}

func TestComputeDIAPrescoreIntensityWeightedRTCorr(t *testing.T) {
	rt := []float64{0, 1, 2, 3, 4}
	obs := []TransitionObservation{
		{RT: rt, Intensity: []float64{1, 3, 9, 3, 1}},
		{RT: rt, Intensity: []float64{2, 6, 18, 6, 2}},
	}
	score := ComputeDIAPrescore(obs)
	if score.IntensityWeightedRTCorr < 0.99 {
		t.Fatalf("expected near-perfect correlation for co-eluting proportional profiles, got %v", score.IntensityWeightedRTCorr)
	}
}

func TestBinSpectrumDaMode(t *testing.T) {
	s := msdata.NewSpectrum("s", 1, 1)
	s.SetPeaks([]msdata.Peak1D{{MZ: 100.2, Intensity: 10}, {MZ: 100.8, Intensity: 5}, {MZ: 200.1, Intensity: 20}})
	binned := BinSpectrum(s, BinParams{Mode: BinDa, Size: 1, Offset: 0})
	if binned[100] != 15 {
		t.Fatalf("expected both peaks near 100 Da to fall in the same bin, got %v", binned[100])
	}
	if binned[200] != 20 {
		t.Fatalf("expected the 200.1 peak in its own bin, got %v", binned[200])
	}
}

func TestCosineSimilarityIdenticalBinnedSpectra(t *testing.T) {
	s := msdata.NewSpectrum("s", 1, 1)
	s.SetPeaks([]msdata.Peak1D{{MZ: 100.2, Intensity: 10}, {MZ: 200.1, Intensity: 20}})
	binned := BinSpectrum(s, BinParams{Mode: BinDa, Size: 1})
	if c := CosineSimilarity(binned, binned); math.Abs(c-1) > 1e-9 {
		t.Fatalf("expected cosine similarity 1 for identical binned spectra, got %v", c)
	}
	if a := ContrastAngle(binned, binned); math.Abs(a-1) > 1e-9 {
		t.Fatalf("expected contrast angle 1 for identical binned spectra, got %v", a)
	}
}
