// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TransitionObservation is one transition's observed signal against its
// assay library values, the per-transition input to DIAPrescore.
type TransitionObservation struct {
	LibraryIntensity float64
	ObservedPeakArea float64

	TheoreticalIsotopeEnvelope []float64
	ObservedIsotopeEnvelope    []float64

	ExpectedMZ float64
	ObservedMZ float64

	RT        []float64 // shared RT grid across a peptide's transitions
	Intensity []float64 // this transition's per-RT-point intensity
}

// DIAPrescore is the per-transition-group feature vector computed from
// TransitionObservations, per spec.md §4.7.
type DIAPrescore struct {
	LibraryDotProduct       float64
	IsotopeCorrelation      float64
	MassAccuracyPPM         float64
	IntensityWeightedRTCorr float64
}

// ComputeDIAPrescore folds a transition group's observations into a
// DIAPrescore feature vector.
func ComputeDIAPrescore(obs []TransitionObservation) DIAPrescore {
	var out DIAPrescore

	libIntensity := make([]float64, len(obs))
	obsArea := make([]float64, len(obs))
	for i, o := range obs {
		libIntensity[i] = o.LibraryIntensity
		obsArea[i] = o.ObservedPeakArea
	}
	out.LibraryDotProduct = dotNormalized(libIntensity, obsArea)

	if len(obs) > 0 && len(obs[0].TheoreticalIsotopeEnvelope) > 0 {
		out.IsotopeCorrelation = stat.Correlation(obs[0].TheoreticalIsotopeEnvelope, obs[0].ObservedIsotopeEnvelope, nil)
	}

	if len(obs) > 0 && obs[0].ExpectedMZ != 0 {
		out.MassAccuracyPPM = 1e6 * (obs[0].ObservedMZ - obs[0].ExpectedMZ) / obs[0].ExpectedMZ
	}

	out.IntensityWeightedRTCorr = intensityWeightedRTCorrelation(obs)
	return out
}

// dotNormalized is the cosine similarity between two equal-length,
// nonnegative vectors — the library dot-product score.
func dotNormalized(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / math.Sqrt(na*nb)
}

// intensityWeightedRTCorrelation builds the group's consensus elution
// profile as the sum of every transition's intensity vector on the
// shared RT grid, correlates each transition against it, and returns the
// intensity-weighted mean of those per-transition correlations — a
// transition that elutes out of step with the rest of the group pulls
// the score down in proportion to its own weight.
func intensityWeightedRTCorrelation(obs []TransitionObservation) float64 {
	var n int
	for _, o := range obs {
		if len(o.RT) > 0 {
			n = len(o.RT)
			break
		}
	}
	if n == 0 {
		return 0
	}
	consensus := make([]float64, n)
	for _, o := range obs {
		if len(o.Intensity) != n {
			continue
		}
		for i, v := range o.Intensity {
			consensus[i] += v
		}
	}

	var corrs, weights []float64
	for _, o := range obs {
		if len(o.Intensity) != n {
			continue
		}
		total := floatsSum(o.Intensity)
		if total == 0 {
			continue
		}
		corrs = append(corrs, stat.Correlation(o.Intensity, consensus, nil))
		weights = append(weights, total)
	}
	if len(corrs) == 0 {
		return 0
	}
	return stat.Mean(corrs, weights)
}

func floatsSum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
