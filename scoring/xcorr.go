// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/msengine/mserr"
)

// XCorrMap is a lag → correlation map produced by CrossCorrelation, keyed
// by integer lag in [-maxDelay, +maxDelay].
type XCorrMap struct {
	Lags   []int
	Values []float64
}

// CrossCorrelation computes Σ xᵢ·yᵢ₊ₖ for every lag k in
// [-maxDelay, +maxDelay], per spec.md §4.7. When normalize is true, both
// inputs are z-standardized (mean-subtracted, divided by population
// standard deviation) and each lag's sum is divided by len(x), so that
// CrossCorrelation(x, x, maxDelay, true) is 1 at lag 0 (spec.md §8 testable
// property #5); a zero-variance input is defined to yield the zero
// signal rather than dividing by zero.
func CrossCorrelation(x, y []float64, maxDelay int, normalize bool) (XCorrMap, error) {
	if err := sameLen(x, y, "scoring.CrossCorrelation"); err != nil {
		return XCorrMap{}, err
	}
	if maxDelay < 0 || maxDelay >= len(x) {
		return XCorrMap{}, mserr.New(mserr.IllegalArgument, "scoring.CrossCorrelation", errBadDelay{maxDelay, len(x)})
	}

	if normalize {
		x = zStandardize(x)
		y = zStandardize(y)
	}

	n := len(x)
	m := XCorrMap{Lags: make([]int, 0, 2*maxDelay+1), Values: make([]float64, 0, 2*maxDelay+1)}
	for k := -maxDelay; k <= maxDelay; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			j := i + k
			if j < 0 || j >= n {
				continue
			}
			sum += x[i] * y[j]
		}
		if normalize {
			sum /= float64(n)
		}
		m.Lags = append(m.Lags, k)
		m.Values = append(m.Values, sum)
	}
	return m, nil
}

// zStandardize subtracts the mean and divides by the population standard
// deviation (ddof=0, so that a self-correlation sums to exactly N),
// returning the zero vector when the input has zero variance.
func zStandardize(v []float64) []float64 {
	mean := stat.Mean(v, nil)
	var ss float64
	for _, x := range v {
		d := x - mean
		ss += d * d
	}
	out := make([]float64, len(v))
	if ss == 0 {
		return out
	}
	sd := math.Sqrt(ss / float64(len(v)))
	for i, x := range v {
		out[i] = (x - mean) / sd
	}
	return out
}

// BestXCorrPeak returns the lag with maximum correlation, breaking ties
// by smallest |lag|, per spec.md §4.7.
func BestXCorrPeak(m XCorrMap) (lag int, value float64, err error) {
	if len(m.Lags) == 0 {
		return 0, 0, mserr.New(mserr.IllegalArgument, "scoring.BestXCorrPeak", errEmpty{})
	}
	bestIdx := 0
	for i := 1; i < len(m.Lags); i++ {
		switch {
		case m.Values[i] > m.Values[bestIdx]:
			bestIdx = i
		case m.Values[i] == m.Values[bestIdx] && absInt(m.Lags[i]) < absInt(m.Lags[bestIdx]):
			bestIdx = i
		}
	}
	return m.Lags[bestIdx], m.Values[bestIdx], nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type errBadDelay struct{ maxDelay, n int }

func (e errBadDelay) Error() string { return "maxDelay out of range for signal length" }
