// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/kortschak/msengine/mserr"
	"github.com/kortschak/msengine/msdata"
)

// Averagine element ratios per unit average residue mass, from Senko,
// Beu & McLafferty 1995 — the standard "averagine" hypothetical residue
// used to approximate a peptide's elemental composition from its mass
// alone.
const (
	averagineUnitMass = 111.1254
	averagineCarbons  = 4.9384
	carbon13Abundance = 0.0107
)

// IsotopeParams are the Isotope model's six parameters in the order
// SetParams expects them.
type IsotopeParams struct {
	Mean            float64
	Charge          float64
	IsotopeStdev    float64
	MaxIsotope      float64
	TrimRightCutoff float64
	Scaling         float64
}

// Isotope is the averagine-envelope elution model of spec.md §4.4: the
// theoretical isotope distribution of the averagine composition implied
// by Mean, stretched across charge states, convolved with a normal
// kernel, and rescaled so its area equals Scaling.
type Isotope struct {
	IsotopeParams

	centers []float64 // isotope peak positions
	amps    []float64 // isotope peak relative amplitudes, pre-normalization
	norm    float64   // multiplier applied to amps so total area == Scaling
}

func NewIsotope(p IsotopeParams) (*Isotope, error) {
	m := &Isotope{}
	if err := m.SetParams(paramsOf(p)); err != nil {
		return nil, err
	}
	return m, nil
}

func paramsOf(p IsotopeParams) []float64 {
	return []float64{p.Mean, p.Charge, p.IsotopeStdev, p.MaxIsotope, p.TrimRightCutoff, p.Scaling}
}

func (m *Isotope) SetParams(p []float64) error {
	if len(p) != 6 {
		return mserr.New(mserr.IllegalArgument, "fit.Isotope.SetParams", errParamCount{want: 6, got: len(p)})
	}
	m.IsotopeParams = IsotopeParams{
		Mean: p[0], Charge: p[1], IsotopeStdev: p[2],
		MaxIsotope: p[3], TrimRightCutoff: p[4], Scaling: p[5],
	}
	if m.Charge <= 0 {
		return mserr.New(mserr.InvalidValue, "fit.Isotope.SetParams", errNonPositive{name: "charge"})
	}
	if m.IsotopeStdev <= 0 {
		return mserr.New(mserr.InvalidValue, "fit.Isotope.SetParams", errNonPositive{name: "isotope_stdev"})
	}
	m.setSamples()
	return nil
}

func (m *Isotope) Params() []float64 { return paramsOf(m.IsotopeParams) }

// setSamples recomputes the theoretical isotope distribution, stretches
// it onto the fine grid (spec.md §4.4 steps 1-2), and recomputes the
// normalization that makes the convolved curve's area equal Scaling
// (step 4; the convolution itself, step 3, is applied lazily in
// Intensity since it is cheap to evaluate pointwise).
func (m *Isotope) setSamples() {
	nCarbon := int(math.Round(m.Mean / averagineUnitMass * averagineCarbons))
	maxIso := int(math.Round(m.MaxIsotope))
	if maxIso < 0 {
		maxIso = 0
	}
	if maxIso > nCarbon {
		maxIso = nCarbon
	}

	amps := make([]float64, maxIso+1)
	peak := 0.0
	for k := 0; k <= maxIso; k++ {
		amps[k] = binomialProb(nCarbon, k, carbon13Abundance)
		if amps[k] > peak {
			peak = amps[k]
		}
	}
	// Trim the right tail below trim_right_cutoff relative to the
	// distribution's own peak.
	cut := len(amps)
	for cut > 1 && amps[cut-1] < m.TrimRightCutoff*peak {
		cut--
	}
	amps = amps[:cut]

	isotopeDistance := msdata.AverageNucleonSpacing
	centers := make([]float64, len(amps))
	for i := range centers {
		centers[i] = m.Mean + float64(i)*isotopeDistance/m.Charge
	}

	m.amps = amps
	m.centers = centers
	m.norm = 1
	area := m.areaUnnormalized()
	if area > 0 {
		m.norm = m.Scaling / area
	}
}

func binomialProb(n, k int, p float64) float64 {
	if k > n {
		return 0
	}
	return combin.Binomial(n, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

func (m *Isotope) rawIntensity(pos float64) float64 {
	var sum float64
	for i, c := range m.centers {
		d := pos - c
		sum += m.amps[i] / (m.IsotopeStdev * math.Sqrt(2*math.Pi)) * math.Exp(-d*d/(2*m.IsotopeStdev*m.IsotopeStdev))
	}
	return sum
}

func (m *Isotope) areaUnnormalized() float64 {
	if len(m.centers) == 0 {
		return 0
	}
	lo := m.centers[0] - 6*m.IsotopeStdev
	hi := m.centers[len(m.centers)-1] + 6*m.IsotopeStdev
	const n = 500
	xs := make([]float64, n)
	ys := make([]float64, n)
	step := (hi - lo) / (n - 1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
		ys[i] = m.rawIntensity(xs[i])
	}
	return integrate.Trapezoidal(xs, ys)
}

// Intensity evaluates the normal-convolved, area-normalized isotope
// envelope at pos.
func (m *Isotope) Intensity(pos float64) float64 {
	return m.norm * m.rawIntensity(pos)
}

func (m *Isotope) Center() float64 { return m.Mean }

func (m *Isotope) SetOffset(delta float64) {
	m.Mean += delta
	for i := range m.centers {
		m.centers[i] += delta
	}
}

func (m *Isotope) Samples(out []Sample) []Sample {
	if len(m.centers) == 0 {
		return out
	}
	lo := m.centers[0] - 6*m.IsotopeStdev
	hi := m.centers[len(m.centers)-1] + 6*m.IsotopeStdev
	const n = 200
	step := (hi - lo) / (n - 1)
	for i := 0; i < n; i++ {
		pos := lo + float64(i)*step
		out = append(out, Sample{Pos: pos, Intensity: m.Intensity(pos)})
	}
	return out
}
