// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kortschak/msengine/mserr"
)

// Options are the Levenberg-Marquardt termination criteria of spec.md
// §4.4: "max iterations, gradient tolerance, parameter tolerance — all
// exposed as parameters".
type Options struct {
	MaxIterations int
	GradientTol   float64
	ParameterTol  float64
	InitialLambda float64
	LambdaUp      float64
	LambdaDown    float64
}

// DefaultOptions matches the conventional textbook LM defaults; callers
// fitting noisy elution profiles typically only need to raise
// MaxIterations.
var DefaultOptions = Options{
	MaxIterations: 200,
	GradientTol:   1e-8,
	ParameterTol:  1e-10,
	InitialLambda: 1e-3,
	LambdaUp:      10,
	LambdaDown:    10,
}

// Result reports the outcome of an LM fit.
type Result struct {
	Params     []float64
	Iterations int
	SSE        float64
	Converged  bool
}

// Fit regresses model against samples by adjusting its parameters with
// Levenberg-Marquardt, using central finite differences for the
// Jacobian (spec.md §4.4 leaves the LM routine unspecified: "implementers
// may use any LM routine"). The residual vector length equals the
// number of samples, per spec.md §4.4.
func Fit(model Model, samples []Sample, opts Options) (Result, error) {
	if len(samples) == 0 {
		return Result{}, mserr.New(mserr.IllegalArgument, "fit.Fit", errNoSamples{})
	}
	params := append([]float64{}, model.Params()...)
	n := len(params)
	m := len(samples)

	residuals := func(p []float64) ([]float64, error) {
		if err := model.SetParams(p); err != nil {
			return nil, err
		}
		r := make([]float64, m)
		for i, s := range samples {
			r[i] = model.Intensity(s.Pos) - s.Intensity
		}
		return r, nil
	}

	r, err := residuals(params)
	if err != nil {
		return Result{}, err
	}
	sse := sumSquares(r)
	lambda := opts.InitialLambda

	res := Result{Params: params, SSE: sse}
	for iter := 0; iter < opts.MaxIterations; iter++ {
		jac, err := jacobian(residuals, params, r)
		if err != nil {
			return Result{}, err
		}

		jacM := mat.NewDense(m, n, jac)
		var jtj mat.Dense
		jtj.Mul(jacM.T(), jacM)

		rVec := mat.NewVecDense(m, r)
		var jtr mat.VecDense
		jtr.MulVec(jacM.T(), rVec)

		grad := mat.Norm(&jtr, math.Inf(1))
		if grad < opts.GradientTol {
			res.Converged = true
			break
		}

		var step mat.VecDense
		accepted := false
		for tries := 0; tries < 20; tries++ {
			damped := mat.DenseCopyOf(&jtj)
			for i := 0; i < n; i++ {
				damped.Set(i, i, damped.At(i, i)*(1+lambda))
			}
			if err := step.SolveVec(damped, &jtr); err != nil {
				lambda *= opts.LambdaUp
				continue
			}
			trial := make([]float64, n)
			for i := range trial {
				trial[i] = params[i] - step.AtVec(i)
			}
			trialR, err := residuals(trial)
			if err != nil {
				lambda *= opts.LambdaUp
				continue
			}
			trialSSE := sumSquares(trialR)
			if trialSSE < sse {
				params = trial
				r = trialR
				sse = trialSSE
				lambda /= opts.LambdaDown
				accepted = true
				break
			}
			lambda *= opts.LambdaUp
		}
		res.Iterations = iter + 1
		if !accepted {
			break
		}

		maxDelta := 0.0
		for i := 0; i < n; i++ {
			if d := math.Abs(step.AtVec(i)); d > maxDelta {
				maxDelta = d
			}
		}
		if maxDelta < opts.ParameterTol {
			res.Converged = true
			break
		}
	}

	if err := model.SetParams(params); err != nil {
		return Result{}, err
	}
	res.Params = params
	res.SSE = sse
	return res, nil
}

// jacobian computes the m-by-n Jacobian of residuals at params via
// central finite differences, returned row-major for mat.NewDense.
func jacobian(residuals func([]float64) ([]float64, error), params, base []float64) ([]float64, error) {
	n := len(params)
	m := len(base)
	jac := make([]float64, m*n)
	for j := 0; j < n; j++ {
		h := step(params[j])
		p := append([]float64{}, params...)
		p[j] += h
		rPlus, err := residuals(p)
		if err != nil {
			return nil, err
		}
		p[j] = params[j] - h
		rMinus, err := residuals(p)
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			jac[i*n+j] = (rPlus[i] - rMinus[i]) / (2 * h)
		}
	}
	// Restore the base point; residuals(params) may have left the
	// model's internal state at p != params from the last finite
	// difference probe.
	if _, err := residuals(params); err != nil {
		return nil, err
	}
	return jac, nil
}

func step(x float64) float64 {
	const eps = 1e-6
	if x == 0 {
		return eps
	}
	return eps * math.Abs(x)
}

func sumSquares(r []float64) float64 {
	var s float64
	for _, v := range r {
		s += v * v
	}
	return s
}

type errNoSamples struct{}

func (errNoSamples) Error() string { return "no samples to fit" }
