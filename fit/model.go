// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fit implements the elution-profile and isotope-envelope models
// of spec.md §4.4 and a Levenberg–Marquardt fitter to regress them
// against observed intensity-vs-position samples.
package fit

// Sample is a single (position, intensity) observation, position being
// either RT or m/z depending on the caller's domain.
type Sample struct {
	Pos       float64
	Intensity float64
}

// Model is the common trait spec.md §4.4 and §9's "deep inheritance
// collapses to a sum type + common trait" redesign call for: each
// concrete model (Gaussian, EGH, LogNormal, Isotope) implements this
// directly rather than sharing a base class.
type Model interface {
	// SetParams loads params (model-specific length and order) and
	// recomputes any internal interpolation grid setSamples requires.
	SetParams(params []float64) error
	// Params returns the current parameter vector, in the same order
	// SetParams expects, for use as a Levenberg-Marquardt Jacobian
	// basis.
	Params() []float64
	// Intensity evaluates the model at pos.
	Intensity(pos float64) float64
	// Center returns the model's characteristic position (its peak or
	// mean), used to seed RT/m/z windows around a fitted feature.
	Center() float64
	// SetOffset shifts the model's center by delta without
	// recomputing its internal sample grid.
	SetOffset(delta float64)
	// Samples appends (pos, intensity) pairs across the model's
	// support to out, for plotting or area integration.
	Samples(out []Sample) []Sample
}
