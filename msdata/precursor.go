// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

// Activation is a closed enumeration of MS activation methods.
type Activation int

const (
	ActivationUnknown Activation = iota
	CID
	HCD
	ETD
	EThcD
	ETciD
	ECD
	PQD
	PSD
)

func (a Activation) String() string {
	switch a {
	case CID:
		return "CID"
	case HCD:
		return "HCD"
	case ETD:
		return "ETD"
	case EThcD:
		return "EThcD"
	case ETciD:
		return "ETciD"
	case ECD:
		return "ECD"
	case PQD:
		return "PQD"
	case PSD:
		return "PSD"
	default:
		return "unknown"
	}
}

// DriftTimeUnit is the unit of an ion-mobility drift time value.
type DriftTimeUnit int

const (
	DriftTimeNone DriftTimeUnit = iota
	Milliseconds
	VoltSecondPerCmSquared // vs·s·cm⁻²
)

// DriftTime is an optional ion-mobility drift time with its window offsets.
// A zero value (Unit == DriftTimeNone) means "no ion-mobility filter",
// equivalent to omitting the field entirely (spec.md §8 boundary case).
type DriftTime struct {
	Unit        DriftTimeUnit
	Value       float64
	LowerOffset float64
	UpperOffset float64
}

// Set reports whether a drift-time filter is actually in effect.
func (d DriftTime) Set() bool { return d.Unit != DriftTimeNone }

// Precursor describes the selected mass window for an MS/MS scan, or the
// product-ion window for a Product.
type Precursor struct {
	MZ               float64
	Charge           int // 0 = unknown
	IsolationLower   float64
	IsolationUpper   float64
	Activations      []Activation
	ActivationEnergy float64
	Drift            DriftTime
}

// Product is the selected product-ion mass window of a chromatogram or
// SRM/MRM transition; it shares Precursor's shape but is never charged
// and never carries activation information of its own.
type Product struct {
	MZ             float64
	IsolationLower float64
	IsolationUpper float64
}

// Window returns the closed isolation interval [MZ-lower, MZ+upper].
func (p Precursor) Window() (lo, hi float64) {
	return p.MZ - p.IsolationLower, p.MZ + p.IsolationUpper
}

func (p Product) Window() (lo, hi float64) {
	return p.MZ - p.IsolationLower, p.MZ + p.IsolationUpper
}
