// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package swath implements the SWATH/DIA targeted-extraction pipeline
// of spec.md §4.6: isolation-window annotation and validation,
// transition selection, per-transition chromatogram extraction, and
// MRMTransitionGroupPicker peak-group clustering.
package swath

import "github.com/kortschak/msengine/msdata"

// SwathMap is one (isolation_lower, isolation_upper, ms_level) window
// with its stream of spectra, per spec.md §4.6.
type SwathMap struct {
	IsolationLower float64
	IsolationUpper float64
	MSLevel        int
	Spectra        []*msdata.Spectrum
}

// Transition is one (precursor_mz, product_mz, library_intensity,
// peptide_ref, charge, decoy, detecting/quantifying/identifying) row of
// a TargetedExperiment, per spec.md §4.6.
type Transition struct {
	PrecursorMZ      float64
	ProductMZ        float64
	LibraryIntensity float64
	PeptideRef       string
	Charge           int
	Decoy            bool
	Detecting        bool
	Quantifying      bool
	Identifying      bool
}

// Peptide is one assay entry: a library retention time and the
// proteins it maps to.
type Peptide struct {
	Ref         string
	LibraryRT   float64
	RTWindow    float64 // half-width in seconds around LibraryRT to extract
	ProteinRefs []string
}

// TargetedExperiment is the (protein, peptide, transition) assay
// library, per spec.md §4.6.
type TargetedExperiment struct {
	Proteins    []string
	Peptides    []Peptide
	Transitions []Transition
}

// PeptideByRef returns the Peptide with the given ref, if present.
func (te TargetedExperiment) PeptideByRef(ref string) (Peptide, bool) {
	for _, p := range te.Peptides {
		if p.Ref == ref {
			return p, true
		}
	}
	return Peptide{}, false
}
