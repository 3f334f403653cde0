// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msdata is the core LC-MS data model: peaks, spectra,
// chromatograms, experiments (maps), features, consensus features,
// peptide identifications and the process-wide chemistry databases.
// It follows the teacher's arena-and-index ownership style: containers
// own their elements outright, and cross-container references are plain
// indices rather than pointers or handles into a shared arena.
package msdata

// Peak1D is an (m/z, intensity) pair. The natural ordering key is MZ;
// Intensity is always non-negative.
type Peak1D struct {
	MZ        float64
	Intensity float32
}

// Less reports whether p sorts before o by m/z, the canonical ordering
// used by Spectrum.SortByMZ.
func (p Peak1D) Less(o Peak1D) bool { return p.MZ < o.MZ }

// RTPoint is an (RT, intensity) pair, the chromatogram analogue of Peak1D.
type RTPoint struct {
	RT        float64
	Intensity float32
}

func (p RTPoint) Less(o RTPoint) bool { return p.RT < o.RT }
