// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

// Experiment (called "Map" in spec.md §3) is an ordered sequence of
// Spectra in chronological RT order, and a parallel sequence of
// Chromatograms. It owns both outright. Range indices are explicitly
// recomputed by UpdateRanges and are otherwise stale data, never
// maintained incrementally.
type Experiment struct {
	Spectra       []*Spectrum
	Chromatograms []*Chromatogram

	ranges RangeManager
}

// NewExperiment returns an empty Experiment with ranges at their sentinel.
func NewExperiment() *Experiment {
	e := &Experiment{}
	e.ranges.Clear()
	return e
}

// Size is the number of spectra; an empty Experiment has Size()==0.
func (e *Experiment) Size() int { return len(e.Spectra) }

// AddSpectrum appends a spectrum. Chronological RT order is the reader's
// responsibility (spec.md §5); Experiment does not re-sort on insert.
func (e *Experiment) AddSpectrum(s *Spectrum) { e.Spectra = append(e.Spectra, s) }

func (e *Experiment) AddChromatogram(c *Chromatogram) { e.Chromatograms = append(e.Chromatograms, c) }

// UpdateRanges performs a single pass over all spectra and chromatograms,
// recomputing the min/max of m/z, RT and intensity. It is idempotent:
// calling it twice in a row without mutation produces identical values.
// An empty Experiment leaves the range at its sentinel (empty) value.
func (e *Experiment) UpdateRanges() {
	e.ranges.Clear()
	for _, s := range e.Spectra {
		if len(s.Peaks) == 0 {
			continue
		}
		e.ranges.RT.extend(s.RT)
		for _, p := range s.Peaks {
			e.ranges.MZ.extend(p.MZ)
			e.ranges.Intensity.extend(float64(p.Intensity))
		}
	}
	for _, c := range e.Chromatograms {
		for _, p := range c.Points {
			e.ranges.RT.extend(p.RT)
			e.ranges.Intensity.extend(float64(p.Intensity))
		}
	}
}

// Ranges returns the most recently computed RangeManager; it reflects the
// Experiment's contents only until the next mutation, per spec.md §4.1.
func (e *Experiment) Ranges() RangeManager { return e.ranges }

// MS1Spectra returns the indices of all level-1 spectra, in RT order.
func (e *Experiment) MS1Spectra() []int {
	var out []int
	for i, s := range e.Spectra {
		if s.MSLevel == 1 {
			out = append(out, i)
		}
	}
	return out
}

// MS2Spectra returns the indices of all level-2 (or higher) spectra.
func (e *Experiment) MS2Spectra() []int {
	var out []int
	for i, s := range e.Spectra {
		if s.MSLevel >= 2 {
			out = append(out, i)
		}
	}
	return out
}

// RTIndex builds a Range1DIndex over all spectra's RT positions, treating
// each spectrum as the narrow interval [RT, RT+1/scale), for sub-linear
// RT-window queries used by the targeted extraction pipeline.
func (e *Experiment) RTIndex() *Range1DIndex {
	idx := &Range1DIndex{}
	for i, s := range e.Spectra {
		// A half-open point interval of width one scale unit so it
		// is not degenerate under biogo/store/interval's Overlap test.
		idx.Insert(s.RT, s.RT+1.0/scale, i)
	}
	idx.Build()
	return idx
}
