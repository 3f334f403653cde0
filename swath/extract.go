// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

import (
	"sort"

	"github.com/kortschak/msengine/msdata"
)

// ExtractedChromatogram is one transition's XIC built from a SwathMap,
// per spec.md §4.6 extraction stage 1.
type ExtractedChromatogram struct {
	Transition Transition
	Points     []msdata.RTPoint
}

// BuildChromatograms sums signal within ±mzTolerance around each
// transition's product m/z across every MS2 spectrum of m, applying RT
// windowing per the assay's library RT and RTWindow, per spec.md §4.6
// extraction stage 1.
func BuildChromatograms(m SwathMap, te TargetedExperiment, mzTolerance float64) []ExtractedChromatogram {
	out := make([]ExtractedChromatogram, len(te.Transitions))
	for i, t := range te.Transitions {
		out[i] = ExtractedChromatogram{Transition: t}
		pep, hasWindow := te.PeptideByRef(t.PeptideRef)
		for _, s := range m.Spectra {
			if hasWindow && pep.RTWindow > 0 {
				if s.RT < pep.LibraryRT-pep.RTWindow || s.RT > pep.LibraryRT+pep.RTWindow {
					continue
				}
			}
			intensity := sumWithinTolerance(s, t.ProductMZ, mzTolerance)
			out[i].Points = append(out[i].Points, msdata.RTPoint{RT: s.RT, Intensity: intensity})
		}
	}
	return out
}

// sumWithinTolerance sums peak intensity in [mz-tol, mz+tol], locating the
// window's lower bound by binary search over the spectrum's m/z-sorted
// peak list rather than scanning every peak.
func sumWithinTolerance(s *msdata.Spectrum, mz, tol float64) float32 {
	if !s.IsSorted() {
		s.SortByMZ()
	}
	lo, hi := mz-tol, mz+tol
	start := sort.Search(len(s.Peaks), func(i int) bool { return s.Peaks[i].MZ >= lo })
	var sum float32
	for i := start; i < len(s.Peaks) && s.Peaks[i].MZ <= hi; i++ {
		sum += s.Peaks[i].Intensity
	}
	return sum
}
