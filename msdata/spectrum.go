// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "sort"

// Spectrum is an ordered sequence of Peak1D plus its acquisition metadata.
// The ordering invariant is: after any mutating call, Peaks must be
// explicitly re-sorted by calling SortByMZ before the sortedness-dependent
// operations (picking, binary search, etc.) are relied upon; IsSorted
// reports whether that invariant currently holds.
type Spectrum struct {
	NativeID   string
	RT         float64
	MSLevel    int
	Precursors []Precursor
	Peaks      []Peak1D

	sorted bool
}

// NewSpectrum returns an empty spectrum at the given RT and MS level.
// An empty spectrum is trivially sorted.
func NewSpectrum(nativeID string, rt float64, level int) *Spectrum {
	return &Spectrum{NativeID: nativeID, RT: rt, MSLevel: level, sorted: true}
}

// SetPeaks replaces the peak list and sets the sorted flag by checking
// whether the new peaks are already in ascending m/z order.
func (s *Spectrum) SetPeaks(peaks []Peak1D) {
	s.Peaks = peaks
	s.sorted = sort.SliceIsSorted(peaks, func(i, j int) bool { return peaks[i].MZ < peaks[j].MZ })
}

// SortByMZ performs a stable ascending sort on m/z, O(n log n). It is
// idempotent: calling it twice in a row is a no-op on the second call.
func (s *Spectrum) SortByMZ() {
	if s.sorted {
		return
	}
	sort.Stable(byMZ(s.Peaks))
	s.sorted = true
}

// IsSorted reports whether the m/z ordering invariant currently holds.
func (s *Spectrum) IsSorted() bool {
	return s.sorted
}

// Len is the number of peaks in the spectrum.
func (s *Spectrum) Len() int { return len(s.Peaks) }

type byMZ []Peak1D

func (p byMZ) Len() int           { return len(p) }
func (p byMZ) Less(i, j int) bool { return p[i].MZ < p[j].MZ }
func (p byMZ) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// MZRange returns the minimal and maximal m/z over the spectrum's peaks.
// An empty spectrum returns (0, 0, false).
func (s *Spectrum) MZRange() (min, max float64, ok bool) {
	if len(s.Peaks) == 0 {
		return 0, 0, false
	}
	min, max = s.Peaks[0].MZ, s.Peaks[0].MZ
	for _, p := range s.Peaks[1:] {
		if p.MZ < min {
			min = p.MZ
		}
		if p.MZ > max {
			max = p.MZ
		}
	}
	return min, max, true
}

// FindNearest performs a binary search (requiring IsSorted) for the peak
// whose m/z is closest to mz, returning its index. It reports ok=false
// for an empty spectrum.
func (s *Spectrum) FindNearest(mz float64) (idx int, ok bool) {
	if len(s.Peaks) == 0 {
		return 0, false
	}
	i := sort.Search(len(s.Peaks), func(i int) bool { return s.Peaks[i].MZ >= mz })
	if i == 0 {
		return 0, true
	}
	if i == len(s.Peaks) {
		return i - 1, true
	}
	if s.Peaks[i].MZ-mz < mz-s.Peaks[i-1].MZ {
		return i, true
	}
	return i - 1, true
}
