// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

import (
	"log"
	"sort"

	"github.com/kortschak/msengine/mserr"
)

// Window is an external (lower, upper) isolation boundary, as read from
// a windows file.
type Window struct {
	Lower, Upper float64
}

// AnnotateSwathMapsFromFile attaches externally supplied isolation
// boundaries to maps in ascending order of upper bound, per spec.md
// §4.6's annotateSwathMapsFromFile contract. Each external window must
// be contained within the corresponding data-derived window; violation
// raises IllegalArgument unless force is set, in which case it is
// logged and the data-derived bounds are kept. A count mismatch between
// windows and maps is always fatal.
func AnnotateSwathMapsFromFile(maps []SwathMap, windows []Window, force bool, logger *log.Logger) error {
	if len(windows) != len(maps) {
		return mserr.New(mserr.IllegalArgument, "swath.AnnotateSwathMapsFromFile", errCountMismatch{want: len(maps), got: len(windows)})
	}

	sortedWindows := append([]Window{}, windows...)
	sort.Slice(sortedWindows, func(i, j int) bool { return sortedWindows[i].Upper < sortedWindows[j].Upper })

	mapOrder := make([]int, len(maps))
	for i := range mapOrder {
		mapOrder[i] = i
	}
	sort.Slice(mapOrder, func(i, j int) bool { return maps[mapOrder[i]].IsolationUpper < maps[mapOrder[j]].IsolationUpper })

	for rank, w := range sortedWindows {
		mi := mapOrder[rank]
		m := &maps[mi]
		contained := w.Lower >= m.IsolationLower && w.Upper <= m.IsolationUpper
		if !contained {
			if !force {
				return mserr.New(mserr.IllegalArgument, "swath.AnnotateSwathMapsFromFile",
					errWindowNotContained{window: w, mapLower: m.IsolationLower, mapUpper: m.IsolationUpper})
			}
			if logger != nil {
				logger.Printf("swath: external window [%v,%v] not contained in data window [%v,%v]; keeping data window (forced)",
					w.Lower, w.Upper, m.IsolationLower, m.IsolationUpper)
			}
			continue
		}
		m.IsolationLower = w.Lower
		m.IsolationUpper = w.Upper
	}
	return nil
}

type errCountMismatch struct{ want, got int }

func (e errCountMismatch) Error() string {
	return "window count mismatch"
}

type errWindowNotContained struct {
	window             Window
	mapLower, mapUpper float64
}

func (e errWindowNotContained) Error() string {
	return "external window not contained in data-derived window"
}

// CheckSwathMap validates m per spec.md §4.6's checkSwathMap contract:
// every spectrum must carry exactly one precursor, share m's MS level,
// and have isolation bounds within 0.1 Th of the first spectrum.
func CheckSwathMap(m SwathMap) error {
	if len(m.Spectra) == 0 {
		return nil
	}
	first := m.Spectra[0]
	if len(first.Precursors) != 1 {
		return mserr.New(mserr.Postcondition, "swath.CheckSwathMap", errPrecursorCount{n: len(first.Precursors)})
	}
	refLower, refUpper := first.Precursors[0].Window()
	for _, s := range m.Spectra {
		if len(s.Precursors) != 1 {
			return mserr.New(mserr.Postcondition, "swath.CheckSwathMap", errPrecursorCount{n: len(s.Precursors)})
		}
		if s.MSLevel != m.MSLevel {
			return mserr.New(mserr.Postcondition, "swath.CheckSwathMap", errMSLevelMismatch{want: m.MSLevel, got: s.MSLevel})
		}
		lower, upper := s.Precursors[0].Window()
		const tol = 0.1
		if abs(lower-refLower) > tol || abs(upper-refUpper) > tol {
			return mserr.New(mserr.Postcondition, "swath.CheckSwathMap", errIsolationDrift{})
		}
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

type errPrecursorCount struct{ n int }

func (e errPrecursorCount) Error() string { return "spectrum does not carry exactly one precursor" }

type errMSLevelMismatch struct{ want, got int }

func (e errMSLevelMismatch) Error() string { return "spectrum MS level does not match map" }

type errIsolationDrift struct{}

func (errIsolationDrift) Error() string { return "spectrum isolation bounds drift more than 0.1 Th from map reference" }
