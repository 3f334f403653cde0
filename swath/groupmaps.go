// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

import (
	"sort"

	"github.com/kortschak/msengine/msdata"
)

// GroupSwathMaps partitions an Experiment's spectra into SwathMaps by
// their single precursor's isolation window, the data-derived grouping
// that AnnotateSwathMapsFromFile's external windows file is later
// matched against. Spectra with zero or more than one precursor are
// skipped: CheckSwathMap's single-precursor invariant is enforced at
// annotation/validation time, not here, so a malformed file produces an
// empty or short map rather than a silent panic during grouping.
// Returned maps are sorted by ascending isolation upper bound.
func GroupSwathMaps(exp *msdata.Experiment) []SwathMap {
	type key struct {
		lower, upper float64
		level        int
	}
	index := make(map[key]int)
	var maps []SwathMap

	for _, s := range exp.Spectra {
		if len(s.Precursors) != 1 {
			continue
		}
		lower, upper := s.Precursors[0].Window()
		k := key{lower: lower, upper: upper, level: s.MSLevel}
		if i, ok := index[k]; ok {
			maps[i].Spectra = append(maps[i].Spectra, s)
			continue
		}
		index[k] = len(maps)
		maps = append(maps, SwathMap{IsolationLower: lower, IsolationUpper: upper, MSLevel: s.MSLevel, Spectra: []*msdata.Spectrum{s}})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].IsolationUpper < maps[j].IsolationUpper })
	return maps
}
