// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "sync"

// ElementDB is the process-wide singleton of monoisotopic element masses.
// The isotope fitter (C4) does not consult it: its averagine envelope is
// built from fixed constants. Lifecycle mirrors ResidueDB: lazily constructed, read-mostly,
// mutation forbidden once lookups are underway in parallel.
type ElementDB struct {
	mu   sync.RWMutex
	mono map[string]float64
}

var (
	elementDBOnce sync.Once
	elementDB     *ElementDB
)

func GlobalElementDB() *ElementDB {
	elementDBOnce.Do(func() {
		elementDB = &ElementDB{mono: map[string]float64{
			"H":  1.0078250319,
			"C":  12.0,
			"N":  14.0030740052,
			"O":  15.9949146221,
			"S":  31.97207069,
			"P":  30.97376151,
			"Se": 79.9165196,
		}}
	})
	return elementDB
}

func (db *ElementDB) MonoMass(symbol string) (float64, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	m, ok := db.mono[symbol]
	return m, ok
}

// AddCustomElement registers a non-standard element mass. As with
// ResidueDB.AddCustomResidue, this must happen before any parallel region
// starts.
func (db *ElementDB) AddCustomElement(symbol string, monoMass float64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.mono[symbol] = monoMass
}

// AverageNucleonSpacing is the mean mass difference between successive
// averagine isotope peaks (the ¹³C−¹²C spacing dominates in practice),
// used by the isotope model's grid-stretch step (spec.md §4.4).
const AverageNucleonSpacing = 1.00235
