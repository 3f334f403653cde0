// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "sync"

// Modification describes a Unimod-keyed residue or terminal modification:
// its mass delta and the residues it is permitted to apply to (empty
// meaning "any", used for terminal-only modifications).
type Modification struct {
	Accession string
	Name      string
	DeltaMass float64
	Sites     []byte // residue codes this may modify; empty = any/terminal
}

// ModificationsDB is the process-wide singleton of known modifications,
// keyed by Unimod accession. Lifecycle mirrors ResidueDB/ElementDB.
type ModificationsDB struct {
	mu   sync.RWMutex
	byID map[string]Modification
}

var (
	modsDBOnce sync.Once
	modsDB     *ModificationsDB
)

func GlobalModificationsDB() *ModificationsDB {
	modsDBOnce.Do(func() {
		modsDB = &ModificationsDB{byID: map[string]Modification{
			"UniMod:4":  {Accession: "UniMod:4", Name: "Carbamidomethyl", DeltaMass: 57.021464, Sites: []byte{'C'}},
			"UniMod:35": {Accession: "UniMod:35", Name: "Oxidation", DeltaMass: 15.994915, Sites: []byte{'M', 'W'}},
			"UniMod:1":  {Accession: "UniMod:1", Name: "Acetyl", DeltaMass: 42.010565, Sites: nil},
			"UniMod:21": {Accession: "UniMod:21", Name: "Phospho", DeltaMass: 79.966331, Sites: []byte{'S', 'T', 'Y'}},
		}}
	})
	return modsDB
}

func (db *ModificationsDB) DeltaMass(accession string) (float64, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	m, ok := db.byID[accession]
	if !ok {
		return 0, false
	}
	return m.DeltaMass, true
}

func (db *ModificationsDB) Lookup(accession string) (Modification, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	m, ok := db.byID[accession]
	return m, ok
}

// ForSite returns every modification that may apply to the residue code c.
func (db *ModificationsDB) ForSite(c byte) []Modification {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []Modification
	for _, m := range db.byID {
		if len(m.Sites) == 0 {
			out = append(out, m)
			continue
		}
		for _, s := range m.Sites {
			if s == c {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// AddCustomModification registers a new modification. Must happen before
// any parallel region starts, per spec.md §5/§9.
func (db *ModificationsDB) AddCustomModification(m Modification) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.byID[m.Accession] = m
}
