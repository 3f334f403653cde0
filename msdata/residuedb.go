// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import (
	"sync"

	"github.com/biogo/biogo/alphabet"
)

// ResidueDB is a process-wide read-mostly singleton of monoisotopic
// residue masses, lazily constructed on first access and never destroyed
// before process exit (spec.md §3). A residue code is valid if it is in
// the local mass table (the 20 naturals, the ambiguous codes B/Z/J/X,
// selenocysteine U and any custom additions); other letters are checked
// against biogo/biogo/alphabet.Protein's letter set, the way the teacher
// used alphabet.DNA/DNAredundant to validate nucleotide codes.
//
// Mutation (AddCustomResidue) is permitted but, per spec.md §5, must not
// happen concurrently with lookups: callers must add custom residues
// during a single-threaded initialization phase before any parallel
// region starts. locked is set the first time a lookup occurs;
// AddCustomResidue does not check it, so that ordering rests on the
// caller alone.
type ResidueDB struct {
	mu     sync.RWMutex
	mono   map[byte]float64
	locked bool
}

var (
	residueDBOnce sync.Once
	residueDB     *ResidueDB
)

// GlobalResidueDB returns the process-wide ResidueDB, constructing it on
// first call.
func GlobalResidueDB() *ResidueDB {
	residueDBOnce.Do(func() {
		residueDB = newResidueDB()
	})
	return residueDB
}

// monoisotopicResidueMasses are the standard monoisotopic masses (Da) of
// amino acid residues in a peptide chain (i.e. the amino acid minus
// water), taken from the standard tables bundled by mass-spec suites such
// as the teacher's own domain (OpenMS's Residues.xml, summarized here as
// a literal table since OBO/XML resource loading is out of scope per
// spec.md §1 — only mzML is a required file format).
var monoisotopicResidueMasses = map[byte]float64{
	'G': 57.02146,
	'A': 71.03711,
	'S': 87.03203,
	'P': 97.05276,
	'V': 99.06841,
	'T': 101.04768,
	'C': 103.00919,
	'L': 113.08406,
	'I': 113.08406,
	'N': 114.04293,
	'D': 115.02694,
	'Q': 128.05858,
	'K': 128.09496,
	'E': 129.04259,
	'M': 131.04049,
	'H': 137.05891,
	'F': 147.06841,
	'R': 156.10111,
	'Y': 163.06333,
	'W': 186.07931,
	'U': 150.95364, // selenocysteine
	// Ambiguous codes carry the average of their resolved possibilities;
	// callers doing mass-based work should avoid them (spec.md §4.5).
	'B': (114.04293 + 115.02694) / 2, // Asn/Asp
	'Z': (128.05858 + 129.04259) / 2, // Gln/Glu
	'J': (113.08406 + 113.08406) / 2, // Leu/Ile
	'X': 0,                           // unknown; mass undefined
}

func newResidueDB() *ResidueDB {
	db := &ResidueDB{mono: make(map[byte]float64, len(monoisotopicResidueMasses))}
	for k, v := range monoisotopicResidueMasses {
		db.mono[k] = v
	}
	return db
}

// IsValid reports whether c is a recognized residue code, consulting the
// local mass table first and biogo's Protein alphabet for any code the
// table does not list.
func (db *ResidueDB) IsValid(c byte) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	db.locked = true
	if _, ok := db.mono[c]; ok {
		return true
	}
	return alphabet.Protein.IsValid(alphabet.Letter(c))
}

// MonoMass returns the monoisotopic residue mass for c.
func (db *ResidueDB) MonoMass(c byte) (float64, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	db.locked = true
	m, ok := db.mono[c]
	return m, ok
}

// AddCustomResidue registers a non-standard residue mass. It is NOT
// callable from parallel regions (spec.md §9): callers must perform all
// AddCustomResidue calls before any lookup-issuing goroutine starts.
func (db *ResidueDB) AddCustomResidue(code byte, monoMass float64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.mono[code] = monoMass
}
