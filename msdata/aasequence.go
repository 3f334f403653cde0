// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import (
	"strings"

	"github.com/kortschak/msengine/mserr"
)

// Residue is either an unmodified amino acid drawn from the closed set (the
// 20 naturals plus ambiguous codes B/Z/J/X and selenocysteine U) or a
// modified variant keyed by a ModificationsDB (Unimod) accession.
type Residue struct {
	Code         byte   // one-letter code, upper-case
	ModAccession string // empty when unmodified
}

func (r Residue) Modified() bool { return r.ModAccession != "" }

// AASequence is an ordered sequence of Residue plus optional N-/C-terminal
// modifications, the peptide-level unit the fragment index and scoring
// kernels operate over.
type AASequence struct {
	Residues []Residue
	NTermMod string
	CTermMod string
}

// ParseUnmodified builds an AASequence with no modifications from a plain
// one-letter-code string, validating every residue against ResidueDB's
// closed alphabet.
func ParseUnmodified(s string) (AASequence, error) {
	db := GlobalResidueDB()
	seq := AASequence{Residues: make([]Residue, 0, len(s))}
	for i := 0; i < len(s); i++ {
		c := byte(strings.ToUpper(string(s[i]))[0])
		if !db.IsValid(c) {
			return AASequence{}, mserr.New(mserr.InvalidValue, "msdata.ParseUnmodified", errUnknownResidue(c))
		}
		seq.Residues = append(seq.Residues, Residue{Code: c})
	}
	return seq, nil
}

type errUnknownResidue byte

func (e errUnknownResidue) Error() string { return "unknown residue code: " + string(byte(e)) }

// Len is the number of residues (terminal modifications do not count).
func (a AASequence) Len() int { return len(a.Residues) }

// String renders the plain one-letter-code sequence without modification
// annotations, suitable for digestion-rule matching.
func (a AASequence) String() string {
	var b strings.Builder
	b.Grow(len(a.Residues))
	for _, r := range a.Residues {
		b.WriteByte(r.Code)
	}
	return b.String()
}

// MonoMass is the monoisotopic neutral mass of the peptide: the sum of
// residue masses (looked up in ResidueDB, plus ModificationsDB's delta
// mass for modified residues) plus one water mass for the free
// termini, plus any terminal modification deltas.
func (a AASequence) MonoMass() (float64, error) {
	rdb := GlobalResidueDB()
	mdb := GlobalModificationsDB()
	mass := waterMonoMass
	for _, r := range a.Residues {
		m, ok := rdb.MonoMass(r.Code)
		if !ok {
			return 0, mserr.New(mserr.InvalidValue, "AASequence.MonoMass", errUnknownResidue(r.Code))
		}
		mass += m
		if r.Modified() {
			delta, ok := mdb.DeltaMass(r.ModAccession)
			if !ok {
				return 0, mserr.New(mserr.MissingInformation, "AASequence.MonoMass", errUnknownMod(r.ModAccession))
			}
			mass += delta
		}
	}
	if a.NTermMod != "" {
		delta, ok := mdb.DeltaMass(a.NTermMod)
		if ok {
			mass += delta
		}
	}
	if a.CTermMod != "" {
		delta, ok := mdb.DeltaMass(a.CTermMod)
		if ok {
			mass += delta
		}
	}
	return mass, nil
}

type errUnknownMod string

func (e errUnknownMod) Error() string { return "unknown modification accession: " + string(e) }

// waterMonoMass is the monoisotopic mass of H2O, added once per peptide to
// account for the free N- and C-termini.
const waterMonoMass = 18.0105646863
