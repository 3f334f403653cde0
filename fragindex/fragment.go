// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import "github.com/kortschak/msengine/msdata"

const waterMonoMass = 18.0105646863

// residueMass returns the monoisotopic mass of r, including any
// modification delta, consulting the global ResidueDB/ModificationsDB
// singletons.
func residueMass(r msdata.Residue) (float64, bool) {
	rdb := msdata.GlobalResidueDB()
	m, ok := rdb.MonoMass(r.Code)
	if !ok {
		return 0, false
	}
	if r.Modified() {
		mdb := msdata.GlobalModificationsDB()
		delta, ok := mdb.DeltaMass(r.ModAccession)
		if !ok {
			return 0, false
		}
		m += delta
	}
	return m, true
}

// precursorMass sums residue masses plus terminal modifications and one
// water mass, giving the peptide's neutral monoisotopic mass. Equivalent
// to AASequence.MonoMass, except that an unknown residue or residue
// modification is reported as ok=false rather than as an error.
func precursorMass(seq msdata.AASequence) (float64, bool) {
	mdb := msdata.GlobalModificationsDB()
	mass := waterMonoMass
	for _, r := range seq.Residues {
		m, ok := residueMass(r)
		if !ok {
			return 0, false
		}
		mass += m
	}
	if seq.NTermMod != "" {
		if d, ok := mdb.DeltaMass(seq.NTermMod); ok {
			mass += d
		}
	}
	if seq.CTermMod != "" {
		if d, ok := mdb.DeltaMass(seq.CTermMod); ok {
			mass += d
		}
	}
	return mass, true
}

// generateIonMZs returns the singly-charged b- and y-ion m/z values for
// seq, restricted to [minMZ, maxMZ], per spec.md §4.5 step 4. Both ion
// series run from the first to the second-to-last cleavage: b_i covers
// residues [0,i), y_i covers residues [len-i,len).
func generateIonMZs(seq msdata.AASequence, minMZ, maxMZ float64) ([]float64, error) {
	n := len(seq.Residues)
	masses := make([]float64, n)
	for i, r := range seq.Residues {
		m, ok := residueMass(r)
		if !ok {
			return nil, errUnknownResidueFragment{code: r.Code}
		}
		masses[i] = m
	}

	var out []float64
	// b ions: cumulative N-terminal sums plus a proton.
	running := 0.0
	for i := 0; i < n-1; i++ {
		running += masses[i]
		mz := running + ProtonMass
		if mz >= minMZ && mz <= maxMZ {
			out = append(out, mz)
		}
	}
	// y ions: cumulative C-terminal sums plus water and a proton.
	running = waterMonoMass
	for i := 0; i < n-1; i++ {
		running += masses[n-1-i]
		mz := running + ProtonMass
		if mz >= minMZ && mz <= maxMZ {
			out = append(out, mz)
		}
	}
	return out, nil
}

type errUnknownResidueFragment struct{ code byte }

func (e errUnknownResidueFragment) Error() string {
	return "unknown residue in fragment generation: " + string(e.code)
}
