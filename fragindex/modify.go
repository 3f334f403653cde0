// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import "github.com/kortschak/msengine/msdata"

// ApplyFixedMods returns a copy of seq with every residue matching one
// of the given fixed-modification accessions modified in place, per
// spec.md §4.5 step 2's "apply fixed modifications in-place". Accessions
// are looked up in the global ModificationsDB; unknown accessions are
// skipped rather than erroring, since a fixed-mod list naming a
// modification irrelevant to this alphabet is harmless.
func ApplyFixedMods(seq msdata.AASequence, accessions []string) msdata.AASequence {
	mdb := msdata.GlobalModificationsDB()
	out := msdata.AASequence{
		Residues: append([]msdata.Residue{}, seq.Residues...),
		NTermMod: seq.NTermMod,
		CTermMod: seq.CTermMod,
	}
	for _, acc := range accessions {
		mod, ok := mdb.Lookup(acc)
		if !ok {
			continue
		}
		for i, r := range out.Residues {
			if r.Modified() {
				continue
			}
			if sitesMatch(mod.Sites, r.Code) {
				out.Residues[i].ModAccession = acc
			}
		}
	}
	return out
}

func sitesMatch(sites []byte, code byte) bool {
	if len(sites) == 0 {
		return true
	}
	for _, s := range sites {
		if s == code {
			return true
		}
	}
	return false
}

// ExpandVariableMods returns every combination of up to maxPerPeptide
// variable modifications applied to seq's unmodified, eligible
// residues, per spec.md §4.5 step 2. The first returned sequence (combo
// index 0) is always the unmodified-variable base case. Combo indices
// are stable for a given (seq, accessions, maxPerPeptide) input, letting
// callers recover which combination produced a given Peptide from its
// ModComboIdx.
func ExpandVariableMods(seq msdata.AASequence, accessions []string, maxPerPeptide int) []msdata.AASequence {
	mdb := msdata.GlobalModificationsDB()

	type site struct {
		index int
		acc   string
	}
	var sites []site
	for i, r := range seq.Residues {
		if r.Modified() {
			continue
		}
		for _, acc := range accessions {
			mod, ok := mdb.Lookup(acc)
			if !ok {
				continue
			}
			if sitesMatch(mod.Sites, r.Code) {
				sites = append(sites, site{index: i, acc: acc})
			}
		}
	}

	out := []msdata.AASequence{cloneSeq(seq)}
	if maxPerPeptide <= 0 || len(sites) == 0 {
		return out
	}

	var combos [][]int
	var build func(start int, chosen []int)
	build = func(start int, chosen []int) {
		if len(chosen) > 0 {
			combos = append(combos, append([]int{}, chosen...))
		}
		if len(chosen) == maxPerPeptide {
			return
		}
		for i := start; i < len(sites); i++ {
			build(i+1, append(chosen, i))
		}
	}
	build(0, nil)

	for _, combo := range combos {
		v := cloneSeq(seq)
		for _, si := range combo {
			s := sites[si]
			v.Residues[s.index].ModAccession = s.acc
		}
		out = append(out, v)
	}
	return out
}

func cloneSeq(seq msdata.AASequence) msdata.AASequence {
	return msdata.AASequence{
		Residues: append([]msdata.Residue{}, seq.Residues...),
		NTermMod: seq.NTermMod,
		CTermMod: seq.CTermMod,
	}
}
