// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

// DigestParams governs protein-to-peptide enumeration, spec.md §4.5
// step 1.
type DigestParams struct {
	// TopDown, when set, skips digestion entirely and treats each
	// protein as a single peptide.
	TopDown         bool
	MissedCleavages int
	MinLength       int
	MaxLength       int
}

// candidateRange is a (offset, length) span into a protein sequence
// produced by digestion, before mass filtering or modification
// expansion.
type candidateRange struct {
	Offset, Length int
}

// Digest enumerates tryptic (cleave after K/R, not before P) candidate
// peptides from seq with up to params.MissedCleavages missed
// cleavages, filtered by residue-count length bounds. TopDown mode
// bypasses digestion, matching spec.md §4.5 step 1's "top-down mode
// skips digestion and treats each protein as one peptide".
func Digest(seq string, params DigestParams) []candidateRange {
	if params.TopDown {
		if ok := withinLength(len(seq), params); !ok {
			return nil
		}
		return []candidateRange{{Offset: 0, Length: len(seq)}}
	}

	sites := cleavageSites(seq)
	var out []candidateRange
	for i := range sites {
		start := 0
		if i > 0 {
			start = sites[i-1]
		}
		for miss := 0; miss <= params.MissedCleavages && i+miss < len(sites); miss++ {
			end := sites[i+miss]
			length := end - start
			if withinLength(length, params) {
				out = append(out, candidateRange{Offset: start, Length: length})
			}
		}
	}
	return out
}

func withinLength(length int, params DigestParams) bool {
	if params.MinLength > 0 && length < params.MinLength {
		return false
	}
	if params.MaxLength > 0 && length > params.MaxLength {
		return false
	}
	return length > 0
}

// cleavageSites returns the sequence offsets (exclusive ends of a
// fully-cleaved peptide) where trypsin would cut: immediately after K
// or R, unless the following residue is P. The final site is always
// len(seq), closing the C-terminal peptide.
func cleavageSites(seq string) []int {
	var sites []int
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c != 'K' && c != 'R' {
			continue
		}
		if i+1 < len(seq) && seq[i+1] == 'P' {
			continue
		}
		sites = append(sites, i+1)
	}
	if len(sites) == 0 || sites[len(sites)-1] != len(seq) {
		sites = append(sites, len(seq))
	}
	return sites
}
