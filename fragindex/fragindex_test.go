// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import "testing"

func defaultParams() BuildParams {
	return BuildParams{
		Digest: DigestParams{
			MissedCleavages: 1,
			MinLength:       5,
			MaxLength:       40,
		},
		MinMass:       0,
		MaxMass:       0,
		FragmentMinMZ: 100,
		FragmentMaxMZ: 2000,
		BucketSize:    16,
	}
}

// TestFragmentIndexRecoverability is S3: every enumerated peptide's own
// theoretical b/y spectrum, queried against its own precursor mass
// window, must recover that peptide with num_matched equal to the
// spectrum size.
func TestFragmentIndexRecoverability(t *testing.T) {
	proteins := []Protein{{Name: "P1", Sequence: "MSDEREVAEAATGEDASSPPPK"}}
	idx, err := Build(proteins, defaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if idx.NumPeptides() == 0 {
		t.Fatal("expected at least one enumerated peptide")
	}

	for pi := 0; pi < idx.NumPeptides(); pi++ {
		pep := idx.Peptide(pi)
		mzs, err := generateIonMZs(pep.Sequence, 100, 2000)
		if err != nil {
			t.Fatal(err)
		}
		if len(mzs) == 0 {
			continue
		}
		var peaks []Peak
		for _, mz := range mzs {
			peaks = append(peaks, Peak{MZ: mz, Intensity: 1})
		}

		for _, charge := range []int{1, 2, 3, 4} {
			mz := pep.Mass/float64(charge) + ProtonMass
			hits := idx.Query(QueryParams{
				PrecursorMZ: mz, Charge: charge, PrecursorPPMTol: 20,
				FragmentPPMTol: 20, TopN: 10,
			}, peaks)
			if len(hits) == 0 {
				t.Fatalf("peptide %d: no hits at charge %d", pi, charge)
			}
			found := false
			for _, h := range hits {
				if h.PeptideIdx == pi && h.NumMatched == len(mzs) {
					found = true
				}
			}
			if !found {
				t.Fatalf("peptide %d: not recovered with full match count at charge %d", pi, charge)
			}
		}
	}
}

func TestDigestMissedCleavages(t *testing.T) {
	seq := "AAKAAKAA"
	ranges := Digest(seq, DigestParams{MissedCleavages: 1, MinLength: 1, MaxLength: 100})
	if len(ranges) == 0 {
		t.Fatal("expected candidate ranges")
	}
	for _, r := range ranges {
		if r.Length <= 0 || r.Offset+r.Length > len(seq) {
			t.Fatalf("invalid candidate range %+v", r)
		}
	}
}

func TestDigestNoCleavageBeforeProline(t *testing.T) {
	ranges := Digest("AAKPAA", DigestParams{MissedCleavages: 0, MinLength: 1, MaxLength: 100})
	for _, r := range ranges {
		if r.Length == 3 {
			t.Fatal("should not cleave K before P")
		}
	}
}

func TestTopDownSkipsDigestion(t *testing.T) {
	ranges := Digest("MSDEREVAEAATGEDASSPPPK", DigestParams{TopDown: true, MinLength: 1, MaxLength: 1000})
	if len(ranges) != 1 {
		t.Fatalf("expected one whole-protein candidate, got %d", len(ranges))
	}
}
