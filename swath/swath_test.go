// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

import (
	"math"
	"strings"
	"testing"

	"github.com/kortschak/msengine/mserr"
	"github.com/kortschak/msengine/msdata"
)

func rawMaps() []SwathMap {
	return []SwathMap{
		{IsolationLower: 400, IsolationUpper: 425, MSLevel: 2},
		{IsolationLower: 424, IsolationUpper: 449, MSLevel: 2},
		{IsolationLower: 448, IsolationUpper: 473, MSLevel: 2},
	}
}

// TestAnnotateSwathMapsRejectsUncontainedWindow is S6's force=false
// branch: the external window [425,450] is not contained in the
// data-derived window [424,449].
func TestAnnotateSwathMapsRejectsUncontainedWindow(t *testing.T) {
	maps := rawMaps()
	windows := []Window{{400, 425}, {425, 450}, {450, 475}}
	err := AnnotateSwathMapsFromFile(maps, windows, false, nil)
	if err == nil {
		t.Fatal("expected IllegalArgument error")
	}
	if !mserr.Is(err, mserr.IllegalArgument) {
		t.Fatalf("expected IllegalArgument, got %v", err)
	}
}

// TestAnnotateSwathMapsForceReannotates is S6's force=true branch.
func TestAnnotateSwathMapsForceReannotates(t *testing.T) {
	maps := rawMaps()
	windows := []Window{{400, 425}, {425, 450}, {450, 475}}
	err := AnnotateSwathMapsFromFile(maps, windows, true, nil)
	if err != nil {
		t.Fatalf("force=true should not fail: %v", err)
	}
	if maps[1].IsolationLower != 424 || maps[1].IsolationUpper != 449 {
		t.Fatalf("uncontained window should have been skipped, kept data bounds; got [%v,%v]",
			maps[1].IsolationLower, maps[1].IsolationUpper)
	}
	if maps[0].IsolationLower != 400 || maps[0].IsolationUpper != 425 {
		t.Fatalf("contained window should have been applied; got [%v,%v]", maps[0].IsolationLower, maps[0].IsolationUpper)
	}
}

// TestAnnotateSwathMapsCountMismatchAlwaysFatal: count mismatch is fatal
// regardless of force.
func TestAnnotateSwathMapsCountMismatchAlwaysFatal(t *testing.T) {
	maps := rawMaps()
	windows := []Window{{400, 425}, {425, 450}}
	if err := AnnotateSwathMapsFromFile(maps, windows, true, nil); err == nil {
		t.Fatal("expected count-mismatch error even with force=true")
	}
}

func TestSelectSwathTransitions(t *testing.T) {
	te := TargetedExperiment{
		Proteins: []string{"P1", "P2"},
		Peptides: []Peptide{
			{Ref: "pep1", ProteinRefs: []string{"P1"}},
			{Ref: "pep2", ProteinRefs: []string{"P2"}},
		},
		Transitions: []Transition{
			{PrecursorMZ: 410, ProductMZ: 500, PeptideRef: "pep1"}, // inside, far from edge
			{PrecursorMZ: 424.5, ProductMZ: 600, PeptideRef: "pep2"}, // too close to upper edge
			{PrecursorMZ: 399, ProductMZ: 700, PeptideRef: "pep1"}, // outside
		},
	}
	sel := SelectSwathTransitions(te, 400, 425, 1)
	if len(sel.Transitions) != 1 {
		t.Fatalf("expected 1 selected transition, got %d", len(sel.Transitions))
	}
	if len(sel.Peptides) != 1 || sel.Peptides[0].Ref != "pep1" {
		t.Fatalf("expected only pep1 pulled in transitively, got %+v", sel.Peptides)
	}
	if len(sel.Proteins) != 1 || sel.Proteins[0] != "P1" {
		t.Fatalf("expected only P1 pulled in transitively, got %+v", sel.Proteins)
	}
}

func TestCheckSwathMapDetectsIsolationDrift(t *testing.T) {
	mk := func(lower, upper float64) *msdata.Spectrum {
		s := msdata.NewSpectrum("scan", 1, 2)
		s.Precursors = []msdata.Precursor{{IsolationLower: lower, IsolationUpper: upper}}
		return s
	}
	m := SwathMap{MSLevel: 2, Spectra: []*msdata.Spectrum{mk(400, 425), mk(400.5, 425.5)}}
	if err := CheckSwathMap(m); err == nil {
		t.Fatal("expected isolation drift of 0.5 Th (> 0.1 Th tolerance) to be rejected")
	}
}

func TestCheckSwathMapAcceptsConsistentMap(t *testing.T) {
	mk := func() *msdata.Spectrum {
		s := msdata.NewSpectrum("scan", 1, 2)
		s.Precursors = []msdata.Precursor{{IsolationLower: 400, IsolationUpper: 425}}
		return s
	}
	m := SwathMap{MSLevel: 2, Spectra: []*msdata.Spectrum{mk(), mk()}}
	if err := CheckSwathMap(m); err != nil {
		t.Fatalf("consistent map should pass: %v", err)
	}
}

func TestMRMTransitionGroupPickerFindsGroup(t *testing.T) {
	gauss := func(center float64, pts int) []msdata.RTPoint {
		out := make([]msdata.RTPoint, pts)
		for i := 0; i < pts; i++ {
			rt := float64(i)
			d := rt - center
			out[i] = msdata.RTPoint{RT: rt, Intensity: float32(1000 * math.Exp(-d*d/8))}
		}
		return out
	}
	chroms := []ExtractedChromatogram{
		{Transition: Transition{PeptideRef: "pep1"}, Points: gauss(10, 20)},
		{Transition: Transition{PeptideRef: "pep1"}, Points: gauss(10.2, 20)},
	}
	groups := MRMTransitionGroupPicker(chroms, PeakGroupOptions{
		MinRelHeight: 0.1, IntensityRatio: 0.1, MaxFeatureCount: 5, SubtractBackground: true,
	})
	if len(groups) == 0 {
		t.Fatal("expected at least one peak group")
	}
	g := groups[0]
	if g.BestLeft >= g.Apex || g.BestRight <= g.Apex {
		t.Fatalf("expected apex strictly within [best_left,best_right], got left=%v apex=%v right=%v", g.BestLeft, g.Apex, g.BestRight)
	}
}

func TestReadWindowsFile(t *testing.T) {
	data := "lower\tupper\n400\t425\n424\t449\n"
	windows, err := ReadWindowsFile(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 || windows[0].Lower != 400 || windows[1].Upper != 449 {
		t.Fatalf("unexpected windows: %+v", windows)
	}
}

func TestReadWindowsFileRejectsBadBounds(t *testing.T) {
	data := "lower\tupper\n425\t400\n"
	if _, err := ReadWindowsFile(strings.NewReader(data)); err == nil {
		t.Fatal("expected error for lower >= upper")
	}
}

func TestReadTransitionsTSV(t *testing.T) {
	data := "peptide_ref\tprotein_ref\tprecursor_mz\tproduct_mz\tlibrary_intensity\tcharge\tdecoy\tlibrary_rt\trt_window\n" +
		"pep1\tP1\t410.2\t500.1\t1000\t2\tfalse\t1200\t60\n" +
		"pep1\tP1\t410.2\t650.3\t800\t2\tfalse\t1200\t60\n"
	te, err := ReadTransitionsTSV(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(te.Transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(te.Transitions))
	}
	if len(te.Peptides) != 1 || te.Peptides[0].Ref != "pep1" {
		t.Fatalf("expected 1 deduplicated peptide, got %+v", te.Peptides)
	}
	if len(te.Proteins) != 1 || te.Proteins[0] != "P1" {
		t.Fatalf("expected 1 deduplicated protein, got %+v", te.Proteins)
	}
}

func TestGroupSwathMaps(t *testing.T) {
	exp := msdata.NewExperiment()
	mk := func(lower, upper float64, level int) *msdata.Spectrum {
		s := msdata.NewSpectrum("s", 1, level)
		if level == 2 {
			s.Precursors = []msdata.Precursor{{IsolationLower: lower, IsolationUpper: upper}}
		}
		return s
	}
	exp.AddSpectrum(mk(12.5, 12.5, 2))
	exp.AddSpectrum(mk(12.5, 12.5, 2))
	exp.AddSpectrum(mk(37.5, 37.5, 2))

	maps := GroupSwathMaps(exp)
	if len(maps) != 2 {
		t.Fatalf("expected 2 distinct isolation windows, got %d", len(maps))
	}
	if len(maps[0].Spectra) != 2 {
		t.Fatalf("expected the first window to have collected both matching spectra, got %d", len(maps[0].Spectra))
	}
}
