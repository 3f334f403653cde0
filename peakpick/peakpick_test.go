// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peakpick

import (
	"math"
	"testing"
)

func TestLinearResamplePreservesIntensity(t *testing.T) {
	// S1: five points resampled onto a 0.5 grid must conserve total
	// intensity.
	input := []Point{
		{Pos: 0, Intensity: 3},
		{Pos: 0.5, Intensity: 6},
		{Pos: 1, Intensity: 8},
		{Pos: 1.6, Intensity: 2},
		{Pos: 1.8, Intensity: 1},
	}
	out := LinearResample(input, 0.5)
	got := TotalIntensity(out)
	want := TotalIntensity(input)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("intensity not conserved: got %v want %v", got, want)
	}
}

func TestLinearResampleEmptyOrInvalid(t *testing.T) {
	if out := LinearResample(nil, 0.5); out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
	if out := LinearResample([]Point{{Pos: 1, Intensity: 1}}, 0); out != nil {
		t.Fatalf("expected nil for non-positive delta, got %v", out)
	}
}

func TestNavigatorEvalOutsidePackagesIsZero(t *testing.T) {
	points := []Point{
		{Pos: 0, Intensity: 1}, {Pos: 1, Intensity: 2}, {Pos: 2, Intensity: 3},
		{Pos: 3, Intensity: 2}, {Pos: 4, Intensity: 1},
	}
	nav, err := BuildNavigator(points, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if v := nav.Eval(-10); v != 0 {
		t.Fatalf("expected 0 before package, got %v", v)
	}
	if v := nav.Eval(10); v != 0 {
		t.Fatalf("expected 0 after package, got %v", v)
	}
}

func TestNavigatorSingletonMerge(t *testing.T) {
	// A lone point far from the next run must not become its own
	// package; it should be absorbed into the following run.
	points := []Point{
		{Pos: 0, Intensity: 5},
		{Pos: 10, Intensity: 1}, {Pos: 10.2, Intensity: 2}, {Pos: 10.4, Intensity: 3},
		{Pos: 10.6, Intensity: 2}, {Pos: 10.8, Intensity: 1},
	}
	nav, err := BuildNavigator(points, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(nav.packages) != 1 {
		t.Fatalf("expected singleton merged into following package, got %d packages", len(nav.packages))
	}
	if nav.packages[0].lo != 0 {
		t.Fatalf("expected merged package to start at the singleton's position, got %v", nav.packages[0].lo)
	}
}

func TestNavigatorSingletonMergeIntoPreceding(t *testing.T) {
	points := []Point{
		{Pos: 0, Intensity: 1}, {Pos: 0.2, Intensity: 2}, {Pos: 0.4, Intensity: 3},
		{Pos: 0.6, Intensity: 2}, {Pos: 0.8, Intensity: 1},
		{Pos: 10, Intensity: 5},
	}
	nav, err := BuildNavigator(points, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(nav.packages) != 1 {
		t.Fatalf("expected trailing singleton merged into preceding package, got %d packages", len(nav.packages))
	}
	if nav.packages[0].hi != 10 {
		t.Fatalf("expected merged package to end at the singleton's position, got %v", nav.packages[0].hi)
	}
}

func TestNavigatorGetNextPosBoundaryJump(t *testing.T) {
	a := []Point{
		{Pos: 0, Intensity: 1}, {Pos: 0.2, Intensity: 2}, {Pos: 0.4, Intensity: 3},
		{Pos: 0.6, Intensity: 2}, {Pos: 0.8, Intensity: 1},
	}
	b := []Point{
		{Pos: 5, Intensity: 1}, {Pos: 5.2, Intensity: 2}, {Pos: 5.4, Intensity: 3},
		{Pos: 5.6, Intensity: 2}, {Pos: 5.8, Intensity: 1},
	}
	points := append(append([]Point{}, a...), b...)
	nav, err := BuildNavigator(points, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(nav.packages) != 2 {
		t.Fatalf("expected two separate packages, got %d", len(nav.packages))
	}
	next := nav.GetNextPos(0.8, 1)
	if next != 5 {
		t.Fatalf("expected boundary jump to next package start 5, got %v", next)
	}
	beyond := nav.GetNextPos(5.8, 1)
	if beyond != 5.8 {
		t.Fatalf("expected global max returned beyond last package, got %v", beyond)
	}
}

func TestNavigatorGetNextPosAdvancesWithinPackage(t *testing.T) {
	points := []Point{
		{Pos: 0, Intensity: 1}, {Pos: 0.2, Intensity: 2}, {Pos: 0.4, Intensity: 3},
		{Pos: 0.6, Intensity: 2}, {Pos: 0.8, Intensity: 1},
	}
	nav, err := BuildNavigator(points, 1)
	if err != nil {
		t.Fatal(err)
	}
	next := nav.GetNextPos(0, 1)
	if math.Abs(next-0.2) > 1e-9 {
		t.Fatalf("expected advance by mean spacing 0.2, got %v", next)
	}
}
