// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

import (
	"math"
	"sort"

	"github.com/biogo/store/step"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kortschak/msengine/msdata"
)

// PeakGroupOptions governs MRMTransitionGroupPicker, spec.md §4.6 stage
// 2.
type PeakGroupOptions struct {
	MinRelHeight       float64 // fraction of max intensity a local maximum must clear
	IntensityRatio     float64 // minimum fraction of the seed peak's intensity a peak must have to join its group
	MaxFeatureCount    int
	SubtractBackground bool
}

// PeakGroup is one picked (best_left, best_right) RT region spanning
// one or more co-eluting transition peaks, per spec.md §4.6.
type PeakGroup struct {
	BestLeft, BestRight float64
	Apex                float64 // RT of the seed (highest-intensity) peak
	Area                float64 // summed area across member transitions within [BestLeft, BestRight], background-subtracted when SubtractBackground is set
	Transitions         []int   // indices into the chromatogram slice passed to the picker
}

type chromPeak struct {
	transitionIdx int
	apex          float64
	apexIntensity float64
	left, right   float64
}

// MRMTransitionGroupPicker runs spec.md §4.6 stage 2 over one peptide's
// co-eluting transition chromatograms: per-chromatogram peak picking,
// cross-transition clustering via connected components over an overlap
// graph, greedy group assembly by descending apex intensity, and
// optional background subtraction.
func MRMTransitionGroupPicker(chroms []ExtractedChromatogram, opts PeakGroupOptions) []PeakGroup {
	var peaks []chromPeak
	for ci, c := range chroms {
		peaks = append(peaks, pickChromPeaks(c.Points, ci, opts.MinRelHeight)...)
	}
	if len(peaks) == 0 {
		return nil
	}

	g := simple.NewUndirectedGraph()
	for i := range peaks {
		g.AddNode(peakNode(i))
	}
	for i := range peaks {
		for j := i + 1; j < len(peaks); j++ {
			if peaks[i].transitionIdx == peaks[j].transitionIdx {
				continue
			}
			if overlaps(peaks[i], peaks[j]) {
				g.SetEdge(simple.Edge{F: peakNode(i), T: peakNode(j)})
			}
		}
	}

	var groups []PeakGroup
	for _, component := range topo.ConnectedComponents(g) {
		members := make([]int, len(component))
		for i, n := range component {
			members[i] = int(n.ID())
		}
		groups = append(groups, assembleGroups(peaks, members, opts)...)
	}

	for gi := range groups {
		if opts.SubtractBackground {
			subtractBackground(&groups[gi], chroms)
			continue
		}
		for _, ti := range groups[gi].Transitions {
			for _, p := range chroms[ti].Points {
				if p.RT >= groups[gi].BestLeft && p.RT <= groups[gi].BestRight {
					groups[gi].Area += float64(p.Intensity)
				}
			}
		}
	}
	return groups
}

type peakNode int64

func (n peakNode) ID() int64 { return int64(n) }

func overlaps(a, b chromPeak) bool {
	return a.left <= b.right && b.left <= a.right
}

// assembleGroups applies the greedy seed-and-collect rule within one
// connected component: sort by apex intensity descending, repeatedly
// seed a new group from the strongest unclaimed peak, and absorb
// unclaimed overlapping peaks until IntensityRatio or MaxFeatureCount
// stops it.
func assembleGroups(peaks []chromPeak, members []int, opts PeakGroupOptions) []PeakGroup {
	sort.Slice(members, func(i, j int) bool {
		return peaks[members[i]].apexIntensity > peaks[members[j]].apexIntensity
	})
	claimed := make(map[int]bool)
	var groups []PeakGroup
	for _, seedIdx := range members {
		if claimed[seedIdx] {
			continue
		}
		seed := peaks[seedIdx]
		claimed[seedIdx] = true
		group := PeakGroup{BestLeft: seed.left, BestRight: seed.right, Apex: seed.apex, Transitions: []int{seed.transitionIdx}}
		for _, candIdx := range members {
			if claimed[candIdx] {
				continue
			}
			cand := peaks[candIdx]
			if opts.MaxFeatureCount > 0 && len(group.Transitions) >= opts.MaxFeatureCount {
				break
			}
			if opts.IntensityRatio > 0 && cand.apexIntensity < seed.apexIntensity*opts.IntensityRatio {
				continue
			}
			if !overlapsRange(group.BestLeft, group.BestRight, cand.left, cand.right) {
				continue
			}
			claimed[candIdx] = true
			group.Transitions = append(group.Transitions, cand.transitionIdx)
			if cand.left < group.BestLeft {
				group.BestLeft = cand.left
			}
			if cand.right > group.BestRight {
				group.BestRight = cand.right
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func overlapsRange(lo1, hi1, lo2, hi2 float64) bool {
	return lo1 <= hi2 && lo2 <= hi1
}

// pickChromPeaks finds local-maxima peaks above minRelHeight · max(intensity)
// and expands each to the nearest valley (or chromatogram edge) on both
// sides.
func pickChromPeaks(points []msdata.RTPoint, transitionIdx int, minRelHeight float64) []chromPeak {
	if len(points) == 0 {
		return nil
	}
	maxIntensity := 0.0
	for _, p := range points {
		if float64(p.Intensity) > maxIntensity {
			maxIntensity = float64(p.Intensity)
		}
	}
	if maxIntensity == 0 {
		return nil
	}
	threshold := minRelHeight * maxIntensity

	var out []chromPeak
	for i := 1; i < len(points)-1; i++ {
		v := float64(points[i].Intensity)
		if v < threshold {
			continue
		}
		if v < float64(points[i-1].Intensity) || v < float64(points[i+1].Intensity) {
			continue
		}
		left := i
		for left > 0 && points[left-1].Intensity <= points[left].Intensity {
			left--
		}
		right := i
		for right < len(points)-1 && points[right+1].Intensity <= points[right].Intensity {
			right++
		}
		out = append(out, chromPeak{
			transitionIdx: transitionIdx,
			apex:          points[i].RT,
			apexIntensity: v,
			left:          points[left].RT,
			right:         points[right].RT,
		})
	}
	return out
}

// subtractBackground estimates the baseline as the average of
// intensities at (BestLeft, BestRight) across every member transition's
// chromatogram and subtracts avg·N_points from the total area, per
// spec.md §4.6. N_points is counted with one biogo/store/step.Vector per
// member transition, marking that transition's samples within the
// group's RT span; samples of different transitions are counted
// separately, one for each intensity added to the total.
func subtractBackground(g *PeakGroup, chroms []ExtractedChromatogram) {
	var total float64
	var baselineSum float64
	var baselineCount int
	var nPoints int

	for _, ti := range g.Transitions {
		pts := chroms[ti].Points
		if len(pts) == 0 {
			continue
		}
		v, err := step.New(0, len(pts), coverage(false))
		if err != nil {
			continue
		}
		v.Relaxed = true
		for i, p := range pts {
			if p.RT < g.BestLeft || p.RT > g.BestRight {
				continue
			}
			total += float64(p.Intensity)
			v.ApplyRange(i, i+1, func(step.Equaler) step.Equaler { return coverage(true) })
		}
		v.Do(func(start, end int, e step.Equaler) {
			if e.(coverage) {
				nPoints += end - start
			}
		})
		if leftVal, ok := nearestIntensity(pts, g.BestLeft); ok {
			baselineSum += leftVal
			baselineCount++
		}
		if rightVal, ok := nearestIntensity(pts, g.BestRight); ok {
			baselineSum += rightVal
			baselineCount++
		}
	}

	if baselineCount > 0 {
		avg := baselineSum / float64(baselineCount)
		total -= avg * float64(nPoints)
		if total < 0 {
			total = 0
		}
	}
	g.Area = total
}

type coverage bool

func (c coverage) Equal(e step.Equaler) bool { return c == e.(coverage) }

func nearestIntensity(pts []msdata.RTPoint, rt float64) (float64, bool) {
	if len(pts) == 0 {
		return 0, false
	}
	best := 0
	bestDist := math.Abs(pts[0].RT - rt)
	for i, p := range pts {
		d := math.Abs(p.RT - rt)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return float64(pts[best].Intensity), true
}

var _ graph.Node = peakNode(0)
