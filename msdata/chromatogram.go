// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "sort"

// Chromatogram is an ordered sequence of (RT, intensity) points, the RT
// analogue of Spectrum, plus the precursor/product descriptors that define
// which transition it traces.
type Chromatogram struct {
	NativeID  string
	Precursor Precursor
	Product   Product
	Points    []RTPoint

	sorted bool
}

func NewChromatogram(nativeID string) *Chromatogram {
	return &Chromatogram{NativeID: nativeID, sorted: true}
}

func (c *Chromatogram) SetPoints(points []RTPoint) {
	c.Points = points
	c.sorted = sort.SliceIsSorted(points, func(i, j int) bool { return points[i].RT < points[j].RT })
}

func (c *Chromatogram) SortByRT() {
	if c.sorted {
		return
	}
	sort.Stable(byRT(c.Points))
	c.sorted = true
}

func (c *Chromatogram) IsSorted() bool { return c.sorted }

func (c *Chromatogram) Len() int { return len(c.Points) }

type byRT []RTPoint

func (p byRT) Len() int           { return len(p) }
func (p byRT) Less(i, j int) bool { return p[i].RT < p[j].RT }
func (p byRT) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// RTRange returns the minimal and maximal RT over the chromatogram's points.
func (c *Chromatogram) RTRange() (min, max float64, ok bool) {
	if len(c.Points) == 0 {
		return 0, 0, false
	}
	min, max = c.Points[0].RT, c.Points[0].RT
	for _, p := range c.Points[1:] {
		if p.RT < min {
			min = p.RT
		}
		if p.RT > max {
			max = p.RT
		}
	}
	return min, max, true
}

// TotalIntensity sums the intensity over all points.
func (c *Chromatogram) TotalIntensity() float64 {
	var sum float64
	for _, p := range c.Points {
		sum += float64(p.Intensity)
	}
	return sum
}
