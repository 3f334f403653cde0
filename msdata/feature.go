// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "sort"

// Hull2D is the convex hull of a 2D (RT × m/z) region, represented as its
// vertex list; callers that only need the bounding box can use BoundingBox
// without walking the hull.
type Hull2D struct {
	Points []struct{ RT, MZ float64 }
}

// BoundingBox returns the axis-aligned bounding box of the hull.
func (h Hull2D) BoundingBox() (rt, mz Range1D) {
	rt, mz = sentinelRange, sentinelRange
	for _, p := range h.Points {
		rt.extend(p.RT)
		mz.extend(p.MZ)
	}
	return rt, mz
}

// Feature is a 2D (RT × m/z) region with intensity, charge, an overall
// quality in [0,1], per-dimension qualities, and arbitrary meta values.
// FeatureMap owns Features outright.
type Feature struct {
	UID            uint64
	Hull           Hull2D
	Intensity      float64
	Charge         int
	OverallQuality float64 // in [0,1]; -1 marks a failed fit (spec.md §7)
	RTQuality      float64
	MZQuality      float64
	RT             float64
	MZ             float64
	Meta           map[string]interface{}
}

func (f *Feature) UniqueID() uint64 { return f.UID }

// FeatureMap owns an array of Features plus a spatial index over their
// bounding boxes and a UniqueIdIndexer over their UIDs.
type FeatureMap struct {
	Features []*Feature

	uids  UniqueIdIndexer
	rtIdx *Range1DIndex
}

func NewFeatureMap() *FeatureMap { return &FeatureMap{} }

func (fm *FeatureMap) Add(f *Feature) { fm.Features = append(fm.Features, f) }

func (fm *FeatureMap) Len() int { return len(fm.Features) }

// ByUID looks up a feature by its unique id; see UniqueIdIndexer for the
// miss-returns-false contract. Callers must call RebuildIndex at least
// once before relying on hits.
func (fm *FeatureMap) ByUID(uid uint64) (*Feature, bool) {
	idx, ok := fm.uids.ByID(uid)
	if !ok {
		return nil, false
	}
	return fm.Features[idx], true
}

func (fm *FeatureMap) RebuildIndex() error {
	elems := make([]Identifiable, len(fm.Features))
	for i, f := range fm.Features {
		elems[i] = f
	}
	return fm.uids.Rebuild(elems)
}

// BuildRTIndex constructs a sub-linear RT-window query index over the
// features' bounding boxes.
func (fm *FeatureMap) BuildRTIndex() {
	idx := &Range1DIndex{}
	for i, f := range fm.Features {
		rt, _ := f.Hull.BoundingBox()
		if rt.Empty() {
			rt = Range1D{Min: f.RT, Max: f.RT}
		}
		idx.Insert(rt.Min, rt.Max+1.0/scale, i)
	}
	idx.Build()
	fm.rtIdx = idx
}

// InRTWindow returns the features whose bounding box overlaps [lo, hi).
// It calls BuildRTIndex itself if no RT index has been built yet; an
// index built earlier is not refreshed after later Adds.
func (fm *FeatureMap) InRTWindow(lo, hi float64) []*Feature {
	if fm.rtIdx == nil {
		fm.BuildRTIndex()
	}
	idxs := fm.rtIdx.Query(lo, hi)
	out := make([]*Feature, len(idxs))
	for i, j := range idxs {
		out[i] = fm.Features[j]
	}
	return out
}

// SortCanonical orders features by (RT, m/z), the canonical end-of-pipeline
// order required so that aggregation across parallel worker output is
// order-independent (spec.md §5).
func (fm *FeatureMap) SortCanonical() {
	sortFeatures(fm.Features)
}

func sortFeatures(fs []*Feature) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].RT != fs[j].RT {
			return fs[i].RT < fs[j].RT
		}
		return fs[i].MZ < fs[j].MZ
	})
}
