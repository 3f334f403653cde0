// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

// FeatureHandle references a Feature by (map-index, element-index) rather
// than by pointer, the arena-plus-index pattern spec.md §9 prescribes in
// place of the original's cyclic ConsensusFeature→FeatureHandle→FeatureMap
// ownership graph: a ConsensusMap owns its ConsensusFeatures but never the
// original Features, only handles referencing them.
type FeatureHandle struct {
	MapIndex     int
	ElementIndex int
	Intensity    float64
	RT           float64
	MZ           float64
}

// ConsensusFeature aggregates a set of FeatureHandle. Its own RT/m/z/
// intensity are derived, not stored independently, so they cannot drift
// out of sync with the members.
type ConsensusFeature struct {
	UID     uint64
	Members []FeatureHandle
}

func (c *ConsensusFeature) UniqueID() uint64 { return c.UID }

// Intensity is the sum of member intensities.
func (c *ConsensusFeature) Intensity() float64 {
	var sum float64
	for _, m := range c.Members {
		sum += m.Intensity
	}
	return sum
}

// RT is the intensity-weighted mean RT of the members (spec.md §8
// testable property 3). A ConsensusFeature with no members returns 0.
func (c *ConsensusFeature) RT() float64 { return weightedMean(c.Members, func(m FeatureHandle) float64 { return m.RT }) }

// MZ is the intensity-weighted mean m/z of the members.
func (c *ConsensusFeature) MZ() float64 { return weightedMean(c.Members, func(m FeatureHandle) float64 { return m.MZ }) }

func weightedMean(members []FeatureHandle, key func(FeatureHandle) float64) float64 {
	var num, den float64
	for _, m := range members {
		num += key(m) * m.Intensity
		den += m.Intensity
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// ConsensusMap owns ConsensusFeatures but not the underlying Features,
// which continue to be owned by their respective FeatureMaps and are only
// referenced here by FeatureHandle.
type ConsensusMap struct {
	Elements []*ConsensusFeature
}

func NewConsensusMap() *ConsensusMap { return &ConsensusMap{} }

func (cm *ConsensusMap) Add(c *ConsensusFeature) { cm.Elements = append(cm.Elements, c) }
