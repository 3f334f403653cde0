// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "sort"

// PeptideHit is one sequence candidate for a PeptideIdentification: an
// AASequence with a score, charge, and arbitrary meta values.
type PeptideHit struct {
	Sequence AASequence
	Score    float64
	Charge   int
	Meta     map[string]interface{}
}

// SpectrumReferenceKey is the well-known meta value key linking a
// PeptideIdentification back to the native spectrum identifier it was
// derived from (spec.md §3).
const SpectrumReferenceKey = "spectrum_reference"

// PeptideIdentification is a list of PeptideHit plus the meta values
// shared across all of them (including, conventionally, the spectrum
// reference).
type PeptideIdentification struct {
	Hits []PeptideHit
	Meta map[string]interface{}
}

// SpectrumReference returns the linked native spectrum identifier, if set.
func (p PeptideIdentification) SpectrumReference() (string, bool) {
	if p.Meta == nil {
		return "", false
	}
	v, ok := p.Meta[SpectrumReferenceKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SortByScoreDescending orders hits from highest to lowest score, the
// usual presentation order for identification results.
func (p *PeptideIdentification) SortByScoreDescending() {
	sort.Slice(p.Hits, func(i, j int) bool { return p.Hits[i].Score > p.Hits[j].Score })
}
