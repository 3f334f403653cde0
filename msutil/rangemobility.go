// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msutil

// RangeMobility is a half-open [Lower, Upper) interval in drift-time
// space, per spec.md §4.8. Unlike msdata.Range1D (closed, used for m/z
// and RT bounding boxes), ion-mobility filtering needs half-open
// semantics so adjacent mobility windows tile without double-counting
// their shared boundary.
type RangeMobility struct {
	Lower, Upper float64
}

// Contains reports whether v falls in [Lower, Upper).
func (r RangeMobility) Contains(v float64) bool {
	return v >= r.Lower && v < r.Upper
}

// Empty reports whether the interval contains no values.
func (r RangeMobility) Empty() bool {
	return r.Lower >= r.Upper
}
