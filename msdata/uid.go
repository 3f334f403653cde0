// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msdata

import "github.com/kortschak/msengine/mserr"

// InvalidUID is the sentinel unique identifier meaning "no id assigned".
const InvalidUID uint64 = 0

// Identifiable is implemented by anything an UniqueIdIndexer can index:
// FeatureMap elements, ConsensusMap elements, and so on.
type Identifiable interface {
	UniqueID() uint64
}

// UniqueIdIndexer is a mutable-through-const lookup from a 64-bit unique
// id to an element's position, rebuilt on a lookup miss rather than
// exposing an exception-based control flow (spec.md §9's redesign of the
// original `byId` throwing `out_of_range`): ByID returns ok=false and lets
// the caller decide whether to Rebuild and retry.
//
// Per spec.md §5, an UniqueIdIndexer is not safe for concurrent use: a
// Rebuild triggered by a lookup miss mutates shared state, so callers must
// finish building the index (or pre-warm it with an explicit Rebuild)
// before handing the owning container to worker goroutines.
type UniqueIdIndexer struct {
	byID map[uint64]int
}

// ByID looks up the index of the element with the given uid. On a miss it
// returns ok=false; it does not implicitly rebuild, per the explicit
// option/result redesign — callers that want rebuild-on-miss semantics
// should call Rebuild themselves, exactly once, before releasing the
// index to concurrent readers.
func (u *UniqueIdIndexer) ByID(uid uint64) (index int, ok bool) {
	if u.byID == nil {
		return 0, false
	}
	idx, ok := u.byID[uid]
	return idx, ok
}

// Rebuild reconstructs the lookup table from scratch over elements,
// returning a *mserr.Error of kind Postcondition if two elements share a
// non-invalid uid.
func (u *UniqueIdIndexer) Rebuild(elems []Identifiable) error {
	u.byID = make(map[uint64]int, len(elems))
	for i, e := range elems {
		id := e.UniqueID()
		if id == InvalidUID {
			continue
		}
		if prev, ok := u.byID[id]; ok {
			return mserr.New(mserr.Postcondition, "UniqueIdIndexer.Rebuild",
				&duplicateUIDError{uid: id, first: prev, second: i})
		}
		u.byID[id] = i
	}
	return nil
}

type duplicateUIDError struct {
	uid          uint64
	first, second int
}

func (e *duplicateUIDError) Error() string {
	return "duplicate unique id shared by two elements"
}
