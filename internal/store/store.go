// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides the on-disk key encoding and ordering used by
// the fragment index's bucketed fragment table (spec.md §4.5 step 5):
// keys sort by bucket number, then by owning peptide index, then by
// fragment m/z, so that within one bucket all fragments of a peptide
// sit in a contiguous run that a binary search on peptide index alone
// can extract.
package store

import (
	"bytes"
	"encoding/binary"
	"math"
)

// FragmentKey identifies one row of the bucketed fragment table.
type FragmentKey struct {
	Bucket     int32
	PeptideIdx int32
	FragmentMZ float64
}

var order = binary.BigEndian

// MarshalFragmentKey encodes k in the byte order ByBucketThenPeptide
// expects to compare.
func MarshalFragmentKey(k FragmentKey) []byte {
	var buf [16]byte
	order.PutUint32(buf[0:4], uint32(k.Bucket))
	order.PutUint32(buf[4:8], uint32(k.PeptideIdx))
	order.PutUint64(buf[8:16], math.Float64bits(k.FragmentMZ))
	return buf[:]
}

// UnmarshalFragmentKey decodes data produced by MarshalFragmentKey.
func UnmarshalFragmentKey(data []byte) FragmentKey {
	var k FragmentKey
	k.Bucket = int32(order.Uint32(data[0:4]))
	k.PeptideIdx = int32(order.Uint32(data[4:8]))
	k.FragmentMZ = math.Float64frombits(order.Uint64(data[8:16]))
	return k
}

// ByBucketThenPeptide is a kv compare function, ordering by bucket
// number, then owning peptide index, then fragment m/z — the order the
// fragment index's query algorithm (spec.md §4.5 step 3b) needs to
// binary-search a contiguous peptide-index subrange within one bucket.
func ByBucketThenPeptide(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	kx := UnmarshalFragmentKey(x)
	ky := UnmarshalFragmentKey(y)

	switch {
	case kx.Bucket < ky.Bucket:
		return -1
	case kx.Bucket > ky.Bucket:
		return 1
	}
	switch {
	case kx.PeptideIdx < ky.PeptideIdx:
		return -1
	case kx.PeptideIdx > ky.PeptideIdx:
		return 1
	}
	switch {
	case kx.FragmentMZ < ky.FragmentMZ:
		return -1
	case kx.FragmentMZ > ky.FragmentMZ:
		return 1
	}
	return 0
}

// MarshalFloat64 returns a slice encoding v in the same big-endian
// IEEE-754 bit layout MarshalFragmentKey uses for fragment m/z.
func MarshalFloat64(v float64) []byte {
	var buf [8]byte
	order.PutUint64(buf[:], math.Float64bits(v))
	return buf[:]
}

// MarshalInt32 returns a slice encoding n as a big-endian int32, the
// layout MarshalFragmentKey uses for bucket numbers.
func MarshalInt32(n int32) []byte {
	var buf [4]byte
	order.PutUint32(buf[:], uint32(n))
	return buf[:]
}
