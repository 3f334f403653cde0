// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mzml

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"

	"github.com/kortschak/msengine/mserr"
)

// VerifyIndex recomputes the SHA-1 checksum over the bytes preceding the
// <fileChecksum> element and compares it against the recorded value,
// giving callers an explicit way to validate the trailer Write appends
// without requiring every Read to pay for it.
func VerifyIndex(data []byte) error {
	loc := fileChecksumElem.FindSubmatchIndex(data)
	if loc == nil {
		// No trailer present: a non-indexed document, which Read already
		// tolerates; nothing to verify.
		return nil
	}
	prefix := data[:loc[0]]
	recorded := string(data[loc[2]:loc[3]])
	sum := sha1.Sum(prefix)
	got := hex.EncodeToString(sum[:])
	if got != recorded {
		return mserr.New(mserr.ParseError, "mzml.VerifyIndex", errChecksumMismatch{want: recorded, got: got})
	}
	return nil
}

var fileChecksumElem = regexp.MustCompile(`<fileChecksum>([0-9a-fA-F]+)</fileChecksum>`)

type errChecksumMismatch struct{ want, got string }

func (e errChecksumMismatch) Error() string {
	return "indexedmzML checksum mismatch: file says " + e.want + ", computed " + e.got
}

// SpectrumOffset returns the recorded byte offset for the spectrum with
// the given native id, reading the <indexList> trailer directly rather
// than re-parsing the whole document — the random-access use case the
// index exists for.
func SpectrumOffset(data []byte, nativeID string) (int, bool) {
	return offsetFor(data, "spectrum", nativeID)
}

func ChromatogramOffset(data []byte, nativeID string) (int, bool) {
	return offsetFor(data, "chromatogram", nativeID)
}

func offsetFor(data []byte, section, id string) (int, bool) {
	idxStart := regexp.MustCompile(`<index name="` + regexp.QuoteMeta(section) + `">`).FindIndex(data)
	if idxStart == nil {
		return 0, false
	}
	rest := data[idxStart[1]:]
	end := regexpIndexEnd.FindIndex(rest)
	if end != nil {
		rest = rest[:end[0]]
	}
	offRe := regexp.MustCompile(`<offset idRef="` + regexp.QuoteMeta(id) + `">(\d+)</offset>`)
	m := offRe.FindSubmatch(rest)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}

var regexpIndexEnd = regexp.MustCompile(`</index>`)
