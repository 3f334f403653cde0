// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swath

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/kortschak/msengine/mserr"
)

// ReadWindowsFile parses the whitespace-delimited SWATH windows file
// format of spec.md §6: a discarded header line, then one `lower upper`
// pair per line. Every line must satisfy lower < upper.
func ReadWindowsFile(r io.Reader) ([]Window, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, nil
	}
	var windows []Window
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, mserr.At(mserr.ParseError, "swath.ReadWindowsFile", strconv.Itoa(lineNo), errBadWindowLine{line})
		}
		lower, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, mserr.At(mserr.ParseError, "swath.ReadWindowsFile", strconv.Itoa(lineNo), err)
		}
		upper, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, mserr.At(mserr.ParseError, "swath.ReadWindowsFile", strconv.Itoa(lineNo), err)
		}
		if lower >= upper {
			return nil, mserr.At(mserr.IllegalArgument, "swath.ReadWindowsFile", strconv.Itoa(lineNo), errBadWindowBounds{lower, upper})
		}
		windows = append(windows, Window{Lower: lower, Upper: upper})
	}
	if err := sc.Err(); err != nil {
		return nil, mserr.New(mserr.FileNotReadable, "swath.ReadWindowsFile", err)
	}
	return windows, nil
}

type errBadWindowLine struct{ line string }

func (e errBadWindowLine) Error() string { return "window line does not have exactly two fields" }

type errBadWindowBounds struct{ lower, upper float64 }

func (e errBadWindowBounds) Error() string { return "window lower bound is not less than upper bound" }
