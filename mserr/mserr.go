// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mserr defines the closed set of error kinds used across the
// msengine packages, following the teacher's plain-error-value idiom
// (fmt.Errorf with %w wrapping, no custom exception hierarchy).
package mserr

import "fmt"

// Kind is one of the error kinds documented in the error handling design.
// The set is closed: new kinds are not expected to be added by callers
// outside this package.
type Kind int

const (
	FileNotFound Kind = iota
	FileNotReadable
	UnableToCreateFile
	ParseError
	IllegalArgument
	InvalidValue
	InvalidIterator
	MissingInformation
	Postcondition
	UnableToFit
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case FileNotReadable:
		return "file not readable"
	case UnableToCreateFile:
		return "unable to create file"
	case ParseError:
		return "parse error"
	case IllegalArgument:
		return "illegal argument"
	case InvalidValue:
		return "invalid value"
	case InvalidIterator:
		return "invalid iterator"
	case MissingInformation:
		return "missing information"
	case Postcondition:
		return "postcondition violated"
	case UnableToFit:
		return "unable to fit"
	case NotImplemented:
		return "not implemented"
	default:
		return "unknown error"
	}
}

// Error is a kinded error carrying an optional file position, following
// the ParseError "carries file position when known" contract of the
// error handling design.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "mzml.DecodeBinary"
	Pos  string // file position, empty when not known
	Err  error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Pos != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s at %s: %v", e.Op, e.Kind, e.Pos, e.Err)
		}
		return fmt.Sprintf("%s: %s at %s", e.Op, e.Kind, e.Pos)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error with the given kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// At constructs an *Error carrying a file position.
func At(kind Kind, op, pos string, err error) *Error {
	return &Error{Kind: kind, Op: op, Pos: pos, Err: err}
}

// Is reports whether err is itself an *Error of the given kind. It does
// not unwrap err, so an *Error wrapped inside another error is not found.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
