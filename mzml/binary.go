// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mzml implements the mzML wire format: XML element hierarchy,
// the nested CV-parameter grammar, and the variable-precision/
// variable-compression binary data arrays that carry m/z, intensity and
// time values (spec.md §4.2, §6).
package mzml

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"io"
	"math"

	"github.com/kortschak/msengine/mserr"
)

// Precision is the bit width of each encoded element.
type Precision int

const (
	Precision32 Precision = 32
	Precision64 Precision = 64
)

// DType is the declared element type of a binary data array.
type DType int

const (
	DTypeFloat DType = iota
	DTypeInt
	DTypeString
)

// Compression is the closed set of compression/codec combinations a
// binary data array may declare.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZlib
	CompressionNumpressLinear
	CompressionNumpressPic
	CompressionNumpressSlof
	CompressionNumpressLinearZlib
	CompressionNumpressPicZlib
	CompressionNumpressSlofZlib
)

// ArrayRole records which physical quantity an array encodes, used to
// apply the correct unit multiplier (e.g. 60 for minutes→seconds) and to
// route the decoded values into Peak1D.MZ/Intensity or RTPoint.RT.
type ArrayRole int

const (
	RoleMZ ArrayRole = iota
	RoleIntensity
	RoleTime
	RoleOther
)

// BinaryDataArray is the decoding contract of spec.md §4.2: precision,
// dtype, compression, a declared element count, a unit multiplier, and
// the raw base64 payload.
type BinaryDataArray struct {
	Precision      Precision
	DType          DType
	Compression    Compression
	Size           int
	UnitMultiplier float64
	Role           ArrayRole
	Payload        string // base64-encoded
}

// DecodeBinary runs the five-step decoding algorithm from spec.md §4.2:
// base64-decode, inflate if zlib, apply the numpress inverse if declared,
// otherwise interpret as little-endian fixed-width elements, then scale
// by the unit multiplier.
func (b BinaryDataArray) DecodeBinary() ([]float64, error) {
	raw, err := base64.StdEncoding.DecodeString(b.Payload)
	if err != nil {
		return nil, mserr.New(mserr.ParseError, "mzml.DecodeBinary", err)
	}

	switch b.Compression {
	case CompressionZlib, CompressionNumpressLinearZlib, CompressionNumpressPicZlib, CompressionNumpressSlofZlib:
		raw, err = inflate(raw)
		if err != nil {
			return nil, mserr.New(mserr.ParseError, "mzml.DecodeBinary", err)
		}
	}

	var values []float64
	switch b.Compression {
	case CompressionNumpressLinear, CompressionNumpressLinearZlib:
		values, err = decodeNumpressLinear(raw)
	case CompressionNumpressPic, CompressionNumpressPicZlib:
		values, err = decodeNumpressPic(raw)
	case CompressionNumpressSlof, CompressionNumpressSlofZlib:
		values, err = decodeNumpressSlof(raw)
	default:
		values, err = decodeFixedWidth(raw, b.Precision, b.DType, b.Size)
	}
	if err != nil {
		return nil, mserr.New(mserr.ParseError, "mzml.DecodeBinary", err)
	}

	mult := b.UnitMultiplier
	if mult == 0 {
		mult = 1
	}
	if mult != 1 {
		for i := range values {
			values[i] *= mult
		}
	}
	return values, nil
}

// EncodeBinary is the strict inverse of DecodeBinary: it applies the
// requested numpress codec (if any), then zlib (if requested), then
// base64, populating Size and Payload on the returned BinaryDataArray.
// The unit multiplier is divided out before encoding so that a
// DecodeBinary/EncodeBinary round trip with the same multiplier recovers
// the original values.
func EncodeBinary(values []float64, prec Precision, dtype DType, comp Compression, unitMultiplier float64, role ArrayRole) (BinaryDataArray, error) {
	scaled := values
	mult := unitMultiplier
	if mult == 0 {
		mult = 1
	}
	if mult != 1 {
		scaled = make([]float64, len(values))
		for i, v := range values {
			scaled[i] = v / mult
		}
	}

	var raw []byte
	var err error
	switch comp {
	case CompressionNumpressLinear, CompressionNumpressLinearZlib:
		raw = encodeNumpressLinear(scaled)
	case CompressionNumpressPic, CompressionNumpressPicZlib:
		raw = encodeNumpressPic(scaled)
	case CompressionNumpressSlof, CompressionNumpressSlofZlib:
		raw = encodeNumpressSlof(scaled)
	default:
		raw, err = encodeFixedWidth(scaled, prec, dtype)
	}
	if err != nil {
		return BinaryDataArray{}, mserr.New(mserr.IllegalArgument, "mzml.EncodeBinary", err)
	}

	switch comp {
	case CompressionZlib, CompressionNumpressLinearZlib, CompressionNumpressPicZlib, CompressionNumpressSlofZlib:
		raw = deflate(raw)
	}

	return BinaryDataArray{
		Precision:      prec,
		DType:          dtype,
		Compression:    comp,
		Size:           len(values),
		UnitMultiplier: unitMultiplier,
		Role:           role,
		Payload:        base64.StdEncoding.EncodeToString(raw),
	}, nil
}

func inflate(raw []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func deflate(raw []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(raw)
	w.Close()
	return buf.Bytes()
}

func decodeFixedWidth(raw []byte, prec Precision, dtype DType, size int) ([]float64, error) {
	width := int(prec) / 8
	if width == 0 {
		width = 4
	}
	if len(raw)%width != 0 {
		return nil, errMalformedBinaryLength(len(raw))
	}
	n := len(raw) / width
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		chunk := raw[i*width : (i+1)*width]
		switch {
		case dtype == DTypeFloat && prec == Precision32:
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		case dtype == DTypeFloat && prec == Precision64:
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk))
		case dtype == DTypeInt && prec == Precision32:
			out[i] = float64(int32(binary.LittleEndian.Uint32(chunk)))
		case dtype == DTypeInt && prec == Precision64:
			out[i] = float64(int64(binary.LittleEndian.Uint64(chunk)))
		default:
			return nil, errMalformedBinaryLength(len(raw))
		}
	}
	return out, nil
}

func encodeFixedWidth(values []float64, prec Precision, dtype DType) ([]byte, error) {
	width := int(prec) / 8
	if width == 0 {
		width = 4
	}
	out := make([]byte, len(values)*width)
	for i, v := range values {
		chunk := out[i*width : (i+1)*width]
		switch {
		case dtype == DTypeFloat && prec == Precision32:
			binary.LittleEndian.PutUint32(chunk, math.Float32bits(float32(v)))
		case dtype == DTypeFloat && prec == Precision64:
			binary.LittleEndian.PutUint64(chunk, math.Float64bits(v))
		case dtype == DTypeInt && prec == Precision32:
			binary.LittleEndian.PutUint32(chunk, uint32(int32(v)))
		case dtype == DTypeInt && prec == Precision64:
			binary.LittleEndian.PutUint64(chunk, uint64(int64(v)))
		default:
			return nil, errMalformedBinaryLength(len(values))
		}
	}
	return out, nil
}

type errMalformedBinaryLength int

func (e errMalformedBinaryLength) Error() string {
	return "malformed binary array length"
}
