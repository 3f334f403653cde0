// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mzml

import "log"

// CVParam is one controlled-vocabulary parameter as it appears nested
// inside a binaryDataArray, spectrum, or chromatogram element.
type CVParam struct {
	Accession     string
	Value         string
	Name          string
	UnitAccession string
}

// cvAction is applied by handleBinaryDataArrayCVParam for one recognized
// accession.
type cvAction func(b *BinaryDataArray)

// binaryDataArrayCVTable is the small closed accession table from
// spec.md §6: precision, compression, and array-type (role) terms from
// the PSI-MS OBO. Unknown accessions are warnings, not errors, per
// spec.md §4.2's error taxonomy.
var binaryDataArrayCVTable = map[string]cvAction{
	// Precision.
	"MS:1000521": func(b *BinaryDataArray) { b.Precision = Precision32; b.DType = DTypeFloat },
	"MS:1000523": func(b *BinaryDataArray) { b.Precision = Precision64; b.DType = DTypeFloat },
	"MS:1000522": func(b *BinaryDataArray) { b.Precision = Precision64; b.DType = DTypeInt },
	"MS:1000525": func(b *BinaryDataArray) { b.Precision = Precision32; b.DType = DTypeInt },
	"MS:1001479": func(b *BinaryDataArray) { b.DType = DTypeString },

	// Compression.
	"MS:1000574": func(b *BinaryDataArray) { b.Compression = compressWithZlib(b.Compression, true) },
	"MS:1000576": func(b *BinaryDataArray) { b.Compression = compressWithZlib(b.Compression, false) },
	"MS:1002312": func(b *BinaryDataArray) { b.Compression = setNumpress(b.Compression, numpressLinear) },
	"MS:1002313": func(b *BinaryDataArray) { b.Compression = setNumpress(b.Compression, numpressPic) },
	"MS:1002314": func(b *BinaryDataArray) { b.Compression = setNumpress(b.Compression, numpressSlof) },

	// Array type / role.
	"MS:1000514": func(b *BinaryDataArray) { b.Role = RoleMZ },
	"MS:1000515": func(b *BinaryDataArray) { b.Role = RoleIntensity },
	"MS:1000595": func(b *BinaryDataArray) { b.Role = RoleTime },
}

type numpressKind int

const (
	numpressNone numpressKind = iota
	numpressLinear
	numpressPic
	numpressSlof
)

func setNumpress(c Compression, k numpressKind) Compression {
	zlib := hasZlib(c)
	switch k {
	case numpressLinear:
		if zlib {
			return CompressionNumpressLinearZlib
		}
		return CompressionNumpressLinear
	case numpressPic:
		if zlib {
			return CompressionNumpressPicZlib
		}
		return CompressionNumpressPic
	case numpressSlof:
		if zlib {
			return CompressionNumpressSlofZlib
		}
		return CompressionNumpressSlof
	}
	return c
}

func compressWithZlib(c Compression, on bool) Compression {
	switch {
	case !on:
		switch c {
		case CompressionZlib:
			return CompressionNone
		case CompressionNumpressLinearZlib:
			return CompressionNumpressLinear
		case CompressionNumpressPicZlib:
			return CompressionNumpressPic
		case CompressionNumpressSlofZlib:
			return CompressionNumpressSlof
		}
		return c
	default:
		switch c {
		case CompressionNone:
			return CompressionZlib
		case CompressionNumpressLinear:
			return CompressionNumpressLinearZlib
		case CompressionNumpressPic:
			return CompressionNumpressPicZlib
		case CompressionNumpressSlof:
			return CompressionNumpressSlofZlib
		}
		return c
	}
}

func hasZlib(c Compression) bool {
	switch c {
	case CompressionZlib, CompressionNumpressLinearZlib, CompressionNumpressPicZlib, CompressionNumpressSlofZlib:
		return true
	}
	return false
}

// unitMultipliers maps a handful of common unit accessions to the scalar
// multiplier applied to decoded values, e.g. minutes→seconds (spec.md
// §4.2's "unit multiplier (e.g. 60 for minutes→seconds)").
var unitMultipliers = map[string]float64{
	"UO:0000031": 60, // minute
	"UO:0000010": 1,  // second
}

// handleBinaryDataArrayCVParam sets precision, dtype, compression and
// unit multiplier on b from a single CV parameter, per spec.md §4.2. An
// unrecognized accession is logged as a warning (if logger is non-nil)
// and otherwise ignored, never returned as an error.
func handleBinaryDataArrayCVParam(b *BinaryDataArray, p CVParam, logger *log.Logger) {
	if action, ok := binaryDataArrayCVTable[p.Accession]; ok {
		action(b)
	} else if logger != nil {
		logger.Printf("mzml: unrecognized CV accession %s (%s), ignoring", p.Accession, p.Name)
	}
	if p.UnitAccession != "" {
		if mult, ok := unitMultipliers[p.UnitAccession]; ok {
			b.UnitMultiplier = mult
		} else if logger != nil {
			logger.Printf("mzml: unrecognized unit accession %s, assuming multiplier 1", p.UnitAccession)
		}
	}
}
