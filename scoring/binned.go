// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoring

import (
	"math"

	"github.com/kortschak/msengine/msdata"
)

// BinMode selects the m/z binning scheme used by BinSpectrum.
type BinMode int

const (
	// BinDa bins by fixed Da width starting at Offset.
	BinDa BinMode = iota
	// BinPPM bins by fixed ppm width starting at 1 Th.
	BinPPM
)

// BinParams configures BinSpectrum, per spec.md §4.7.
type BinParams struct {
	Mode   BinMode
	Size   float64 // Da width in BinDa mode, ppm width in BinPPM mode
	Offset float64 // Da-mode bin origin; unused in BinPPM mode
}

// BinnedSpectrum is a sparse map from bin index to summed intensity.
type BinnedSpectrum map[int]float64

// BinSpectrum hashes a spectrum's peaks into bins per spec.md §4.7: bin
// index is floor(log(mz)/log(1+ppm·1e-6)) in BinPPM mode, or
// floor((mz-offset)/size) in BinDa mode.
func BinSpectrum(s *msdata.Spectrum, params BinParams) BinnedSpectrum {
	out := make(BinnedSpectrum)
	for _, p := range s.Peaks {
		var idx int
		switch params.Mode {
		case BinPPM:
			idx = int(math.Floor(math.Log(p.MZ) / math.Log(1+params.Size*1e-6)))
		default:
			idx = int(math.Floor((p.MZ - params.Offset) / params.Size))
		}
		out[idx] += float64(p.Intensity)
	}
	return out
}

// CosineSimilarity computes dense-sparse cosine similarity between two
// binned spectra, per spec.md §4.7.
func CosineSimilarity(a, b BinnedSpectrum) float64 {
	var dot, na, nb float64
	for bin, va := range a {
		na += va * va
		if vb, ok := b[bin]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / math.Sqrt(na*nb)
}

// ContrastAngle is the spectral-angle analogue of CosineSimilarity for
// binned spectra: 1 - (2/π)·acos(cosine), so identical spectra score 1
// and orthogonal spectra score 0.
func ContrastAngle(a, b BinnedSpectrum) float64 {
	cos := CosineSimilarity(a, b)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return 1 - (2/math.Pi)*math.Acos(cos)
}
