// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mzml

import (
	"bytes"
	"math"
	"testing"

	"github.com/kortschak/msengine/msdata"
)

func TestBinaryRoundTripFixedWidth(t *testing.T) {
	values := []float64{100.1234, 200.5678, 300.0001}
	arr, err := EncodeBinary(values, Precision64, DTypeFloat, CompressionNone, 1, RoleMZ)
	if err != nil {
		t.Fatal(err)
	}
	got, err := arr.DecodeBinary()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range values {
		if math.Abs(got[i]-v) > 1e-9 {
			t.Fatalf("index %d: got %v want %v", i, got[i], v)
		}
	}
}

func TestBinaryRoundTripZlibNumpressLinear(t *testing.T) {
	// S4: write then read a spectrum with 1000 peaks using 32-bit float,
	// zlib, numpress-lin; decoded m/z within 1e-4 Th, intensities within
	// 1e-5 relative.
	n := 1000
	mz := make([]float64, n)
	intensity := make([]float64, n)
	for i := 0; i < n; i++ {
		mz[i] = 400 + float64(i)*0.01
		intensity[i] = 1000 + float64(i%37)*250
	}
	mzArr, err := EncodeBinary(mz, Precision32, DTypeFloat, CompressionNumpressLinearZlib, 1, RoleMZ)
	if err != nil {
		t.Fatal(err)
	}
	gotMZ, err := mzArr.DecodeBinary()
	if err != nil {
		t.Fatal(err)
	}
	for i := range mz {
		if math.Abs(gotMZ[i]-mz[i]) > 1e-4 {
			t.Fatalf("mz[%d]: got %v want %v", i, gotMZ[i], mz[i])
		}
	}

	intArr, err := EncodeBinary(intensity, Precision32, DTypeFloat, CompressionNumpressLinearZlib, 1, RoleIntensity)
	if err != nil {
		t.Fatal(err)
	}
	gotInt, err := intArr.DecodeBinary()
	if err != nil {
		t.Fatal(err)
	}
	for i := range intensity {
		rel := math.Abs(gotInt[i]-intensity[i]) / intensity[i]
		if rel > 1e-5 {
			t.Fatalf("intensity[%d]: got %v want %v (rel %v)", i, gotInt[i], intensity[i], rel)
		}
	}
}

func TestUnitMultiplier(t *testing.T) {
	arr, err := EncodeBinary([]float64{1, 2, 3}, Precision64, DTypeFloat, CompressionNone, 60, RoleTime)
	if err != nil {
		t.Fatal(err)
	}
	got, err := arr.DecodeBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{60, 120, 180}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestMzMLRoundTrip(t *testing.T) {
	exp := msdata.NewExperiment()
	s := msdata.NewSpectrum("scan=1", 10.5, 1)
	s.SetPeaks([]msdata.Peak1D{{MZ: 100, Intensity: 10}, {MZ: 200, Intensity: 20}})
	exp.AddSpectrum(s)

	var buf bytes.Buffer
	if err := Write(&buf, exp, DefaultPeakFileOptions); err != nil {
		t.Fatal(err)
	}
	if err := VerifyIndex(buf.Bytes()); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Size() != 1 {
		t.Fatalf("expected 1 spectrum, got %d", got.Size())
	}
	if len(got.Spectra[0].Peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(got.Spectra[0].Peaks))
	}
	if math.Abs(got.Spectra[0].Peaks[0].MZ-100) > 1e-3 {
		t.Fatalf("unexpected mz: %v", got.Spectra[0].Peaks[0].MZ)
	}
}

func TestReadToleratesNonIndexedForm(t *testing.T) {
	doc := `<?xml version="1.0"?>
<mzML id="x"><run id="r"><spectrumList count="0"></spectrumList><chromatogramList count="0"></chromatogramList></run></mzML>`
	exp, err := Read(bytes.NewBufferString(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if exp.Size() != 0 {
		t.Fatalf("expected empty experiment, got %d spectra", exp.Size())
	}
}

func TestUnknownCVParamIsWarningNotError(t *testing.T) {
	var b BinaryDataArray
	handleBinaryDataArrayCVParam(&b, CVParam{Accession: "MS:9999999", Name: "made up"}, nil)
	// No panic, no error return value to check (the function has none);
	// the array is simply left unmodified for the unknown accession.
	if b.Precision != 0 {
		t.Fatal("unknown accession should not have set precision")
	}
}
