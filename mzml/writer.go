// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mzml

import (
	"bytes"
	"crypto/sha1"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kortschak/msengine/mserr"
	"github.com/kortschak/msengine/msdata"
)

// PeakFileOptions governs the target compression/precision Write selects,
// generalizing the closed-over choices a GUI-less writer needs (spec.md
// §4.2: "target compression governed by PeakFileOptions").
type PeakFileOptions struct {
	MZPrecision        Precision
	IntensityPrecision Precision
	Compression        Compression
}

// DefaultPeakFileOptions matches testable scenario S4: 32-bit floats with
// zlib plus numpress-lin.
var DefaultPeakFileOptions = PeakFileOptions{
	MZPrecision:        Precision32,
	IntensityPrecision: Precision32,
	Compression:        CompressionNumpressLinearZlib,
}

// Write emits an indexedmzML document for exp: the mzML body, an index of
// byte offsets to every <spectrum> and <chromatogram> element, and a
// trailing SHA-1 checksum of everything preceding the checksum element,
// per spec.md §4.2.
func Write(w io.Writer, exp *msdata.Experiment, opts PeakFileOptions) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<indexedmzML>\n<mzML id=\"document\">\n<run id=\"run\">\n")

	buf.WriteString(fmt.Sprintf("<spectrumList count=\"%d\">\n", len(exp.Spectra)))
	spectrumOffsets := make([]elementOffset, len(exp.Spectra))
	for i, s := range exp.Spectra {
		spectrumOffsets[i] = elementOffset{id: s.NativeID, offset: buf.Len()}
		sx := buildSpectrumXML(s, opts)
		b, err := xml.Marshal(sx)
		if err != nil {
			return mserr.New(mserr.UnableToCreateFile, "mzml.Write", err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	buf.WriteString("</spectrumList>\n")

	buf.WriteString(fmt.Sprintf("<chromatogramList count=\"%d\">\n", len(exp.Chromatograms)))
	chromOffsets := make([]elementOffset, len(exp.Chromatograms))
	for i, c := range exp.Chromatograms {
		chromOffsets[i] = elementOffset{id: c.NativeID, offset: buf.Len()}
		cx := buildChromatogramXML(c, opts)
		b, err := xml.Marshal(cx)
		if err != nil {
			return mserr.New(mserr.UnableToCreateFile, "mzml.Write", err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	buf.WriteString("</chromatogramList>\n")
	buf.WriteString("</run>\n</mzML>\n")

	indexListOffset := buf.Len()
	buf.WriteString("<indexList count=\"2\">\n")
	writeIndex(&buf, "spectrum", spectrumOffsets)
	writeIndex(&buf, "chromatogram", chromOffsets)
	buf.WriteString("</indexList>\n")
	fmt.Fprintf(&buf, "<indexListOffset>%d</indexListOffset>\n", indexListOffset)

	sum := sha1.Sum(buf.Bytes())
	fmt.Fprintf(&buf, "<fileChecksum>%x</fileChecksum>\n", sum)
	buf.WriteString("</indexedmzML>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return mserr.New(mserr.UnableToCreateFile, "mzml.Write", err)
	}
	return nil
}

// WriteFile creates path and writes exp to it, translating creation
// failures into the UnableToCreateFile error kind per spec.md §7.
func WriteFile(path string, exp *msdata.Experiment, opts PeakFileOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return mserr.New(mserr.UnableToCreateFile, "mzml.WriteFile", err)
	}
	defer f.Close()
	return Write(f, exp, opts)
}

type elementOffset struct {
	id     string
	offset int
}

func writeIndex(buf *bytes.Buffer, name string, offs []elementOffset) {
	fmt.Fprintf(buf, "<index name=%q>\n", name)
	for _, o := range offs {
		fmt.Fprintf(buf, "<offset idRef=%q>%d</offset>\n", o.id, o.offset)
	}
	buf.WriteString("</index>\n")
}

func buildSpectrumXML(s *msdata.Spectrum, opts PeakFileOptions) spectrumXML {
	sx := spectrumXML{ID: s.NativeID}
	sx.CVParams = []cvParamXML{
		{Accession: "MS:1000511", Value: strconv.Itoa(s.MSLevel), Name: "ms level"},
		{Accession: "MS:1000016", Value: strconv.FormatFloat(s.RT/60, 'g', -1, 64), Name: "scan start time", UnitAccession: "UO:0000031"},
	}
	for _, p := range s.Precursors {
		sx.PrecursorList.Precursors = append(sx.PrecursorList.Precursors, buildPrecursorXML(p))
	}
	mz := make([]float64, len(s.Peaks))
	it := make([]float64, len(s.Peaks))
	for i, pk := range s.Peaks {
		mz[i] = pk.MZ
		it[i] = float64(pk.Intensity)
	}
	mzArr, _ := EncodeBinary(mz, opts.MZPrecision, DTypeFloat, opts.Compression, 1, RoleMZ)
	itArr, _ := EncodeBinary(it, opts.IntensityPrecision, DTypeFloat, opts.Compression, 1, RoleIntensity)
	sx.BinaryDataArrayList.Count = 2
	sx.BinaryDataArrayList.Arrays = []binaryDataArrayXML{
		binaryArrayToXML(mzArr, "MS:1000514"),
		binaryArrayToXML(itArr, "MS:1000515"),
	}
	return sx
}

func buildChromatogramXML(c *msdata.Chromatogram, opts PeakFileOptions) chromatogramXML {
	cx := chromatogramXML{ID: c.NativeID}
	cx.Precursor = buildPrecursorXML(c.Precursor)
	cx.Product = productXML{IsolationWindow: isolationWindowXML{CVParams: []cvParamXML{
		{Accession: "MS:1000827", Value: strconv.FormatFloat(c.Product.MZ, 'g', -1, 64)},
		{Accession: "MS:1000828", Value: strconv.FormatFloat(c.Product.IsolationLower, 'g', -1, 64)},
		{Accession: "MS:1000829", Value: strconv.FormatFloat(c.Product.IsolationUpper, 'g', -1, 64)},
	}}}
	rt := make([]float64, len(c.Points))
	it := make([]float64, len(c.Points))
	for i, p := range c.Points {
		rt[i] = p.RT
		it[i] = float64(p.Intensity)
	}
	rtArr, _ := EncodeBinary(rt, opts.MZPrecision, DTypeFloat, opts.Compression, 1, RoleTime)
	itArr, _ := EncodeBinary(it, opts.IntensityPrecision, DTypeFloat, opts.Compression, 1, RoleIntensity)
	cx.BinaryDataArrayList.Count = 2
	cx.BinaryDataArrayList.Arrays = []binaryDataArrayXML{
		binaryArrayToXML(rtArr, "MS:1000595"),
		binaryArrayToXML(itArr, "MS:1000515"),
	}
	return cx
}

func buildPrecursorXML(p msdata.Precursor) precursorXML {
	return precursorXML{
		IsolationWindow: isolationWindowXML{CVParams: []cvParamXML{
			{Accession: "MS:1000827", Value: strconv.FormatFloat(p.MZ, 'g', -1, 64)},
			{Accession: "MS:1000828", Value: strconv.FormatFloat(p.IsolationLower, 'g', -1, 64)},
			{Accession: "MS:1000829", Value: strconv.FormatFloat(p.IsolationUpper, 'g', -1, 64)},
		}},
		SelectedIonList: selectedIonListXML{SelectedIons: []selectedIonXML{{CVParams: []cvParamXML{
			{Accession: "MS:1000744", Value: strconv.FormatFloat(p.MZ, 'g', -1, 64)},
			{Accession: "MS:1000041", Value: strconv.Itoa(p.Charge)},
		}}}},
	}
}

func binaryArrayToXML(b BinaryDataArray, roleAccession string) binaryDataArrayXML {
	ax := binaryDataArrayXML{Binary: b.Payload}
	ax.CVParams = append(ax.CVParams, cvParamXML{Accession: roleAccession})
	switch b.Precision {
	case Precision64:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1000523"})
	default:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1000521"})
	}
	switch b.Compression {
	case CompressionZlib:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1000574"})
	case CompressionNumpressLinear:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1002312"})
	case CompressionNumpressLinearZlib:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1002312"}, cvParamXML{Accession: "MS:1000574"})
	case CompressionNumpressPic:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1002313"})
	case CompressionNumpressPicZlib:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1002313"}, cvParamXML{Accession: "MS:1000574"})
	case CompressionNumpressSlof:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1002314"})
	case CompressionNumpressSlofZlib:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1002314"}, cvParamXML{Accession: "MS:1000574"})
	default:
		ax.CVParams = append(ax.CVParams, cvParamXML{Accession: "MS:1000576"})
	}
	return ax
}
