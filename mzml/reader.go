// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mzml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/kortschak/msengine/mserr"
	"github.com/kortschak/msengine/msdata"
)

// Read parses an mzML (or indexedmzML-wrapped mzML) document into an
// Experiment. Both indexed and non-indexed forms are tolerated, per
// spec.md §4.2's reader contract; the index itself (byte offsets, SHA-1
// trailer) is not needed for an in-memory read and is ignored by Read —
// see VerifyIndex, SpectrumOffset and ChromatogramOffset for consumers
// that need it.
func Read(r io.Reader, logger *log.Logger) (*msdata.Experiment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, mserr.New(mserr.FileNotReadable, "mzml.Read", err)
	}
	return parse(data, logger)
}

// ReadFile opens path and parses it with Read, translating os.Open
// failures into the FileNotFound error kind per spec.md §7.
func ReadFile(path string, logger *log.Logger) (*msdata.Experiment, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mserr.New(mserr.FileNotFound, "mzml.ReadFile", err)
		}
		return nil, mserr.New(mserr.FileNotReadable, "mzml.ReadFile", err)
	}
	defer f.Close()
	return Read(f, logger)
}

func parse(data []byte, logger *log.Logger) (*msdata.Experiment, error) {
	var doc mzMLXML
	if looksIndexed(data) {
		var wrapped indexedMzMLXML
		if err := xml.Unmarshal(data, &wrapped); err != nil {
			return nil, mserr.At(mserr.ParseError, "mzml.parse", xmlPos(err), err)
		}
		doc = wrapped.MzML
	} else {
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, mserr.At(mserr.ParseError, "mzml.parse", xmlPos(err), err)
		}
	}
	return convert(doc, logger)
}

// looksIndexed reports whether the document's outermost element is
// indexedmzML, by inspecting the first start element rather than
// assuming byte-offset conventions.
func looksIndexed(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local == "indexedmzML"
		}
	}
}

func xmlPos(err error) string {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return "line " + strconv.Itoa(se.Line)
	}
	return ""
}

func convert(doc mzMLXML, logger *log.Logger) (*msdata.Experiment, error) {
	exp := msdata.NewExperiment()
	for _, sx := range doc.Run.SpectrumList.Spectra {
		s, err := convertSpectrum(sx, logger)
		if err != nil {
			return nil, err
		}
		exp.AddSpectrum(s)
	}
	for _, cx := range doc.Run.ChromatogramList.Chromatograms {
		c, err := convertChromatogram(cx, logger)
		if err != nil {
			return nil, err
		}
		exp.AddChromatogram(c)
	}
	return exp, nil
}

func convertSpectrum(sx spectrumXML, logger *log.Logger) (*msdata.Spectrum, error) {
	level := 1
	var rt float64
	for _, p := range sx.CVParams {
		switch p.Accession {
		case "MS:1000511": // ms level
			if n, err := strconv.Atoi(p.Value); err == nil {
				level = n
			}
		case "MS:1000016": // scan start time
			if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
				rt = v
				if mult, ok := unitMultipliers[p.UnitAccession]; ok {
					rt *= mult
				}
			}
		}
	}
	s := msdata.NewSpectrum(sx.ID, rt, level)
	s.Precursors = convertPrecursors(sx.PrecursorList.Precursors)

	arrays, err := decodeArrays(sx.BinaryDataArrayList.Arrays, logger)
	if err != nil {
		return nil, err
	}
	mz := arrays[RoleMZ]
	inten := arrays[RoleIntensity]
	if len(mz) != len(inten) && len(mz) != 0 && len(inten) != 0 {
		return nil, mserr.New(mserr.ParseError, "mzml.convertSpectrum", errArrayLengthMismatch{len(mz), len(inten)})
	}
	peaks := make([]msdata.Peak1D, len(mz))
	for i := range mz {
		var it float32
		if i < len(inten) {
			it = float32(inten[i])
		}
		peaks[i] = msdata.Peak1D{MZ: mz[i], Intensity: it}
	}
	s.SetPeaks(peaks)
	return s, nil
}

func convertChromatogram(cx chromatogramXML, logger *log.Logger) (*msdata.Chromatogram, error) {
	c := msdata.NewChromatogram(cx.ID)
	c.Precursor = convertPrecursor(cx.Precursor)
	c.Product = convertProduct(cx.Product)

	arrays, err := decodeArrays(cx.BinaryDataArrayList.Arrays, logger)
	if err != nil {
		return nil, err
	}
	rt := arrays[RoleTime]
	inten := arrays[RoleIntensity]
	if len(rt) != len(inten) && len(rt) != 0 && len(inten) != 0 {
		return nil, mserr.New(mserr.ParseError, "mzml.convertChromatogram", errArrayLengthMismatch{len(rt), len(inten)})
	}
	points := make([]msdata.RTPoint, len(rt))
	for i := range rt {
		var it float32
		if i < len(inten) {
			it = float32(inten[i])
		}
		points[i] = msdata.RTPoint{RT: rt[i], Intensity: it}
	}
	c.SetPoints(points)
	return c, nil
}

func decodeArrays(axs []binaryDataArrayXML, logger *log.Logger) (map[ArrayRole][]float64, error) {
	out := make(map[ArrayRole][]float64, len(axs))
	for _, ax := range axs {
		var b BinaryDataArray
		b.Payload = ax.Binary
		for _, p := range ax.CVParams {
			handleBinaryDataArrayCVParam(&b, CVParam{
				Accession: p.Accession, Value: p.Value, Name: p.Name, UnitAccession: p.UnitAccession,
			}, logger)
		}
		vals, err := b.DecodeBinary()
		if err != nil {
			return nil, err
		}
		out[b.Role] = vals
	}
	return out, nil
}

func convertPrecursors(pxs []precursorXML) []msdata.Precursor {
	out := make([]msdata.Precursor, len(pxs))
	for i, px := range pxs {
		out[i] = convertPrecursor(px)
	}
	return out
}

func convertPrecursor(px precursorXML) msdata.Precursor {
	var p msdata.Precursor
	for _, ip := range px.IsolationWindow.CVParams {
		switch ip.Accession {
		case "MS:1000827": // isolation window target m/z
			p.MZ = parseFloat(ip.Value)
		case "MS:1000828": // isolation window lower offset
			p.IsolationLower = parseFloat(ip.Value)
		case "MS:1000829": // isolation window upper offset
			p.IsolationUpper = parseFloat(ip.Value)
		}
	}
	for _, sil := range px.SelectedIonList.SelectedIons {
		for _, ip := range sil.CVParams {
			switch ip.Accession {
			case "MS:1000744": // selected ion m/z
				if p.MZ == 0 {
					p.MZ = parseFloat(ip.Value)
				}
			case "MS:1000041": // charge state
				p.Charge = int(parseFloat(ip.Value))
			}
		}
	}
	for _, ap := range px.Activation.CVParams {
		if a, ok := activationAccessions[ap.Accession]; ok {
			p.Activations = append(p.Activations, a)
		}
	}
	return p
}

func convertProduct(px productXML) msdata.Product {
	var p msdata.Product
	for _, ip := range px.IsolationWindow.CVParams {
		switch ip.Accession {
		case "MS:1000827":
			p.MZ = parseFloat(ip.Value)
		case "MS:1000828":
			p.IsolationLower = parseFloat(ip.Value)
		case "MS:1000829":
			p.IsolationUpper = parseFloat(ip.Value)
		}
	}
	return p
}

var activationAccessions = map[string]msdata.Activation{
	"MS:1000133": msdata.CID,
	"MS:1000422": msdata.HCD,
	"MS:1000598": msdata.ETD,
	"MS:1002631": msdata.EThcD,
	"MS:1003182": msdata.ETciD,
	"MS:1000250": msdata.ECD,
	"MS:1000599": msdata.PQD,
	"MS:1000135": msdata.PSD,
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

type errArrayLengthMismatch struct{ a, b int }

func (e errArrayLengthMismatch) Error() string {
	return "mismatched binary array lengths: " + strconv.Itoa(e.a) + " vs " + strconv.Itoa(e.b)
}
