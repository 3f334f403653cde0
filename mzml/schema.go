// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mzml

import "encoding/xml"

// The XML element hierarchy mirrors spec.md §6 exactly:
// mzML > run > spectrumList > spectrum > binaryDataArrayList > binaryDataArray
// (and the analogous path for chromatograms). Only the elements the
// engine actually consumes are modeled; anything else is silently
// dropped by encoding/xml, which is the correct "tolerant reader"
// behavior for a format with many optional, engine-irrelevant sections
// (instrumentConfigurationList, dataProcessingList, referenceableParamGroups, …).

type cvParamXML struct {
	Accession     string `xml:"accession,attr"`
	Value         string `xml:"value,attr"`
	Name          string `xml:"name,attr"`
	UnitAccession string `xml:"unitAccession,attr"`
}

type binaryDataArrayXML struct {
	CVParams []cvParamXML `xml:"cvParam"`
	Binary   string       `xml:"binary"`
}

type binaryDataArrayListXML struct {
	Count   int                   `xml:"count,attr"`
	Arrays  []binaryDataArrayXML `xml:"binaryDataArray"`
}

type activationXML struct {
	CVParams []cvParamXML `xml:"cvParam"`
}

type isolationWindowXML struct {
	CVParams []cvParamXML `xml:"cvParam"`
}

type selectedIonXML struct {
	CVParams []cvParamXML `xml:"cvParam"`
}

type selectedIonListXML struct {
	SelectedIons []selectedIonXML `xml:"selectedIon"`
}

type precursorXML struct {
	IsolationWindow isolationWindowXML  `xml:"isolationWindow"`
	SelectedIonList selectedIonListXML  `xml:"selectedIonList"`
	Activation      activationXML       `xml:"activation"`
}

type precursorListXML struct {
	Precursors []precursorXML `xml:"precursor"`
}

type productXML struct {
	IsolationWindow isolationWindowXML `xml:"isolationWindow"`
}

type spectrumXML struct {
	ID                  string                 `xml:"id,attr"`
	Index               int                    `xml:"index,attr"`
	CVParams            []cvParamXML           `xml:"cvParam"`
	PrecursorList       precursorListXML       `xml:"precursorList"`
	BinaryDataArrayList binaryDataArrayListXML `xml:"binaryDataArrayList"`
}

type spectrumListXML struct {
	Count     int           `xml:"count,attr"`
	Spectra   []spectrumXML `xml:"spectrum"`
}

type chromatogramXML struct {
	ID                  string                 `xml:"id,attr"`
	Index               int                    `xml:"index,attr"`
	CVParams            []cvParamXML           `xml:"cvParam"`
	Precursor           precursorXML           `xml:"precursor"`
	Product             productXML             `xml:"product"`
	BinaryDataArrayList binaryDataArrayListXML `xml:"binaryDataArrayList"`
}

type chromatogramListXML struct {
	Count         int               `xml:"count,attr"`
	Chromatograms []chromatogramXML `xml:"chromatogram"`
}

type runXML struct {
	ID               string              `xml:"id,attr"`
	SpectrumList     spectrumListXML     `xml:"spectrumList"`
	ChromatogramList chromatogramListXML `xml:"chromatogramList"`
}

type mzMLXML struct {
	XMLName xml.Name `xml:"mzML"`
	ID      string   `xml:"id,attr"`
	Run     runXML   `xml:"run"`
}

type indexedMzMLXML struct {
	XMLName xml.Name `xml:"indexedmzML"`
	MzML    mzMLXML  `xml:"mzML"`
}
