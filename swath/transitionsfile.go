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

// ReadTransitionsTSV parses a tab-separated transition list into a
// TargetedExperiment. Full traML is, per spec.md §6, "consumed via a
// standard reader, not reimplemented in this spec" — this TSV format is
// the thin, greppable substitute msextract's CLI actually reads;
// production traML ingestion is expected to go through an external
// library that decodes into the same TargetedExperiment shape.
//
// Columns (header line required, order fixed):
//
//	peptide_ref  protein_ref  precursor_mz  product_mz  library_intensity  charge  decoy  library_rt  rt_window
func ReadTransitionsTSV(r io.Reader) (TargetedExperiment, error) {
	const op = "swath.ReadTransitionsTSV"
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return TargetedExperiment{}, mserr.New(mserr.ParseError, op, errEmptyTransitionsFile{})
	}

	proteinSet := make(map[string]bool)
	peptideIdx := make(map[string]int)
	var te TargetedExperiment

	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 9 {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), errBadTransitionLine{len(fields)})
		}

		pepRef, protRef := fields[0], fields[1]
		precursorMZ, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}
		productMZ, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}
		libIntensity, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}
		charge, err := strconv.Atoi(fields[5])
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}
		decoy, err := strconv.ParseBool(fields[6])
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}
		libRT, err := strconv.ParseFloat(fields[7], 64)
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}
		rtWindow, err := strconv.ParseFloat(fields[8], 64)
		if err != nil {
			return TargetedExperiment{}, mserr.At(mserr.ParseError, op, strconv.Itoa(lineNo), err)
		}

		if !proteinSet[protRef] {
			proteinSet[protRef] = true
			te.Proteins = append(te.Proteins, protRef)
		}
		if _, ok := peptideIdx[pepRef]; !ok {
			peptideIdx[pepRef] = len(te.Peptides)
			te.Peptides = append(te.Peptides, Peptide{
				Ref:         pepRef,
				LibraryRT:   libRT,
				RTWindow:    rtWindow,
				ProteinRefs: []string{protRef},
			})
		}

		te.Transitions = append(te.Transitions, Transition{
			PrecursorMZ:      precursorMZ,
			ProductMZ:        productMZ,
			LibraryIntensity: libIntensity,
			PeptideRef:       pepRef,
			Charge:           charge,
			Decoy:            decoy,
			Detecting:        true,
		})
	}
	if err := sc.Err(); err != nil {
		return TargetedExperiment{}, mserr.New(mserr.FileNotReadable, op, err)
	}
	return te, nil
}

type errEmptyTransitionsFile struct{}

func (errEmptyTransitionsFile) Error() string { return "transitions file is empty" }

type errBadTransitionLine struct{ n int }

func (e errBadTransitionLine) Error() string { return "transition line does not have 9 tab-separated fields" }
