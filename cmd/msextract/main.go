// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The msextract command is the engine's thinnest wrapper (spec.md §6):
// it reads an mzML SWATH-MS acquisition, a transition list, an optional
// external windows file, and writes picked peak groups to a TSV or
// featureXML-like report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/msengine/mserr"
	"github.com/kortschak/msengine/mzml"
	"github.com/kortschak/msengine/swath"
)

func main() {
	in := flag.String("in", "", "combined SWATH-MS mzML file")
	tr := flag.String("tr", "", "transitions TSV file (required)")
	var swathFiles sliceValue
	flag.Var(&swathFiles, "swath_files", "per-window mzML file (may be present more than once, used instead of -in when acquisition is split per window)")
	windowsFile := flag.String("swath_windows", "", "optional external SWATH windows file (spec.md §6) to annotate isolation bounds from")
	force := flag.Bool("force", false, "keep data-derived isolation bounds when an external window is not contained in them, instead of failing")
	out := flag.String("out", "", "output file (.tsv or .featureXML; required)")
	minUpperEdgeDist := flag.Float64("min_upper_edge_dist", 0, "minimum distance in Th a transition's precursor m/z must keep from its window's upper edge")
	mzTolerance := flag.Float64("mz_tolerance", 0.05, "± m/z tolerance in Th for chromatogram extraction")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -in <swath.mzML> -tr <transitions.tsv> -out <out.tsv> [options]
  $ %[1]s -swath_files <w1.mzML> -swath_files <w2.mzML> ... -tr <transitions.tsv> -out <out.tsv>

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if (*in == "" && len(swathFiles) == 0) || *tr == "" || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*in, swathFiles, *tr, *windowsFile, *out, *minUpperEdgeDist, *mzTolerance, *force); err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}
}

func run(in string, swathFiles sliceValue, tr, windowsFile, out string, minUpperEdgeDist, mzTolerance float64, force bool) error {
	maps, err := loadSwathMaps(in, swathFiles)
	if err != nil {
		return err
	}
	for _, m := range maps {
		if err := swath.CheckSwathMap(m); err != nil {
			return err
		}
	}

	if windowsFile != "" {
		f, err := os.Open(windowsFile)
		if err != nil {
			return mserr.New(mserr.FileNotFound, "msextract", err)
		}
		windows, err := swath.ReadWindowsFile(f)
		f.Close()
		if err != nil {
			return err
		}
		if err := swath.AnnotateSwathMapsFromFile(maps, windows, force, log.Default()); err != nil {
			return err
		}
	}

	trFile, err := os.Open(tr)
	if err != nil {
		return mserr.New(mserr.FileNotFound, "msextract", err)
	}
	te, err := swath.ReadTransitionsTSV(trFile)
	trFile.Close()
	if err != nil {
		return err
	}

	outFile, err := os.Create(out)
	if err != nil {
		return mserr.New(mserr.UnableToCreateFile, "msextract", err)
	}
	defer outFile.Close()

	return extractAndWrite(maps, te, minUpperEdgeDist, mzTolerance, outFile)
}

func loadSwathMaps(in string, swathFiles sliceValue) ([]swath.SwathMap, error) {
	if len(swathFiles) > 0 {
		var maps []swath.SwathMap
		for _, path := range swathFiles {
			exp, err := mzml.ReadFile(path, nil)
			if err != nil {
				return nil, err
			}
			maps = append(maps, swath.GroupSwathMaps(exp)...)
		}
		return maps, nil
	}
	exp, err := mzml.ReadFile(in, nil)
	if err != nil {
		return nil, err
	}
	return swath.GroupSwathMaps(exp), nil
}

func extractAndWrite(maps []swath.SwathMap, te swath.TargetedExperiment, minUpperEdgeDist, mzTolerance float64, out *os.File) error {
	format := outputFormat(out.Name())
	if format == formatTSV {
		fmt.Fprintln(out, "peptide_ref\ttransition_count\tbest_left\tapex\tbest_right\tarea")
	} else {
		fmt.Fprintln(out, "<featureXML>")
		defer fmt.Fprintln(out, "</featureXML>")
	}

	for _, m := range maps {
		sel := swath.SelectSwathTransitions(te, m.IsolationLower, m.IsolationUpper, minUpperEdgeDist)
		if len(sel.Transitions) == 0 {
			continue
		}
		chroms := swath.BuildChromatograms(m, sel, mzTolerance)
		groups := swath.MRMTransitionGroupPicker(chroms, swath.PeakGroupOptions{
			MinRelHeight:       0.05,
			IntensityRatio:     0.1,
			MaxFeatureCount:    0,
			SubtractBackground: true,
		})
		for _, g := range groups {
			pepRef := peptideRefForGroup(sel, chroms, g)
			writeGroup(out, format, pepRef, g)
		}
	}
	return nil
}

func peptideRefForGroup(te swath.TargetedExperiment, chroms []swath.ExtractedChromatogram, g swath.PeakGroup) string {
	if len(g.Transitions) == 0 {
		return ""
	}
	return chroms[g.Transitions[0]].Transition.PeptideRef
}

type outputFmt int

const (
	formatTSV outputFmt = iota
	formatFeatureXML
)

func outputFormat(name string) outputFmt {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			if name[i+1:] == "tsv" {
				return formatTSV
			}
			return formatFeatureXML
		}
	}
	return formatTSV
}

func writeGroup(out *os.File, format outputFmt, pepRef string, g swath.PeakGroup) {
	if format == formatTSV {
		fmt.Fprintf(out, "%s\t%d\t%v\t%v\t%v\t%v\n", pepRef, len(g.Transitions), g.BestLeft, g.Apex, g.BestRight, g.Area)
		return
	}
	fmt.Fprintf(out, "  <feature peptide_ref=%q rt_start=%q rt_apex=%q rt_end=%q intensity=%q/>\n",
		pepRef, fmtFloat(g.BestLeft), fmtFloat(g.Apex), fmtFloat(g.BestRight), fmtFloat(g.Area))
}

func fmtFloat(v float64) string { return fmt.Sprintf("%v", v) }

func exitCode(err error) int {
	var e *mserr.Error
	if me, ok := err.(*mserr.Error); ok {
		e = me
	}
	if e == nil {
		return 2
	}
	switch e.Kind {
	case mserr.FileNotFound, mserr.FileNotReadable:
		return 3
	case mserr.IllegalArgument, mserr.InvalidValue:
		return 1
	default:
		return 2
	}
}

// sliceValue is a multi-value flag value.
type sliceValue []string

func (s *sliceValue) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (s *sliceValue) String() string {
	return fmt.Sprintf("%q", []string(*s))
}
