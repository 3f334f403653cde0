// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fragindex-build command runs fragindex's construction algorithm
// (spec.md §4.5) over a protein FASTA database and persists the result
// as a fragindex.KVIndex: a modernc.org/kv fragment store at -db plus a
// gob-encoded peptide table and bucket boundary table at -meta, the
// sidecar fragindex.OpenKV needs to reopen it later (e.g. from
// fragindex-audit).
package main

import (
	"encoding/gob"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kortschak/msengine/fragindex"
)

func main() {
	fastaPath := flag.String("fasta", "", "protein FASTA database (required)")
	dbPath := flag.String("db", "", "output fragment store path (required)")
	metaPath := flag.String("meta", "", "output peptide/bucket sidecar path (default: -db plus \".meta\")")

	topDown := flag.Bool("top_down", false, "skip digestion, treat each protein as one peptide")
	missedCleavages := flag.Int("missed_cleavages", 1, "tryptic missed cleavages allowed")
	minLength := flag.Int("min_length", 6, "minimum peptide residue length")
	maxLength := flag.Int("max_length", 40, "maximum peptide residue length")

	minMass := flag.Float64("min_mass", 0, "minimum precursor neutral mass, 0 disables")
	maxMass := flag.Float64("max_mass", 0, "maximum precursor neutral mass, 0 disables")
	fixedMods := flag.String("fixed_mods", "", "comma-separated fixed modification names")
	variableMods := flag.String("variable_mods", "", "comma-separated variable modification names")
	maxVarMods := flag.Int("max_variable_mods", 2, "maximum variable modifications per peptide")

	fragmentMinMZ := flag.Float64("fragment_min_mz", 150, "minimum fragment ion m/z retained")
	fragmentMaxMZ := flag.Float64("fragment_max_mz", 2000, "maximum fragment ion m/z retained")
	bucketSize := flag.Int("bucket_size", 64, "fragments per on-disk bucket")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -fasta <proteins.fasta> -db <fragments.db> [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *fastaPath == "" || *dbPath == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *metaPath == "" {
		*metaPath = *dbPath + ".meta"
	}

	proteins, err := fragindex.LoadProteinsFASTA(*fastaPath)
	if err != nil {
		log.Fatal(err)
	}

	params := fragindex.BuildParams{
		Digest: fragindex.DigestParams{
			TopDown:         *topDown,
			MissedCleavages: *missedCleavages,
			MinLength:       *minLength,
			MaxLength:       *maxLength,
		},
		MinMass:                   *minMass,
		MaxMass:                   *maxMass,
		FixedMods:                 splitMods(*fixedMods),
		VariableMods:              splitMods(*variableMods),
		MaxVariableModsPerPeptide: *maxVarMods,
		FragmentMinMZ:             *fragmentMinMZ,
		FragmentMaxMZ:             *fragmentMaxMZ,
		BucketSize:                *bucketSize,
	}

	idx, err := fragindex.BuildKV(*dbPath, proteins, params)
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	if err := writeMeta(*metaPath, idx); err != nil {
		log.Fatal(err)
	}

	log.Printf("built fragment index: %d proteins, %d peptides -> %s (%s)",
		len(proteins), idx.NumPeptides(), *dbPath, *metaPath)
}

func splitMods(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// indexMeta is what writeMeta persists alongside the kv store: the
// peptide table and bucket boundary table BuildKV keeps in memory but
// does not itself write to disk.
type indexMeta struct {
	Peptides []fragindex.Peptide
	BucketMZ []float64
}

func writeMeta(path string, idx *fragindex.KVIndex) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(indexMeta{Peptides: idx.Peptides(), BucketMZ: idx.BucketBoundaries()})
}
