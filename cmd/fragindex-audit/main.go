// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fragindex-audit command inspects a fragment store written by
// fragindex-build (-db plus its -meta sidecar), reopening it with
// fragindex.OpenKV and walking the raw store with KVIndex.SeekFirst.
// Output is a JSON stream of one record per stored fragment key, on
// stdout.
package main

import (
	"encoding/gob"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kortschak/msengine/fragindex"
	"github.com/kortschak/msengine/internal/store"
)

func main() {
	dbPath := flag.String("db", "", "fragment db file to audit (required)")
	metaPath := flag.String("meta", "", "peptide/bucket sidecar written by fragindex-build (default: -db plus \".meta\")")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -db <fragments.db> >out.json

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dbPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *metaPath == "" {
		*metaPath = *dbPath + ".meta"
	}

	peptides, bucketMZ, err := readMeta(*metaPath)
	if err != nil {
		log.Fatal(err)
	}

	idx, err := fragindex.OpenKV(*dbPath, peptides, bucketMZ)
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	it, err := idx.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return
		}
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		k, _, err := it.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}
		fk := store.UnmarshalFragmentKey(k)
		err = enc.Encode(fragmentRecord{
			Bucket:     fk.Bucket,
			PeptideIdx: fk.PeptideIdx,
			FragmentMZ: fk.FragmentMZ,
		})
		if err != nil {
			log.Fatalf("failed to write record: %v", err)
		}
	}
}

// indexMeta mirrors fragindex-build's sidecar encoding.
type indexMeta struct {
	Peptides []fragindex.Peptide
	BucketMZ []float64
}

func readMeta(path string) (peptides []fragindex.Peptide, bucketMZ []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	var m indexMeta
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, nil, err
	}
	return m.Peptides, m.BucketMZ, nil
}

type fragmentRecord struct {
	Bucket     int32
	PeptideIdx int32
	FragmentMZ float64
}
