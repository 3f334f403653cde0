// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProteinsFASTA(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proteins.fasta")
	data := ">P1 test protein one\nMSDEREVAEA\nATGEDASSPP\n>P2 test protein two\nMKWVTFISLL\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	proteins, err := LoadProteinsFASTA(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(proteins) != 2 {
		t.Fatalf("expected 2 proteins, got %d", len(proteins))
	}
	if proteins[0].Name != "P1" || proteins[0].Sequence != "MSDEREVAEAATGEDASSPP" {
		t.Fatalf("unexpected first protein: %+v", proteins[0])
	}
	if proteins[1].Name != "P2" || proteins[1].Sequence != "MKWVTFISLL" {
		t.Fatalf("unexpected second protein: %+v", proteins[1])
	}
}

func TestLoadProteinsFASTAMissingFile(t *testing.T) {
	if _, err := LoadProteinsFASTA(filepath.Join(t.TempDir(), "missing.fasta")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProteinFASTAIndexFetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proteins.fasta")
	data := ">P1\nMSDEREVAEA\n>P2\nMKWVTFISLL\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := OpenProteinFASTAIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	p, err := idx.Fetch("P2")
	if err != nil {
		t.Fatal(err)
	}
	if p.Sequence != "MKWVTFISLL" {
		t.Fatalf("unexpected fetched sequence: %q", p.Sequence)
	}

	if _, err := idx.Fetch("P9"); err == nil {
		t.Fatal("expected error for unknown accession")
	}
}
