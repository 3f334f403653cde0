// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fragindex

import (
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/hts/fai"

	"github.com/kortschak/msengine/mserr"
)

// LoadProteinsFASTA reads every record of a protein FASTA database for
// Build/BuildKV, scanning it the same way the teacher's fragment.go
// scans an input genome FASTA: a seqio.Scanner wrapping a fasta.Reader
// over a linear.Seq template, here built on alphabet.Protein rather
// than alphabet.DNA.
func LoadProteinsFASTA(path string) ([]Protein, error) {
	const op = "fragindex.LoadProteinsFASTA"
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mserr.New(mserr.FileNotFound, op, err)
		}
		return nil, mserr.New(mserr.FileNotReadable, op, err)
	}
	defer f.Close()

	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.Protein)))
	var proteins []Protein
	for sc.Next() {
		seq, ok := sc.Seq().(*linear.Seq)
		if !ok {
			continue
		}
		proteins = append(proteins, Protein{Name: seq.ID, Sequence: lettersToString(seq.Seq)})
	}
	if err := sc.Error(); err != nil {
		return nil, mserr.New(mserr.ParseError, op, err)
	}
	return proteins, nil
}

// ProteinFASTAIndex is a random-access handle onto one accession at a
// time in a large protein FASTA database, for callers that only need to
// re-digest a handful of accessions rather than the whole file —
// grounded on the teacher's cmd/ins/main.go use of fai.NewIndex plus
// fai.NewFile.SeqRange to pull out one BLAST hit's genomic span without
// reading the rest of the query genome.
type ProteinFASTAIndex struct {
	f   *os.File
	idx fai.Index
	fa  *fai.File
}

// OpenProteinFASTAIndex builds an fai index over path by scanning the
// file, and returns a handle for Fetch. An existing path+".fai" file is
// not read.
func OpenProteinFASTAIndex(path string) (*ProteinFASTAIndex, error) {
	const op = "fragindex.OpenProteinFASTAIndex"
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mserr.New(mserr.FileNotFound, op, err)
		}
		return nil, mserr.New(mserr.FileNotReadable, op, err)
	}
	idx, err := fai.NewIndex(f)
	if err != nil {
		f.Close()
		return nil, mserr.New(mserr.ParseError, op, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, mserr.New(mserr.FileNotReadable, op, err)
	}
	return &ProteinFASTAIndex{f: f, idx: idx, fa: fai.NewFile(f, idx)}, nil
}

// Fetch returns the full sequence of the named accession.
func (p *ProteinFASTAIndex) Fetch(name string) (Protein, error) {
	const op = "fragindex.ProteinFASTAIndex.Fetch"
	for _, rec := range p.idx {
		if rec.Name != name {
			continue
		}
		r, err := p.fa.SeqRange(name, 0, rec.Length)
		if err != nil {
			return Protein{}, mserr.New(mserr.ParseError, op, err)
		}
		seq, err := io.ReadAll(r)
		if err != nil {
			return Protein{}, mserr.New(mserr.ParseError, op, err)
		}
		return Protein{Name: name, Sequence: string(seq)}, nil
	}
	return Protein{}, mserr.New(mserr.MissingInformation, op, errAccessionNotFound{name})
}

func (p *ProteinFASTAIndex) Close() error { return p.f.Close() }

// lettersToString converts a linear.Seq's residue slice to a plain
// string. alphabet.Letter's underlying type is byte (see
// msdata.ResidueDB's alphabet.Letter(c) conversions), so this is a
// direct elementwise copy, not a decode.
func lettersToString(letters alphabet.Letters) string {
	b := make([]byte, len(letters))
	for i, l := range letters {
		b[i] = byte(l)
	}
	return string(b)
}

type errAccessionNotFound struct{ name string }

func (e errAccessionNotFound) Error() string { return "accession not found in FASTA index" }
