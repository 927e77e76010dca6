// Package bib reads, canonicalizes and writes the single-entry BibTeX files
// that sit next to each PDF in the bibliography directory.
package bib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nickng/bibtex"
)

// ErrNotSingleEntry is returned when a BibTeX file does not hold exactly one
// entry. Every <CK>.bib file describes exactly the paper it is named after.
var ErrNotSingleEntry = errors.New("bibtex file must contain exactly one entry")

// Record is the BibTeX entry for one paper.
type Record struct {
	Entry *bibtex.BibEntry
}

// New creates an empty record with the given entry type and citation key.
func New(entryType, ck string) *Record {
	return &Record{Entry: bibtex.NewBibEntry(entryType, ck)}
}

// Parse reads a single-entry BibTeX document.
func Parse(r io.Reader) (*Record, error) {
	bt, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing bibtex: %w", err)
	}
	if len(bt.Entries) != 1 {
		return nil, fmt.Errorf("%w, found %d", ErrNotSingleEntry, len(bt.Entries))
	}
	return &Record{Entry: bt.Entries[0]}, nil
}

// ParseFirst reads the first entry from r, for sources that append
// cross-referenced entries after the one that was asked for.
func ParseFirst(r io.Reader) (*Record, error) {
	bt, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing bibtex: %w", err)
	}
	if len(bt.Entries) == 0 {
		return nil, fmt.Errorf("%w, found 0", ErrNotSingleEntry)
	}
	return &Record{Entry: bt.Entries[0]}, nil
}

// Load reads the record stored at path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Save writes the record to path in its canonical form.
func Save(path string, r *Record) error {
	if err := os.WriteFile(path, []byte(Format(r)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CK returns the record's citation key.
func (r *Record) CK() string {
	return r.Entry.CiteName
}

// Field returns the value of a field without its outer delimiters, or ""
// when the field is absent. Field names are lowercase.
func (r *Record) Field(name string) string {
	v, ok := r.Entry.Fields[name]
	if !ok || v == nil {
		return ""
	}
	return v.String()
}

// SetField sets a field to a literal value.
func (r *Record) SetField(name, value string) {
	r.Entry.AddField(name, bibtex.NewBibConst(value))
}

// DeleteField removes a field if present.
func (r *Record) DeleteField(name string) {
	delete(r.Entry.Fields, name)
}
