package bib

import (
	"regexp"
	"strings"
)

// Summary is the digest of a record used by listings, search output and the
// search cache.
type Summary struct {
	CK       string   `json:"ck"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Year     string   `json:"year,omitempty"`
	Venue    string   `json:"venue,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	URL      string   `json:"url,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
}

var authorSep = regexp.MustCompile(`\s+and\s+`)

// Summarize extracts a Summary from r. The venue falls back through the
// journal, booktitle and howpublished fields.
func Summarize(r *Record) Summary {
	s := Summary{
		CK:       r.CK(),
		Type:     r.Entry.Type,
		Title:    StripBraces(r.Field("title")),
		Authors:  SplitAuthors(r.Field("author")),
		Year:     r.Field("year"),
		DOI:      r.Field("doi"),
		URL:      r.Field("url"),
		Abstract: r.Field("abstract"),
	}
	for _, f := range []string{"journal", "booktitle", "howpublished"} {
		if v := r.Field(f); v != "" {
			s.Venue = StripBraces(v)
			break
		}
	}
	return s
}

// StripBraces removes the brace layers that protect capitalization in LaTeX,
// for human display.
func StripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// SplitAuthors splits a BibTeX author field on its "and" separators.
func SplitAuthors(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := authorSep.Split(field, -1)
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
