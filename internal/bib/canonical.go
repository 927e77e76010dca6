package bib

import (
	"errors"
	"strings"
)

// Canonicalize rewrites the record into its canonical form for ck: the cite
// name matches the filename stem, the author field is a single line, and the
// title gets a brace layer so LaTeX keeps its capitalization. It reports
// whether anything changed. A record without an author or a title cannot be
// canonicalized; changes made before the missing field was hit stick.
func Canonicalize(r *Record, ck string) (bool, error) {
	updated := false

	if r.Entry.CiteName != ck {
		r.Entry.CiteName = ck
		updated = true
	}

	author, ok := r.Entry.Fields["author"]
	if !ok {
		return updated, errors.New("missing author field")
	}
	raw := author.String()
	cleaned := strings.ReplaceAll(raw, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned != raw {
		r.SetField("author", cleaned)
		updated = true
	}

	title, ok := r.Entry.Fields["title"]
	if !ok {
		return updated, errors.New("missing title field")
	}
	raw = title.String()
	canonical := strings.TrimSpace(raw)
	// Wrap only when the title neither opens with { nor closes with };
	// anything else already carries some protection.
	if !strings.HasPrefix(canonical, "{") && !strings.HasSuffix(canonical, "}") {
		canonical = "{" + canonical + "}"
	}
	if canonical != raw {
		r.SetField("title", canonical)
		updated = true
	}

	return updated, nil
}
