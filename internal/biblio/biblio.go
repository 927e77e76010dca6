// Package biblio resolves and enumerates the PDF/BibTeX file pairs that make
// up the bibliography directory. Every paper is identified by its citation
// key: the shared base name of its <CK>.pdf and <CK>.bib files.
package biblio

import (
	"errors"
	"regexp"
)

// CKPattern is the regex pattern for well-formed citation keys: letters and
// digits with +, - and _ as separators. A dot is never allowed because the
// scanner reserves dotted stems for auxiliary files (CMT12.slides.pdf).
var CKPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9+_-]*$`)

// Validation errors.
var (
	ErrEmptyCK   = errors.New("citation key is required")
	ErrInvalidCK = errors.New("citation key may contain letters, digits, +, - and _ only")
)

// ValidateCK checks that ck is usable as a citation key.
func ValidateCK(ck string) error {
	if ck == "" {
		return ErrEmptyCK
	}
	if !CKPattern.MatchString(ck) {
		return ErrInvalidCK
	}
	return nil
}
