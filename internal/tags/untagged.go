package tags

import (
	"os"
	"strings"

	"github.com/aluex/ck/internal/biblio"
)

// UntaggedPaper is a paper whose PDF exists in the bibliography directory
// but which appears in no tag directory.
type UntaggedPaper struct {
	CK      string `json:"ck"`
	PDFPath string `json:"pdf_path"`
}

// FindUntagged returns the papers in bibDir whose PDFs carry no tag under
// tagRoot, ordered by citation key. Papers that only have a .bib file are
// not reported; there is no PDF to tag.
func FindUntagged(bibDir, tagRoot string) ([]UntaggedPaper, error) {
	idx, err := BuildIndex(tagRoot)
	if err != nil {
		return nil, err
	}
	cks, err := biblio.ListCitationKeys(bibDir)
	if err != nil {
		return nil, err
	}
	var untagged []UntaggedPaper
	for _, ck := range cks {
		path := biblio.PDFPath(bibDir, ck)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, tagged := idx[ck]; tagged {
			continue
		}
		untagged = append(untagged, UntaggedPaper{CK: ck, PDFPath: path})
	}
	return untagged, nil
}

// ParseList splits a comma separated tag list, trimming whitespace around
// each tag and dropping empty items.
func ParseList(s string) []string {
	var parsed []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			parsed = append(parsed, t)
		}
	}
	return parsed
}
