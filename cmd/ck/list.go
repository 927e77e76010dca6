package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/tags"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [tag]",
	Short: "List papers",
	Long: `List the papers in the library, or the papers under one tag.

Listing a tag includes the papers of every tag nested below it, so
"ck list security" covers security/zk as well.

Examples:
  ck list
  ck list security/zk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

// ListedPaper is one row of the list command's output.
type ListedPaper struct {
	CK      string   `json:"ck"`
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Year    string   `json:"year,omitempty"`
	Venue   string   `json:"venue,omitempty"`
	HasPDF  bool     `json:"has_pdf"`
	HasBib  bool     `json:"has_bib"`
}

func runList(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	scanDir := bibDir
	if len(args) == 1 {
		tag := args[0]
		if err := tags.ValidateTag(tag); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		scanDir = filepath.Join(tagRoot, filepath.FromSlash(tag))
		if _, err := os.Stat(scanDir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				exitWithError(ExitDataError, "unknown tag: %s", tag)
			}
			exitWithError(ExitError, "%v", err)
		}
	}

	cks, err := biblio.ListCitationKeys(scanDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	papers := make([]ListedPaper, 0, len(cks))
	for _, ck := range cks {
		papers = append(papers, describePaper(bibDir, ck))
	}

	if jsonOutput {
		outputJSON(papers)
		return nil
	}

	if len(papers) == 0 {
		fmt.Println("no papers")
		return nil
	}
	for _, p := range papers {
		fmt.Printf("%-16s %s\n", p.CK, listLine(p))
	}
	return nil
}

// describePaper fills a row from the paper's BibTeX file when it has one.
// The citation key comes from the filename, so a paper with a missing or
// unreadable .bib file still lists.
func describePaper(bibDir, ck string) ListedPaper {
	p := ListedPaper{
		CK:     ck,
		HasPDF: biblio.HasPDF(bibDir, ck),
		HasBib: biblio.HasBib(bibDir, ck),
	}
	if !p.HasBib {
		return p
	}
	rec, err := bib.Load(biblio.BibPath(bibDir, ck))
	if err != nil {
		return p
	}
	s := bib.Summarize(rec)
	p.Title = s.Title
	p.Authors = s.Authors
	p.Year = s.Year
	p.Venue = s.Venue
	return p
}

func listLine(p ListedPaper) string {
	if p.Title == "" {
		switch {
		case !p.HasBib && p.HasPDF:
			return "(no .bib file)"
		case p.HasBib && !p.HasPDF:
			return "(no PDF)"
		default:
			return "(no title)"
		}
	}
	line := truncateString(p.Title, ListTitleMaxLen)
	var extra []string
	if len(p.Authors) > 0 {
		extra = append(extra, formatAuthorsShort(p.Authors, 2))
	}
	if p.Year != "" {
		extra = append(extra, p.Year)
	}
	if len(extra) > 0 {
		line += " (" + strings.Join(extra, ", ") + ")"
	}
	return line
}
