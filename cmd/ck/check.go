package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/pdf"
	"github.com/aluex/ck/internal/tags"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify library integrity",
	Long: `Verify library integrity.

Reports papers missing one of their two files, entries that do not parse
or whose cite name disagrees with the filename, and tag links that
dangle or name a citation key the bibliography does not have. With -v
each PDF is also searched for its embedded DOI, which is compared
against the .bib entry.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckIssue is a single problem found during check.
type CheckIssue struct {
	Type   string `json:"type"`
	CK     string `json:"ck,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Path   string `json:"path,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status string       `json:"status"`
	Papers int          `json:"papers"`
	Issues []CheckIssue `json:"issues"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	cks, err := biblio.ListCitationKeys(bibDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	known := make(map[string]bool, len(cks))
	for _, ck := range cks {
		known[ck] = true
	}

	var issues []CheckIssue
	for _, ck := range cks {
		issues = append(issues, checkPaper(bibDir, ck)...)
	}

	links, err := tags.Links(tagRoot)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	linkIssues, err := checkLinks(links, known)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	issues = append(issues, linkIssues...)

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}
	if issues == nil {
		issues = []CheckIssue{}
	}

	if jsonOutput {
		outputJSON(CheckResult{Status: status, Papers: len(cks), Issues: issues})
		return nil
	}

	if len(issues) == 0 {
		fmt.Printf("Library check: OK\n\n%d papers checked\n", len(cks))
		return nil
	}
	fmt.Printf("Library check: %d issues found\n\n", len(issues))
	for _, issue := range issues {
		switch issue.Type {
		case "missing_bib":
			fmt.Printf("  [WARN] %s has a PDF but no .bib file\n", issue.CK)
		case "missing_pdf":
			fmt.Printf("  [WARN] %s has a .bib file but no PDF\n", issue.CK)
		case "bad_bib":
			fmt.Printf("  [WARN] %s: %s\n", issue.CK, issue.Detail)
		case "ck_mismatch":
			fmt.Printf("  [WARN] %s: %s (run ck fix %s)\n", issue.CK, issue.Detail, issue.CK)
		case "broken_link":
			fmt.Printf("  [WARN] Broken tag link for %s under %s\n", issue.CK, issue.Tag)
			fmt.Printf("         %s\n", issue.Path)
		case "unknown_ck":
			fmt.Printf("  [WARN] Tag %s links unknown citation key %s\n", issue.Tag, issue.CK)
			fmt.Printf("         %s\n", issue.Path)
		case "doi_mismatch":
			fmt.Printf("  [WARN] %s: %s\n", issue.CK, issue.Detail)
		}
	}
	fmt.Printf("\n%d papers checked\n", len(cks))
	return nil
}

// checkLinks reports the tag links whose target is gone or whose citation
// key the bibliography does not know. Stat follows the link, so only a
// not-exist result means the link dangles; any other failure (an unreadable
// target directory, say) is a real error, not a broken link.
func checkLinks(links []tags.Link, known map[string]bool) ([]CheckIssue, error) {
	var issues []CheckIssue
	for _, l := range links {
		if _, err := os.Stat(l.Path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				issues = append(issues, CheckIssue{Type: "broken_link", CK: l.CK, Tag: l.Tag, Path: l.Path})
				continue
			}
			return issues, fmt.Errorf("checking tag link %s: %w", l.Path, err)
		}
		if !known[l.CK] {
			issues = append(issues, CheckIssue{Type: "unknown_ck", CK: l.CK, Tag: l.Tag, Path: l.Path})
		}
	}
	return issues, nil
}

// checkPaper reports the problems with one paper's file pair.
func checkPaper(bibDir, ck string) []CheckIssue {
	var issues []CheckIssue
	hasPDF := biblio.HasPDF(bibDir, ck)
	hasBib := biblio.HasBib(bibDir, ck)
	switch {
	case hasPDF && !hasBib:
		issues = append(issues, CheckIssue{Type: "missing_bib", CK: ck})
	case hasBib && !hasPDF:
		issues = append(issues, CheckIssue{Type: "missing_pdf", CK: ck})
	}
	if !hasBib {
		return issues
	}

	rec, err := bib.Load(biblio.BibPath(bibDir, ck))
	if err != nil {
		return append(issues, CheckIssue{Type: "bad_bib", CK: ck, Detail: err.Error()})
	}
	if rec.CK() != ck {
		issues = append(issues, CheckIssue{Type: "ck_mismatch", CK: ck,
			Detail: fmt.Sprintf("entry cite name is %q", rec.CK())})
	}

	// Comparing DOIs means extracting text from every PDF, so it only runs
	// under -v.
	if verbosity > 0 && hasPDF {
		if doi := rec.Field("doi"); doi != "" {
			if issue := checkDOI(bibDir, ck, doi); issue != nil {
				issues = append(issues, *issue)
			}
		}
	}
	return issues
}

// checkDOI compares the DOI printed inside the PDF against the .bib value.
// A PDF without a readable DOI is not an issue; plenty of papers have none.
func checkDOI(bibDir, ck, want string) *CheckIssue {
	embedded, err := pdf.ExtractDOI(biblio.PDFPath(bibDir, ck))
	if err != nil || embedded == "" {
		return nil
	}
	if strings.EqualFold(embedded, want) {
		return nil
	}
	return &CheckIssue{Type: "doi_mismatch", CK: ck,
		Detail: fmt.Sprintf("PDF carries DOI %s, .bib says %s", embedded, want)}
}
