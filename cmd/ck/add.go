package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/fetch"
	"github.com/aluex/ck/internal/tags"
	"github.com/aluex/ck/internal/ui"
)

var addTags string

func init() {
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma separated tags for the new paper")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <ref> <ck>",
	Short: "Add a paper",
	Long: `Fetch a paper's metadata and PDF and file both under a citation key.

The reference can be an arXiv id, a DOI or a DBLP key, bare or as a URL.
The BibTeX entry is canonicalized and saved as <ck>.bib, and the PDF, when
one is available, as <ck>.pdf. Without --tags, ck asks for tags once the
paper is filed.

Examples:
  ck add 1706.03762 VSP17 --tags ml/transformers
  ck add https://doi.org/10.1145/3133956.3133982 BIK17
  ck add conf/focs/Shor94 Shor94`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

// AddResult is the response for the add command.
type AddResult struct {
	CK            string   `json:"ck"`
	Source        string   `json:"source"`
	BibPath       string   `json:"bib_path"`
	PDFPath       string   `json:"pdf_path,omitempty"`
	PDFDownloaded bool     `json:"pdf_downloaded"`
	Tags          []string `json:"tags"`
	AlreadyTagged []string `json:"already_tagged"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	bibDir, tagRoot := mustConfigDirs(cfg)

	ref, ck := args[0], args[1]
	if err := biblio.ValidateCK(ck); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resolved, err := fetch.Resolve(ref)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if biblio.Exists(bibDir, ck) {
		confirmOverwrite(ck)
	}

	client := fetch.NewClient(fetch.WithMailto(cfg.CrossrefMailto))
	ctx := context.Background()

	res, err := client.Fetch(ctx, ref)
	if err != nil {
		if fetch.IsNotFound(err) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	rec := res.Record
	if _, err := bib.Canonicalize(rec, ck); err != nil {
		// Sources sometimes serve entries without an author; the record is
		// still worth saving.
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", ck, err)
	}
	bibPath := biblio.BibPath(bibDir, ck)
	if err := bib.Save(bibPath, rec); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := AddResult{
		CK:            ck,
		Source:        resolved.Kind.String(),
		BibPath:       bibPath,
		Tags:          []string{},
		AlreadyTagged: []string{},
	}

	if res.PDFURL != "" {
		pdfPath := biblio.PDFPath(bibDir, ck)
		if err := client.DownloadPDF(ctx, res.PDFURL, pdfPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			result.PDFPath = pdfPath
			result.PDFDownloaded = true
		}
	}

	if !jsonOutput {
		s := bib.Summarize(rec)
		fmt.Printf("saved %s\n", bibPath)
		if result.PDFDownloaded {
			fmt.Printf("downloaded %s\n", result.PDFPath)
		} else if res.PDFURL == "" {
			fmt.Printf("no PDF available from %s\n", result.Source)
		}
		if s.Title != "" {
			fmt.Printf("%s: %s\n", ck, truncateString(s.Title, ListTitleMaxLen))
		}
	}

	tagList := tags.ParseList(addTags)
	if len(tagList) == 0 {
		tagList = promptForTags()
	}
	added, already, err := applyTags(tagRoot, bibDir, ck, tagList)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	result.Tags = append(result.Tags, added...)
	result.AlreadyTagged = append(result.AlreadyTagged, already...)
	if !jsonOutput {
		for _, tag := range added {
			fmt.Printf("tagged %s with %s\n", ck, tag)
		}
		// An overwritten paper keeps its old links; repeating a tag is fine.
		for _, tag := range already {
			fmt.Printf("already tagged: %s\n", tag)
		}
	}

	if jsonOutput {
		outputJSON(result)
	}
	return nil
}

// applyTags links ck into each tag in turn, splitting the list into the tags
// newly added and the tags the paper already carried. The first invalid tag
// or link failure stops the walk; tags applied before it stay applied.
func applyTags(tagRoot, bibDir, ck string, tagList []string) (added, already []string, err error) {
	for _, tag := range tagList {
		if err := tags.ValidateTag(tag); err != nil {
			return added, already, err
		}
		ok, err := tags.Add(tagRoot, bibDir, ck, tag)
		if err != nil {
			return added, already, err
		}
		if ok {
			added = append(added, tag)
		} else {
			already = append(already, tag)
		}
	}
	return added, already, nil
}

// confirmOverwrite asks before replacing an existing paper's files. In JSON
// mode there is no terminal conversation, so an existing key is an error.
func confirmOverwrite(ck string) {
	if jsonOutput {
		exitWithError(ExitDataError, "citation key already exists: %s", ck)
	}
	p := ui.NewPrompter(os.Stdin, os.Stderr)
	ok, err := p.Confirm(fmt.Sprintf("%s already exists, overwrite?", ck))
	if err != nil || !ok {
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(ExitError)
	}
}
