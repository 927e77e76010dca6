package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/clipboard"
)

var bibCopy bool

func init() {
	bibCmd.Flags().BoolVar(&bibCopy, "copy", false, "also copy the entry to the clipboard")
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:   "bib <ck>",
	Short: "Print a paper's BibTeX entry",
	Long: `Print a paper's BibTeX entry in canonical formatting.

With --copy the entry also lands on the system clipboard, ready to paste
into a paper's references.`,
	Args: cobra.ExactArgs(1),
	RunE: runBib,
}

// BibResult is the response for the bib command.
type BibResult struct {
	CK     string `json:"ck"`
	BibTeX string `json:"bibtex"`
}

func runBib(cmd *cobra.Command, args []string) error {
	bibDir, _ := mustDirs()

	ck := args[0]
	if !biblio.Exists(bibDir, ck) {
		exitWithError(ExitDataError, "unknown citation key: %s", ck)
	}
	if !biblio.HasBib(bibDir, ck) {
		exitWithError(ExitDataError, "%s has no .bib file", ck)
	}

	rec, err := bib.Load(biblio.BibPath(bibDir, ck))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	entry := bib.Format(rec)

	if bibCopy {
		if err := clipboard.Copy(entry); err != nil {
			// The entry still prints; only the copy failed.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if jsonOutput {
		outputJSON(BibResult{CK: ck, BibTeX: entry})
	} else {
		fmt.Print(entry)
	}
	return nil
}
