package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/tags"
)

func init() {
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename <old-ck> <new-ck>",
	Short: "Rename a paper's citation key",
	Long: `Rename a paper, moving its files and every tag link with it.

The PDF and .bib files are renamed in the bibliography directory, the
BibTeX cite name is rewritten to match, and each tag link is recreated
under the new key.`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

// RenameResult is the response for the rename command.
type RenameResult struct {
	Old  string   `json:"old"`
	New  string   `json:"new"`
	Tags []string `json:"tags"`
}

func runRename(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	oldCK, newCK := args[0], args[1]
	if err := biblio.ValidateCK(newCK); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if !biblio.Exists(bibDir, oldCK) {
		exitWithError(ExitDataError, "unknown citation key: %s", oldCK)
	}
	if biblio.Exists(bibDir, newCK) {
		exitWithError(ExitDataError, "citation key already exists: %s", newCK)
	}

	// Collect the tag links before the files move so broken links cannot
	// slip through between the two steps.
	oldTags := mustBuildIndex(tagRoot)[oldCK]

	if biblio.HasPDF(bibDir, oldCK) {
		if err := os.Rename(biblio.PDFPath(bibDir, oldCK), biblio.PDFPath(bibDir, newCK)); err != nil {
			exitWithError(ExitError, "renaming PDF: %v", err)
		}
	}
	if biblio.HasBib(bibDir, oldCK) {
		oldPath, newPath := biblio.BibPath(bibDir, oldCK), biblio.BibPath(bibDir, newCK)
		if err := os.Rename(oldPath, newPath); err != nil {
			exitWithError(ExitError, "renaming .bib file: %v", err)
		}
		// Keep the cite name inside the entry in step with the filename.
		if rec, err := bib.Load(newPath); err == nil {
			changed, err := bib.Canonicalize(rec, newCK)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s: %v\n", newCK, err)
			}
			if changed {
				if err := bib.Save(newPath, rec); err != nil {
					exitWithError(ExitError, "%v", err)
				}
			}
		}
	}

	for _, tag := range oldTags {
		if _, err := tags.Remove(tagRoot, oldCK, tag); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if _, err := tags.Add(tagRoot, bibDir, newCK, tag); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if jsonOutput {
		if oldTags == nil {
			oldTags = []string{}
		}
		outputJSON(RenameResult{Old: oldCK, New: newCK, Tags: oldTags})
	} else {
		fmt.Printf("renamed %s to %s\n", oldCK, newCK)
		for _, tag := range oldTags {
			fmt.Printf("moved tag link in %s\n", tag)
		}
	}
	return nil
}
