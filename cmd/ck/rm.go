package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/tags"
	"github.com/aluex/ck/internal/ui"
)

var rmForce bool

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "remove without asking")
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <ck>",
	Short: "Remove a paper",
	Long: `Remove a paper's PDF and .bib files and all of its tag links.

Removal asks for confirmation first; --force skips the question. JSON
mode always requires --force.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

// RemoveResult is the response for the rm command.
type RemoveResult struct {
	CK           string   `json:"ck"`
	RemovedFiles []string `json:"removed_files"`
	RemovedTags  []string `json:"removed_tags"`
}

func runRemove(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	ck := args[0]
	if !biblio.Exists(bibDir, ck) {
		exitWithError(ExitDataError, "unknown citation key: %s", ck)
	}

	idx := mustBuildIndex(tagRoot)

	if !rmForce {
		if jsonOutput {
			exitWithError(ExitError, "refusing to remove %s without --force", ck)
		}
		p := ui.NewPrompter(os.Stdin, os.Stderr)
		ok, err := p.Confirm(fmt.Sprintf("Remove %s and its %d tag links?", ck, len(idx[ck])))
		if err != nil || !ok {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(ExitError)
		}
	}

	removedTags, err := tags.RemoveAll(tagRoot, ck)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	var removedFiles []string
	for _, path := range []string{biblio.PDFPath(bibDir, ck), biblio.BibPath(bibDir, ck)} {
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			exitWithError(ExitError, "removing %s: %v", path, err)
		}
		removedFiles = append(removedFiles, path)
	}

	if jsonOutput {
		if removedFiles == nil {
			removedFiles = []string{}
		}
		if removedTags == nil {
			removedTags = []string{}
		}
		outputJSON(RemoveResult{CK: ck, RemovedFiles: removedFiles, RemovedTags: removedTags})
	} else {
		fmt.Printf("removed %s (%d files, %d tag links)\n", ck, len(removedFiles), len(removedTags))
	}
	return nil
}
