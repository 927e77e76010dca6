package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/tags"
)

func init() {
	rootCmd.AddCommand(untaggedCmd)
}

var untaggedCmd = &cobra.Command{
	Use:   "untagged",
	Short: "List papers with no tags",
	Long: `List papers whose PDF carries no tag link.

Papers that only have a .bib file are not listed; there is no PDF to
tag.`,
	Args: cobra.NoArgs,
	RunE: runUntagged,
}

func runUntagged(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	untagged, err := tags.FindUntagged(bibDir, tagRoot)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		if untagged == nil {
			untagged = []tags.UntaggedPaper{}
		}
		outputJSON(untagged)
		return nil
	}

	if len(untagged) == 0 {
		fmt.Println("every paper is tagged")
		return nil
	}
	for _, p := range untagged {
		fmt.Printf("%-16s %s\n", p.CK, p.PDFPath)
	}
	return nil
}
