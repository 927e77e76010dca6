package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/tags"
	"github.com/aluex/ck/internal/ui"
)

func init() {
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag <ck> [tag...]",
	Short: "Tag a paper",
	Long: `Link a paper's PDF into one or more tag directories.

Tags are slash-separated paths under the tag root, created on demand.
With no tags on the command line, ck prompts for a comma-separated list.

Examples:
  ck tag CMT12 quantum/shor systems
  ck tag CMT12`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTag,
}

// TagResult is the response for the tag command.
type TagResult struct {
	CK            string   `json:"ck"`
	Added         []string `json:"added"`
	AlreadyTagged []string `json:"already_tagged"`
}

func runTag(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	ck := args[0]
	if !biblio.Exists(bibDir, ck) {
		exitWithError(ExitDataError, "unknown citation key: %s", ck)
	}

	tagList := args[1:]
	if len(tagList) == 0 {
		tagList = promptForTags()
	}
	if len(tagList) == 0 {
		exitWithError(ExitError, "no tags given")
	}

	added, already, err := applyTags(tagRoot, bibDir, ck, tagList)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		if added == nil {
			added = []string{}
		}
		if already == nil {
			already = []string{}
		}
		outputJSON(TagResult{CK: ck, Added: added, AlreadyTagged: already})
	} else {
		for _, tag := range added {
			fmt.Printf("tagged %s with %s\n", ck, tag)
		}
		for _, tag := range already {
			fmt.Printf("already tagged: %s\n", tag)
		}
	}

	return nil
}

// promptForTags asks for a comma-separated tag list on the terminal.
// In JSON mode there is no terminal conversation, so the list stays empty.
func promptForTags() []string {
	if jsonOutput {
		return nil
	}
	p := ui.NewPrompter(os.Stdin, os.Stderr)
	line, err := p.Line("Tags (comma separated): ")
	if err != nil {
		return nil
	}
	return tags.ParseList(line)
}
