package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/tags"
)

var untagAll bool

func init() {
	untagCmd.Flags().BoolVar(&untagAll, "all", false, "remove every tag from the paper")
	rootCmd.AddCommand(untagCmd)
}

var untagCmd = &cobra.Command{
	Use:   "untag <ck> [tag...]",
	Short: "Untag a paper",
	Long: `Remove a paper's link from one or more tag directories.

Untagging a tag the paper does not carry is not an error; the command
reports it and moves on. With --all, every tag link for the paper is
removed.

Examples:
  ck untag CMT12 quantum/shor
  ck untag CMT12 --all`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUntag,
}

// UntagResult is the response for the untag command.
type UntagResult struct {
	CK        string   `json:"ck"`
	Removed   []string `json:"removed"`
	NotTagged []string `json:"not_tagged"`
}

func runUntag(cmd *cobra.Command, args []string) error {
	_, tagRoot := mustDirs()

	ck := args[0]
	tagList := args[1:]

	var removed, notTagged []string
	if untagAll {
		if len(tagList) > 0 {
			exitWithError(ExitError, "--all takes no tag arguments")
		}
		var err error
		removed, err = tags.RemoveAll(tagRoot, ck)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	} else {
		if len(tagList) == 0 {
			exitWithError(ExitError, "no tags given (use --all to remove every tag)")
		}
		for _, tag := range tagList {
			if err := tags.ValidateTag(tag); err != nil {
				exitWithError(ExitError, "%v", err)
			}
			ok, err := tags.Remove(tagRoot, ck, tag)
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			if ok {
				removed = append(removed, tag)
			} else {
				notTagged = append(notTagged, tag)
			}
		}
	}

	if jsonOutput {
		if removed == nil {
			removed = []string{}
		}
		if notTagged == nil {
			notTagged = []string{}
		}
		outputJSON(UntagResult{CK: ck, Removed: removed, NotTagged: notTagged})
	} else {
		for _, tag := range removed {
			fmt.Printf("untagged %s from %s\n", ck, tag)
		}
		for _, tag := range notTagged {
			fmt.Printf("not tagged: %s\n", tag)
		}
		if len(removed) == 0 && len(notTagged) == 0 {
			fmt.Printf("%s has no tags\n", ck)
		}
	}

	return nil
}
