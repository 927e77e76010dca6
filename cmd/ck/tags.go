package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/tags"
	"github.com/aluex/ck/internal/ui"
)

var tagsTree bool

func init() {
	tagsCmd.Flags().BoolVar(&tagsTree, "tree", false, "draw the tag hierarchy as a tree")
	rootCmd.AddCommand(tagsCmd)
}

var tagsCmd = &cobra.Command{
	Use:   "tags [ck]",
	Short: "List tags",
	Long: `List every tag in the library, or the tags carried by one paper.

Without arguments the full tag hierarchy is shown, in columns by default
or drawn as a tree with --tree. With a citation key, only that paper's
tags are listed.

Examples:
  ck tags
  ck tags --tree
  ck tags CMT12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	bibDir, tagRoot := mustDirs()

	if len(args) == 1 {
		return runTagsForPaper(bibDir, tagRoot, args[0])
	}

	all, err := tags.List(tagRoot)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		if all == nil {
			all = []string{}
		}
		outputJSON(all)
		return nil
	}

	if len(all) == 0 {
		fmt.Println("no tags")
		return nil
	}
	if tagsTree {
		tree := ui.NewTagTree("tags")
		for _, tag := range all {
			tree.Insert(tag)
		}
		fmt.Print(tree.Render())
		return nil
	}
	fmt.Print(ui.Columns(all, ui.Width()))
	return nil
}

func runTagsForPaper(bibDir, tagRoot, ck string) error {
	if !biblio.Exists(bibDir, ck) {
		exitWithError(ExitDataError, "unknown citation key: %s", ck)
	}

	paperTags := mustBuildIndex(tagRoot)[ck]

	if jsonOutput {
		if paperTags == nil {
			paperTags = []string{}
		}
		outputJSON(paperTags)
		return nil
	}

	if len(paperTags) == 0 {
		fmt.Printf("%s has no tags\n", ck)
		return nil
	}
	for _, tag := range paperTags {
		fmt.Println(tag)
	}
	return nil
}
