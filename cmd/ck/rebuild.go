package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search cache",
	Long: `Rebuild the search cache from the .bib files.

Search normally refreshes the cache by itself when the .bib files
change; rebuild forces a full refresh, for example after restoring the
bibliography from a backup with old modification times.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status   string   `json:"status"`
	Papers   int      `json:"papers"`
	Problems []string `json:"problems"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	bibDir, _ := mustConfigDirs(cfg)

	db := mustOpenSearchDB(cfg)
	defer db.Close()

	count, problems, err := db.Rebuild(bibDir)
	if err != nil {
		exitWithError(ExitError, "rebuilding search cache: %v", err)
	}

	if jsonOutput {
		result := RebuildResult{Status: "rebuilt", Papers: count, Problems: []string{}}
		for _, p := range problems {
			result.Problems = append(result.Problems, p.Error())
		}
		outputJSON(result)
		return nil
	}

	fmt.Printf("search cache rebuilt: %d papers\n", count)
	for _, p := range problems {
		fmt.Printf("skipped: %v\n", p)
	}
	return nil
}
