package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <bib-dir> <tag-dir>",
	Short: "Create a paper library and write its config",
	Long: `Create a paper library: a bibliography directory for the
<citation key>.pdf / <citation key>.bib pairs and a tag root for the
symlink tree. Both are created if missing and recorded in the global
config file.

Examples:
  ck init ~/papers/bib ~/papers/tags`,
	Args: cobra.ExactArgs(2),
	RunE: runInit,
}

// InitResult is the response for the init command.
type InitResult struct {
	Status     string `json:"status"`
	BibDir     string `json:"bib_dir"`
	TagDir     string `json:"tag_dir"`
	ConfigPath string `json:"config_path"`
}

func runInit(cmd *cobra.Command, args []string) error {
	bibDir, err := filepath.Abs(config.ExpandPath(args[0]))
	if err != nil {
		exitWithError(ExitError, "resolving bibliography directory: %v", err)
	}
	tagDir, err := filepath.Abs(config.ExpandPath(args[1]))
	if err != nil {
		exitWithError(ExitError, "resolving tag directory: %v", err)
	}

	for _, dir := range []string{bibDir, tagDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			exitWithError(ExitError, "creating %s: %v", dir, err)
		}
	}

	// Keep any settings already present in the config file.
	cfg, err := config.LoadFile()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.BibDir = bibDir
	cfg.TagDir = tagDir
	if cfg.PDFReader == "" {
		cfg.PDFReader = "system"
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if jsonOutput {
		outputJSON(InitResult{
			Status:     "initialized",
			BibDir:     bibDir,
			TagDir:     tagDir,
			ConfigPath: config.Path(),
		})
	} else {
		fmt.Printf("Initialized paper library\n")
		fmt.Printf("  bibliography: %s\n", bibDir)
		fmt.Printf("  tags:         %s\n", tagDir)
		fmt.Printf("  config:       %s\n", config.Path())
	}

	return nil
}
