// Package main provides the ck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/config"
	"github.com/aluex/ck/internal/storage"
	"github.com/aluex/ck/internal/tags"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// jsonOutput switches to machine-readable output.
	jsonOutput bool

	// verbosity counts repeated -v flags.
	verbosity int

	// flagBibDir and flagTagDir override the configured directories.
	flagBibDir string
	flagTagDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ck",
	Short: "Citation key based paper manager",
	Long: `ck manages a bibliography of papers named by citation key.

Every paper is a <citation key>.pdf / <citation key>.bib pair in one flat
bibliography directory. Tags are plain directories under a tag root, and
tagging a paper just symlinks its PDF into those directories, so the whole
library stays browsable with ls and a file manager.

Commands output human-readable text by default; use --json for machine
output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for CK_BIB_DIR and friends)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output instead of human-readable text")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase diagnostic detail (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagBibDir, "bib-dir", "", "Override the bibliography directory")
	rootCmd.PersistentFlags().StringVar(&flagTagDir, "tag-dir", "", "Override the tag tree directory")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration with flag overrides applied, exits on
// error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if flagBibDir != "" {
		cfg.BibDir = config.ExpandPath(flagBibDir)
	}
	if flagTagDir != "" {
		cfg.TagDir = config.ExpandPath(flagTagDir)
	}
	return cfg
}

// mustDirs returns the bibliography and tag directories, exits with a
// helpful message when no library is configured.
func mustDirs() (bibDir, tagDir string) {
	return mustConfigDirs(mustLoadConfig())
}

// mustConfigDirs is mustDirs for commands that already hold the config.
func mustConfigDirs(cfg *config.Config) (bibDir, tagDir string) {
	bibDir, tagDir, err := cfg.Dirs()
	if err != nil {
		if jsonOutput {
			outputJSON(ErrorResponse{Error: err.Error()})
		} else {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		}
		os.Exit(ExitConfigError)
	}
	return bibDir, tagDir
}

// mustBuildIndex builds the tag index, exits on error. At -vv every link
// the walk finds is reported on stderr.
func mustBuildIndex(tagRoot string) tags.Index {
	links, err := tags.Links(tagRoot)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	idx := make(tags.Index)
	for _, l := range links {
		if verbosity > 1 {
			fmt.Fprintf(os.Stderr, "link %s: tag %s (%s)\n", l.CK, l.Tag, l.Path)
		}
		idx[l.CK] = append(idx[l.CK], l.Tag)
	}
	return idx
}

// mustOpenSearchDB opens the search cache database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenSearchDB(cfg *config.Config) *storage.DB {
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.Open(cfg.SearchDBPath())
	if err != nil {
		exitWithError(ExitError, "opening search cache: %v", err)
	}
	return db
}
