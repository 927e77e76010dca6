package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration values",
	Long: `Show or change configuration values.

Usage:
  ck config                          # Show all config
  ck config get pdf_reader           # Get one value
  ck config set pdf_reader skim      # Set a value

Keys:
  bib_dir          Bibliography directory (the .pdf/.bib pairs)
  tag_dir          Tag tree root
  pdf_reader       PDF reader preference (system, skim, preview, zathura, evince, okular)
  cache_dir        Where the search cache lives
  crossref_mailto  Contact address sent with Crossref requests`,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if jsonOutput {
		return outputJSON(cfg)
	}
	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		fmt.Printf("%-16s %s\n", key, value)
	}
	return nil
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	value, err := cfg.Get(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		return outputJSON(map[string]string{args[0]: value})
	}
	fmt.Println(value)
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Settings changed here must outlive the process, so edit the file
	// contents rather than the env-layered view.
	cfg, err := config.LoadFile()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if key == "bib_dir" || key == "tag_dir" || key == "cache_dir" {
		value = config.ExpandPath(value)
	}
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if jsonOutput {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	} else {
		fmt.Printf("Updated %s to %s\n", key, value)
	}

	return nil
}
