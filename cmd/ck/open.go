package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/biblio"
	"github.com/aluex/ck/internal/pdf"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <ck>",
	Short: "Open a paper's PDF",
	Long: `Open a paper's PDF in the configured reader.

The reader comes from the pdf_reader config setting; "system" uses the
desktop default.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	bibDir, _ := mustConfigDirs(cfg)

	ck := args[0]
	if !biblio.Exists(bibDir, ck) {
		exitWithError(ExitDataError, "unknown citation key: %s", ck)
	}
	path := biblio.PDFPath(bibDir, ck)
	if !biblio.HasPDF(bibDir, ck) {
		exitWithError(ExitDataError, "%s has no PDF (expected %s)", ck, path)
	}

	if err := pdf.Open(path, cfg.PDFReader); err != nil {
		exitWithError(ExitError, "opening %s: %v", ck, err)
	}

	if jsonOutput {
		outputJSON(StatusResponse{Status: "opened", CK: ck, Path: path})
	} else {
		fmt.Printf("opened %s\n", path)
	}
	return nil
}
