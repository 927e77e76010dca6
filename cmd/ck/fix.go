package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
)

func init() {
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix [ck...]",
	Short: "Canonicalize BibTeX entries",
	Long: `Rewrite BibTeX entries into canonical form.

Canonicalizing sets the entry's cite name to the citation key, cleans
stray line breaks out of the author field and brace-protects the title.
Files already in canonical form are left untouched. Without arguments
every paper with a .bib file is processed.

Examples:
  ck fix
  ck fix CMT12 GGPR13`,
	RunE: runFix,
}

// FixProblem is a paper the fix command could not process.
type FixProblem struct {
	CK    string `json:"ck"`
	Error string `json:"error"`
}

// FixResult is the response for the fix command.
type FixResult struct {
	Checked  int          `json:"checked"`
	Fixed    []string     `json:"fixed"`
	Problems []FixProblem `json:"problems"`
}

func runFix(cmd *cobra.Command, args []string) error {
	bibDir, _ := mustDirs()

	cks := args
	if len(cks) == 0 {
		var err error
		cks, err = biblio.ListCitationKeys(bibDir)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	} else {
		for _, ck := range cks {
			if !biblio.Exists(bibDir, ck) {
				exitWithError(ExitDataError, "unknown citation key: %s", ck)
			}
		}
	}

	result := FixResult{Fixed: []string{}, Problems: []FixProblem{}}
	for _, ck := range cks {
		if !biblio.HasBib(bibDir, ck) {
			// Papers found by scanning may be PDF-only; that is not a
			// problem unless the paper was named on the command line.
			if len(args) > 0 {
				result.Problems = append(result.Problems, FixProblem{CK: ck, Error: "no .bib file"})
			}
			continue
		}
		result.Checked++

		path := biblio.BibPath(bibDir, ck)
		rec, err := bib.Load(path)
		if err != nil {
			result.Problems = append(result.Problems, FixProblem{CK: ck, Error: err.Error()})
			continue
		}
		changed, err := bib.Canonicalize(rec, ck)
		if err != nil {
			result.Problems = append(result.Problems, FixProblem{CK: ck, Error: err.Error()})
			continue
		}
		if !changed {
			continue
		}
		if err := bib.Save(path, rec); err != nil {
			result.Problems = append(result.Problems, FixProblem{CK: ck, Error: err.Error()})
			continue
		}
		result.Fixed = append(result.Fixed, ck)
	}

	if jsonOutput {
		outputJSON(result)
		return nil
	}

	for _, ck := range result.Fixed {
		fmt.Printf("fixed %s\n", ck)
	}
	for _, p := range result.Problems {
		fmt.Printf("problem with %s: %s\n", p.CK, p.Error)
	}
	fmt.Printf("checked %d papers, fixed %d\n", result.Checked, len(result.Fixed))
	return nil
}
