package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/storage"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the library",
	Long: `Full-text search over titles, authors, venues and abstracts.

Prefix the query with author:, title: or venue: to search one field
only. The search cache refreshes itself when the .bib files changed
since the last query.

Examples:
  ck search interactive proofs
  ck search author:goldwasser
  ck search venue:crypto --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	bibDir, _ := mustConfigDirs(cfg)

	db := mustOpenSearchDB(cfg)
	defer db.Close()

	refreshSearchCache(db, bibDir)

	query := strings.Join(args, " ")
	results, err := searchQuery(db, query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		if results == nil {
			results = []bib.Summary{}
		}
		outputJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for i, s := range results {
		printPaperSummary(i+1, s)
	}
	return nil
}

// searchQuery routes field-prefixed queries to the matching field search.
func searchQuery(db *storage.DB, query string, limit int) ([]bib.Summary, error) {
	for _, field := range []string{"author", "title", "venue"} {
		prefix := field + ":"
		if strings.HasPrefix(query, prefix) {
			value := strings.TrimSpace(strings.TrimPrefix(query, prefix))
			return db.SearchField(field, value, limit)
		}
	}
	return db.Search(query, limit)
}

// refreshSearchCache rebuilds the cache when the .bib files changed since
// the last rebuild. Cache trouble falls back to a full rebuild rather than
// failing the search.
func refreshSearchCache(db *storage.DB, bibDir string) {
	stale, err := db.NeedsRebuild(bibDir)
	if err != nil {
		stale = true
	}
	if !stale {
		return
	}
	count, problems, err := db.Rebuild(bibDir)
	if err != nil {
		exitWithError(ExitError, "rebuilding search cache: %v", err)
	}
	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, "index refreshed: %d papers\n", count)
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "skipped: %v\n", p)
		}
	}
}
