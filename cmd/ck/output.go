package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aluex/ck/internal/bib"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search results

	ListTitleMaxLen   = 60 // Used in list command output
	SearchTitleMaxLen = 70 // Used in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	CK     string `json:"ck,omitempty"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a)
	}
	return strings.Join(names, ", ")
}

// printPaperSummary prints one search or list hit in human-readable form.
func printPaperSummary(num int, p bib.Summary) {
	fmt.Printf("[%d] %s\n", num, p.CK)
	fmt.Printf("    %s\n", truncateString(p.Title, SearchTitleMaxLen))

	if len(p.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(p.Authors, 3))
	}

	switch {
	case p.Venue != "" && p.Year != "":
		fmt.Printf("    %s (%s)\n", p.Venue, p.Year)
	case p.Venue != "":
		fmt.Printf("    %s\n", p.Venue)
	case p.Year != "":
		fmt.Printf("    (%s)\n", p.Year)
	}
	fmt.Println()
}
