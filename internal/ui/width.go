package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 80

// Width returns the terminal width of stdout, or DefaultWidth when stdout
// is not a terminal.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Columns lays items out column-major within width, ls style. Items longer
// than the width get a line of their own.
func Columns(items []string, width int) string {
	if len(items) == 0 {
		return ""
	}

	longest := 0
	for _, item := range items {
		if len(item) > longest {
			longest = len(item)
		}
	}
	colWidth := longest + 2
	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}
	rows := (len(items) + cols - 1) / cols

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(items) {
				break
			}
			item := items[i]
			if c == cols-1 || (c+1)*rows+r >= len(items) {
				b.WriteString(item)
			} else {
				b.WriteString(item)
				b.WriteString(strings.Repeat(" ", colWidth-len(item)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
