package bib

import (
	"fmt"
	"sort"
	"strings"
)

// Format renders the record as the canonical file form: one field per line,
// fields in alphabetical order, values brace-delimited. The output parses
// back to an equal record.
func Format(r *Record) string {
	names := make([]string, 0, len(r.Entry.Fields))
	for name := range r.Entry.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s", r.Entry.Type, r.Entry.CiteName)
	for _, name := range names {
		b.WriteString(",\n")
		fmt.Fprintf(&b, "  %s = {%s}", name, r.Entry.Fields[name].String())
	}
	b.WriteString("\n}\n")
	return b.String()
}
