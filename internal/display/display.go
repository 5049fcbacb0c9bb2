// Package display renders stage results and grounding metadata for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/postcrew/postcrew"
)

// RuleWidth is the length of the line closing a section.
const RuleWidth = 60

// Section writes text under a title, quoting every line with "> ".
func Section(w io.Writer, title, text string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- 📝 %s ---\n\n", title)
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", RuleWidth))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// Grounding writes the first search query and the titles of the sources.
// Nothing is written for a nil grounding.
func Grounding(w io.Writer, g *postcrew.Grounding) error {
	if g == nil {
		return nil
	}
	var b strings.Builder
	if len(g.Queries) > 0 {
		fmt.Fprintf(&b, "\nSearch performed: %s\n", g.Queries[0])
	}
	if titles := g.Titles(); len(titles) > 0 {
		fmt.Fprintf(&b, "Pages used in the answer: %s\n", strings.Join(titles, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
