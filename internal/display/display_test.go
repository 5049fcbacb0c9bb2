package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/postcrew/postcrew"
)

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	if err := Section(&buf, "Agent 1 result (Researcher)", "first\n\nthird"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\n--- 📝 Agent 1 result (Researcher) ---\n\n" +
		"> first\n> \n> third\n\n" + strings.Repeat("-", 60) + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestSectionEmptyText(t *testing.T) {
	var buf bytes.Buffer
	if err := Section(&buf, "Empty", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n> \n") {
		t.Fatalf("expected a single quoted empty line, got %q", buf.String())
	}
}

func TestGrounding(t *testing.T) {
	var buf bytes.Buffer
	g := &postcrew.Grounding{
		Queries: []string{"next alura immersion", "gemini course"},
		Sources: []postcrew.Source{{Title: "alura.com.br"}, {URI: "https://example.com"}, {Title: "youtube.com"}},
	}
	if err := Grounding(&buf, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\nSearch performed: next alura immersion\nPages used in the answer: alura.com.br, youtube.com\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := Grounding(&buf, nil); err != nil || buf.Len() != 0 {
		t.Fatalf("expected no output for nil grounding, got %q (%v)", buf.String(), err)
	}
}
