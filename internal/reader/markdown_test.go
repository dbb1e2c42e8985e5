package reader

import (
	"strings"
	"testing"
)

func TestMarkdownReader_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	doc, err := (&MarkdownReader{}).Read(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}

	// The single h1 becomes a section; h2s nest under it as subsections.
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Title != "Title" {
		t.Errorf("expected section title %q, got %q", "Title", sec.Title)
	}
	if len(sec.Paragraphs) == 0 || !strings.Contains(sec.Paragraphs[0].Content, "Intro text.") {
		t.Errorf("expected intro text under h1, got %+v", sec.Paragraphs)
	}

	if len(sec.Subsections) != 2 {
		t.Fatalf("expected 2 subsections, got %d", len(sec.Subsections))
	}
	subA := sec.Subsections[0]
	if subA.Title != "Section A" {
		t.Errorf("expected %q, got %q", "Section A", subA.Title)
	}
	if len(subA.Paragraphs) == 0 || !strings.Contains(subA.Paragraphs[0].Content, "Section A content.") {
		t.Errorf("expected section A content, got %+v", subA.Paragraphs)
	}

	if len(subA.Subsubsections) != 1 {
		t.Fatalf("expected 1 subsubsection under Section A, got %d", len(subA.Subsubsections))
	}
	if subA.Subsubsections[0].Title != "Subsection A1" {
		t.Errorf("expected %q, got %q", "Subsection A1", subA.Subsubsections[0].Title)
	}

	if sec.Subsections[1].Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", sec.Subsections[1].Title)
	}
}

func TestMarkdownReader_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	doc, err := (&MarkdownReader{}).Read(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(doc.Sections))
	}
	if len(doc.Paragraphs) == 0 {
		t.Fatal("expected standalone paragraphs")
	}
	if !strings.Contains(doc.Paragraphs[0].Content, "Just some plain text.") {
		t.Errorf("expected plain text content, got %q", doc.Paragraphs[0].Content)
	}
}

func TestMarkdownReader_DeepHeadingsClampToSubsubsection(t *testing.T) {
	input := `# Top

## Mid

### Deep

##### Deeper still

Deep content.
`
	doc, err := (&MarkdownReader{}).Read(strings.NewReader(input), "deep.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	sub := doc.Sections[0].Subsections
	if len(sub) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(sub))
	}
	// h3 and h5 both land at the subsubsection level.
	if len(sub[0].Subsubsections) != 2 {
		t.Fatalf("expected 2 subsubsections, got %d", len(sub[0].Subsubsections))
	}
	last := sub[0].Subsubsections[1]
	if last.Title != "Deeper still" {
		t.Errorf("expected %q, got %q", "Deeper still", last.Title)
	}
	if len(last.Paragraphs) == 0 || !strings.Contains(last.Paragraphs[0].Content, "Deep content.") {
		t.Errorf("expected content under deepest heading, got %+v", last.Paragraphs)
	}
}
