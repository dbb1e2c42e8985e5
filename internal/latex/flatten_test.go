package latex

import (
	"strings"
	"testing"
)

func TestFlatten_SectionsWithNesting(t *testing.T) {
	doc := &Document{
		Sections: []*Section{
			{
				Title:      "Intro",
				Paragraphs: []Paragraph{{Content: "Intro prose."}},
				Subsections: []*Subsection{
					{
						Title:      "Background",
						Paragraphs: []Paragraph{{Content: "Background prose."}},
						Subsubsections: []*Subsubsection{
							{Title: "Details", Paragraphs: []Paragraph{{Content: "Deep prose."}}},
						},
					},
				},
			},
		},
	}

	got := Flatten([]*Document{doc})
	want := "## Intro\n\nIntro prose.\n\n### Background\n\nBackground prose.\n\n#### Details\n\nDeep prose."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFlatten_ChaptersBeforeSections(t *testing.T) {
	doc := &Document{
		Chapters: []*Chapter{
			{
				Title:      "Foundations",
				Paragraphs: []Paragraph{{Content: "Chapter preamble."}},
				Sections: []*Section{
					{Title: "History", Paragraphs: []Paragraph{{Content: "History prose."}}},
				},
			},
		},
	}

	got := Flatten([]*Document{doc})
	want := "# Foundations\n\nChapter preamble.\n\n## History\n\nHistory prose."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFlatten_TablesAppended(t *testing.T) {
	doc := &Document{
		Paragraphs: []Paragraph{{Content: "Body text."}},
		Tables: []Table{
			{Caption: "Scores", Headers: []string{"Name"}, Rows: [][]string{{"A"}}},
		},
	}

	got := Flatten([]*Document{doc})
	if !strings.HasPrefix(got, "Body text.\n\n") {
		t.Errorf("expected prose first, got %q", got)
	}
	if !strings.Contains(got, "Table: Scores") {
		t.Errorf("expected table rendering, got %q", got)
	}
	if strings.Index(got, "Body text.") > strings.Index(got, "Table: Scores") {
		t.Error("expected tables after paragraphs")
	}
}

func TestFlatten_MultipleDocumentsInOrder(t *testing.T) {
	docs := []*Document{
		{Paragraphs: []Paragraph{{Content: "First document."}}},
		nil,
		{Paragraphs: []Paragraph{{Content: "Second document."}}},
	}

	got := Flatten(docs)
	want := "First document.\n\nSecond document."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFlatten_Empty(t *testing.T) {
	if got := Flatten(nil); got != "" {
		t.Errorf("expected empty output for nil input, got %q", got)
	}
	if got := Flatten([]*Document{{}}); got != "" {
		t.Errorf("expected empty output for empty document, got %q", got)
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	doc := &Document{
		Sections: []*Section{
			{Title: "A", Paragraphs: []Paragraph{{Content: "alpha"}}},
			{Title: "B", Paragraphs: []Paragraph{{Content: "beta"}}},
		},
	}
	first := Flatten([]*Document{doc})
	second := Flatten([]*Document{doc})
	if first != second {
		t.Error("expected identical output across runs")
	}
}
