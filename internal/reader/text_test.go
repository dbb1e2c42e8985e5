package reader

import (
	"strings"
	"testing"
)

func TestTextReader_ParagraphSplitting(t *testing.T) {
	input := `First paragraph line one.
First paragraph line two.

Second paragraph.


Third paragraph.`

	doc, err := (&TextReader{}).Read(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.SourceDocument != "notes.txt" {
		t.Errorf("expected source %q, got %q", "notes.txt", doc.SourceDocument)
	}
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(doc.Paragraphs))
	}
	if doc.Paragraphs[0].Content != "First paragraph line one.\nFirst paragraph line two." {
		t.Errorf("unexpected first paragraph: %q", doc.Paragraphs[0].Content)
	}
	if doc.Paragraphs[1].Content != "Second paragraph." {
		t.Errorf("unexpected second paragraph: %q", doc.Paragraphs[1].Content)
	}
}

func TestTextReader_EmptyInput(t *testing.T) {
	doc, err := (&TextReader{}).Read(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Paragraphs) != 0 {
		t.Errorf("expected 0 paragraphs, got %d", len(doc.Paragraphs))
	}
}

func TestRegistry_ForFile(t *testing.T) {
	g := NewRegistry(nil, false)

	cases := []struct {
		filename string
		wantErr  bool
	}{
		{"paper.tex", false},
		{"notes.txt", false},
		{"readme.md", false},
		{"readme.markdown", false},
		{"page.html", false},
		{"page.htm", false},
		{"scan.pdf", false},
		{"report.docx", false},
		{"data.csv", false},
		{"REPORT.DOCX", false},
		{"archive.zip", true},
		{"noextension", true},
	}
	for _, tc := range cases {
		_, err := g.ForFile(tc.filename)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.filename)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.filename, err)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("paper.tex") {
		t.Error("expected .tex to be supported")
	}
	if !IsSupportedExtension("PAPER.TEX") {
		t.Error("expected extension check to be case-insensitive")
	}
	if IsSupportedExtension("image.png") {
		t.Error("expected .png to be unsupported")
	}
}
