package latex

import (
	"strings"

	"github.com/dgallion1/texgest/internal/bibtex"
)

// Document is the root of the parse tree for one input file.
// Every contained Paragraph/Table/Figure belongs to exactly one Document.
type Document struct {
	Title          string
	Author         string
	Year           string
	DOI            string
	SourceDocument string
	PageReference  string
	Chapters       []*Chapter
	Sections       []*Section
	Paragraphs     []Paragraph
	Tables         []Table
	Figures        []Figure
}

// Chapter is a flat construct layered on top of section text; chapters
// never nest.
type Chapter struct {
	Title      string
	Label      string
	Number     string
	Paragraphs []Paragraph
	Sections   []*Section
}

type Section struct {
	Title       string
	Label       string
	Number      string
	Paragraphs  []Paragraph
	Subsections []*Subsection
}

type Subsection struct {
	Title          string
	Label          string
	Number         string
	Paragraphs     []Paragraph
	Subsubsections []*Subsubsection
}

type Subsubsection struct {
	Title      string
	Label      string
	Number     string
	Paragraphs []Paragraph
}

// Paragraph is prose with the citations discovered inside it. Content is
// the command-substituted text; raw citation markup never survives parsing.
type Paragraph struct {
	Content   string
	Citations []bibtex.Citation
}

type Table struct {
	Caption   string
	Label     string
	Headers   []string
	Rows      [][]string
	Footnotes []string
}

type Figure struct {
	Caption string
	Label   string
	Image   string
}

// Markdown renders the table as a Markdown table.
func (t Table) Markdown() string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return "**Table: " + t.Caption + "**\n\n"
	}

	var lines []string
	if t.Caption != "" {
		lines = append(lines, "**Table: "+t.Caption+"**\n")
	}
	if len(t.Headers) > 0 {
		lines = append(lines, "| "+strings.Join(t.Headers, " | ")+" |")
		seps := make([]string, len(t.Headers))
		for i := range seps {
			seps[i] = "---"
		}
		lines = append(lines, "|"+strings.Join(seps, "|")+"|")
	}
	for _, row := range t.Rows {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return strings.Join(lines, "\n") + "\n"
}

// PlainText renders the table as a plain text table, used by the flattener.
func (t Table) PlainText() string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return "Table: " + t.Caption + "\n\n"
	}

	var lines []string
	if t.Caption != "" {
		lines = append(lines, "Table: "+t.Caption)
	}
	if len(t.Headers) > 0 {
		lines = append(lines, strings.Join(t.Headers, " | "))
		rules := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			rules[i] = strings.Repeat("-", len(h))
		}
		lines = append(lines, strings.Join(rules, " | "))
	}
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n") + "\n"
}
