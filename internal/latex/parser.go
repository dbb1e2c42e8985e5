package latex

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/dgallion1/texgest/internal/bibtex"
)

// Parser converts raw LaTeX text into a Document tree. The bibliography
// map is read-only after construction, so a single Parser can serve many
// concurrent parses.
type Parser struct {
	bib map[string]bibtex.Citation
	log *slog.Logger
}

func NewParser(bib map[string]bibtex.Citation, log *slog.Logger) *Parser {
	if bib == nil {
		bib = map[string]bibtex.Citation{}
	}
	return &Parser{bib: bib, log: log}
}

var (
	titleRe  = regexp.MustCompile(`\\title\{([^}]+)\}`)
	authorRe = regexp.MustCompile(`\\author\{([^}]+)\}`)
	dateRe   = regexp.MustCompile(`\\date\{([^}]+)\}`)
	doiRe    = regexp.MustCompile(`\\doi\{([^}]+)\}`)
	yearRe   = regexp.MustCompile(`\b(\d{4})\b`)

	headingRe = regexp.MustCompile(`\\(chapter|section|subsection|subsubsection)\*?\{([^}]+)\}`)

	beginDocRe = regexp.MustCompile(`\\begin\{document\}`)
	endDocRe   = regexp.MustCompile(`\\end\{document\}`)

	tableEnvRe  = regexp.MustCompile(`(?s)\\begin\{table\}.*?\\end\{table\}`)
	figureEnvRe = regexp.MustCompile(`(?s)\\begin\{figure\}.*?\\end\{figure\}`)
	tabularRe   = regexp.MustCompile(`(?s)\\begin\{tabular\}(.*?)\\end\{tabular\}`)
	colSpecRe   = regexp.MustCompile(`^\s*\{[^}]*\}`)

	captionRe  = regexp.MustCompile(`\\caption\{([^}]+)\}`)
	labelRe    = regexp.MustCompile(`\\label\{([^}]+)\}`)
	graphicsRe = regexp.MustCompile(`\\includegraphics\{([^}]+)\}`)

	captionCmdRe  = regexp.MustCompile(`\\caption\{[^}]*\}`)
	labelCmdRe    = regexp.MustCompile(`\\label\{[^}]*\}`)
	graphicsCmdRe = regexp.MustCompile(`\\includegraphics\{[^}]*\}`)

	blankRunRe = regexp.MustCompile(`\n\s*\n\s*\n`)
	paraSepRe  = regexp.MustCompile(`\n\s*\n|\s*\\par\b\s*`)

	citeRe = regexp.MustCompile(`\\cite(p|t|author|year)?\{([^}]+)\}`)
)

// ParseFile reads and parses one LaTeX file. An unreadable file surfaces
// as a document-scoped error carrying the failing path.
func (p *Parser) ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.log.Error("error parsing document", "path", path, "error", err)
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return p.ParseText(string(data), path), nil
}

// ParseText parses LaTeX text into a Document. Malformed substructures
// (a table with no rows, a chapter block with no title tag) are dropped
// rather than failing the whole document.
//
// Order matters: tables and figures are pulled from the raw text before
// their environments are removed, and all structural splitting runs on
// the cleaned text only.
func (p *Parser) ParseText(text, source string) *Document {
	doc := &Document{
		Title:          extractTag(titleRe, text, "Untitled"),
		Author:         extractTag(authorRe, text, "Unknown Author"),
		Year:           extractYear(text),
		DOI:            extractTag(doiRe, text, ""),
		SourceDocument: source,
		PageReference:  "1",
	}

	doc.Tables = parseTables(text)
	doc.Figures = parseFigures(text)

	cleaned := stripDocumentWrapper(removeFloatEnvironments(text))

	doc.Chapters = p.parseChapters(cleaned)
	if len(doc.Chapters) == 0 {
		doc.Sections = p.parseSections(cleaned)
	}
	if len(doc.Chapters) == 0 && len(doc.Sections) == 0 {
		doc.Paragraphs = p.parseParagraphs(cleaned)
	}

	return doc
}

func extractTag(re *regexp.Regexp, text, fallback string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

// extractYear narrows the \date field down to an embedded 4-digit token.
func extractYear(text string) string {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return "Unknown Year"
	}
	if y := yearRe.FindStringSubmatch(m[1]); y != nil {
		return y[1]
	}
	return strings.TrimSpace(m[1])
}

// removeFloatEnvironments strips table/figure environments and orphaned
// caption/label/includegraphics tags, then collapses blank-line runs.
func removeFloatEnvironments(text string) string {
	text = tableEnvRe.ReplaceAllString(text, "")
	text = figureEnvRe.ReplaceAllString(text, "")
	text = captionCmdRe.ReplaceAllString(text, "")
	text = labelCmdRe.ReplaceAllString(text, "")
	text = graphicsCmdRe.ReplaceAllString(text, "")
	return blankRunRe.ReplaceAllString(text, "\n\n")
}

// heading is one structural command boundary found in the text.
type heading struct {
	level      int // 0 chapter, 1 section, 2 subsection, 3 subsubsection
	title      string
	start, end int // span of the command itself
}

var headingLevels = map[string]int{
	"chapter":       0,
	"section":       1,
	"subsection":    2,
	"subsubsection": 3,
}

// scanHeadings tokenizes heading commands so each can be paired with the
// prose that follows it, instead of relying on split-with-capture-group
// semantics.
func scanHeadings(text string) []heading {
	var out []heading
	for _, m := range headingRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		out = append(out, heading{
			level: headingLevels[name],
			title: strings.TrimSpace(text[m[4]:m[5]]),
			start: m[0],
			end:   m[1],
		})
	}
	return out
}

// parseChapters splits the text into chapter blocks. Chapters are a flat
// construct: each runs from its \chapter command to the next one. Prose
// between the chapter command and its first section becomes chapter-level
// paragraphs; the rest of the block is parsed into sections.
func (p *Parser) parseChapters(text string) []*Chapter {
	headings := scanHeadings(text)

	var chapters []*Chapter
	for i, h := range headings {
		if h.level != 0 {
			continue
		}

		blockEnd := len(text)
		var inner []heading
		for _, next := range headings[i+1:] {
			if next.level == 0 {
				blockEnd = next.start
				break
			}
			inner = append(inner, next)
		}

		preambleEnd := blockEnd
		if len(inner) > 0 {
			preambleEnd = inner[0].start
		}

		chapters = append(chapters, &Chapter{
			Title:      h.title,
			Paragraphs: p.parseParagraphs(text[h.end:preambleEnd]),
			Sections:   p.buildSections(text, inner, blockEnd),
		})
	}
	return chapters
}

// parseSections parses document-level sections from text with no chapters.
func (p *Parser) parseSections(text string) []*Section {
	headings := scanHeadings(text)
	var kept []heading
	for _, h := range headings {
		if h.level > 0 {
			kept = append(kept, h)
		}
	}
	return p.buildSections(text, kept, len(text))
}

// stripDocumentWrapper removes the \begin{document}/\end{document}
// markers, keeping the body between them. Runs once on the cleaned text
// so the markers never reach chapter, section, or paragraph prose.
func stripDocumentWrapper(text string) string {
	text = beginDocRe.ReplaceAllString(text, "")
	return endDocRe.ReplaceAllString(text, "")
}

// buildSections groups heading tokens with the prose that follows each,
// nesting subsections and subsubsections under their parents. Prose
// before the first heading and subsection blocks with no enclosing
// section are discarded.
func (p *Parser) buildSections(text string, headings []heading, limit int) []*Section {
	var sections []*Section
	var curSection *Section
	var curSubsection *Subsection

	for i, h := range headings {
		bodyEnd := limit
		if i+1 < len(headings) && headings[i+1].start < limit {
			bodyEnd = headings[i+1].start
		}
		if h.end > bodyEnd {
			continue
		}
		paras := p.parseParagraphs(text[h.end:bodyEnd])

		switch h.level {
		case 1:
			curSection = &Section{Title: h.title, Paragraphs: paras}
			curSubsection = nil
			sections = append(sections, curSection)
		case 2:
			if curSection == nil {
				continue
			}
			curSubsection = &Subsection{Title: h.title, Paragraphs: paras}
			curSection.Subsections = append(curSection.Subsections, curSubsection)
		case 3:
			if curSubsection == nil {
				continue
			}
			curSubsection.Subsubsections = append(curSubsection.Subsubsections,
				&Subsubsection{Title: h.title, Paragraphs: paras})
		}
	}
	return sections
}

// parseParagraphs splits block text on blank lines or \par. Blocks that
// are empty after trimming, or that still begin with a command token, are
// dropped as non-prose. Citation commands are resolved before storing.
func (p *Parser) parseParagraphs(text string) []Paragraph {
	var paragraphs []Paragraph
	for _, block := range paraSepRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" || strings.HasPrefix(block, "\\") {
			continue
		}
		content, citations := p.resolveCitations(block)
		if strings.TrimSpace(content) == "" {
			continue
		}
		paragraphs = append(paragraphs, Paragraph{Content: content, Citations: citations})
	}
	return paragraphs
}

// resolveCitations replaces the five citation command variants with their
// human-readable renderings in a single forward pass, collecting resolved
// Citations in text order.
func (p *Parser) resolveCitations(text string) (string, []bibtex.Citation) {
	matches := citeRe.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text, nil
	}

	var out strings.Builder
	var citations []bibtex.Citation
	last := 0
	for _, m := range matches {
		variant := ""
		if m[2] >= 0 {
			variant = text[m[2]:m[3]]
		}
		key := text[m[4]:m[5]]
		citation := p.lookupCitation(key)
		citations = append(citations, citation)

		out.WriteString(text[last:m[0]])
		out.WriteString(renderCitation(citation, variant))
		last = m[1]
	}
	out.WriteString(text[last:])
	return out.String(), citations
}

// lookupCitation resolves a key against the bibliography, synthesizing a
// placeholder for unresolved keys.
func (p *Parser) lookupCitation(key string) bibtex.Citation {
	if c, ok := p.bib[key]; ok {
		return c
	}
	return bibtex.Citation{
		Author: "Unknown",
		Year:   "Unknown",
		Title:  "Unknown",
		Label:  key,
		Hash:   bibtex.KeyHash(key),
	}
}

func renderCitation(c bibtex.Citation, variant string) string {
	switch variant {
	case "author":
		return c.Author
	case "year":
		return c.Year
	default: // cite, citep, citet
		return "[" + c.Author + ", " + c.Year + ", " + c.Label + "]"
	}
}

// parseTables extracts table environments from the raw text. Nested table
// environments are not supported: spans are first-match, non-overlapping.
func parseTables(text string) []Table {
	var tables []Table
	for _, span := range tableEnvRe.FindAllString(text, -1) {
		if t, ok := parseTable(span); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// parseTable parses one table environment. A table with neither headers
// nor rows is discarded.
func parseTable(span string) (Table, bool) {
	headers, rows := parseTabular(span)
	if len(headers) == 0 && len(rows) == 0 {
		return Table{}, false
	}
	return Table{
		Caption: extractTag(captionRe, span, ""),
		Label:   extractTag(labelRe, span, ""),
		Headers: headers,
		Rows:    rows,
	}, true
}

// parseTabular pulls the inner tabular span apart: strip the column spec,
// split rows on \\ and cells on &, drop \hline decorations. The first
// parsed row becomes the headers.
func parseTabular(span string) ([]string, [][]string) {
	m := tabularRe.FindStringSubmatch(span)
	if m == nil {
		return nil, nil
	}
	body := colSpecRe.ReplaceAllString(strings.TrimSpace(m[1]), "")

	var rows [][]string
	for _, line := range strings.Split(body, `\\`) {
		if !strings.Contains(line, "&") {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(line, "&") {
			cell = strings.TrimSpace(strings.ReplaceAll(cell, `\hline`, ""))
			cell = strings.TrimSpace(cell)
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], rows[1:]
}

// parseFigures extracts figure environments. Unlike tables, a figure is
// always materialized, even with empty fields.
func parseFigures(text string) []Figure {
	var figures []Figure
	for _, span := range figureEnvRe.FindAllString(text, -1) {
		figures = append(figures, Figure{
			Caption: extractTag(captionRe, span, ""),
			Label:   extractTag(labelRe, span, ""),
			Image:   extractTag(graphicsRe, span, ""),
		})
	}
	return figures
}
