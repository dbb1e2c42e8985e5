package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/texgest/internal/latex"
)

// Reader converts raw document bytes into a parsed Document.
type Reader interface {
	Read(r io.Reader, filename string) (*latex.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
// LaTeX is the primary format; the rest feed the same flattener and
// chunking engine as plain structured prose.
var SupportedExtensions = map[string]bool{
	".tex":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".csv":      true,
}

// Registry resolves readers by file extension. The LaTeX reader carries
// the shared bibliography-aware parser.
type Registry struct {
	latex       *latex.Parser
	pdfFallback bool
}

func NewRegistry(parser *latex.Parser, pdfFallback bool) *Registry {
	return &Registry{latex: parser, pdfFallback: pdfFallback}
}

// ForFile returns the appropriate reader for a filename.
func (g *Registry) ForFile(filename string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tex":
		return &LaTeXReader{Parser: g.latex}, nil
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{FallbackPdftotext: g.pdfFallback}, nil
	case ".docx":
		return &DOCXReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// docBuilder assembles a Document from a linear stream of headings and
// text blocks, used by the non-LaTeX readers. Heading level 1 opens a
// Section, 2 a Subsection, 3 and deeper a Subsubsection; text lands in
// the innermost open container, or as a standalone paragraph when no
// heading has been seen yet.
type docBuilder struct {
	doc    *latex.Document
	sec    *latex.Section
	sub    *latex.Subsection
	subsub *latex.Subsubsection
}

func newDocBuilder(title, source string) *docBuilder {
	return &docBuilder{doc: &latex.Document{Title: title, SourceDocument: source}}
}

func (b *docBuilder) heading(level int, title string) {
	switch {
	case level <= 1 || b.sec == nil:
		b.sec = &latex.Section{Title: title}
		b.sub = nil
		b.subsub = nil
		b.doc.Sections = append(b.doc.Sections, b.sec)
	case level == 2 || b.sub == nil:
		b.sub = &latex.Subsection{Title: title}
		b.subsub = nil
		b.sec.Subsections = append(b.sec.Subsections, b.sub)
	default:
		b.subsub = &latex.Subsubsection{Title: title}
		b.sub.Subsubsections = append(b.sub.Subsubsections, b.subsub)
	}
}

func (b *docBuilder) text(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	para := latex.Paragraph{Content: t}
	switch {
	case b.subsub != nil:
		b.subsub.Paragraphs = append(b.subsub.Paragraphs, para)
	case b.sub != nil:
		b.sub.Paragraphs = append(b.sub.Paragraphs, para)
	case b.sec != nil:
		b.sec.Paragraphs = append(b.sec.Paragraphs, para)
	default:
		b.doc.Paragraphs = append(b.doc.Paragraphs, para)
	}
}

func (b *docBuilder) build() *latex.Document {
	return b.doc
}

func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
