package reader

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/texgest/internal/latex"
)

// TextReader handles plain text files.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (*latex.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &latex.Document{
		Title:          titleFromFilename(filename),
		SourceDocument: filename,
	}

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			doc.Paragraphs = append(doc.Paragraphs, latex.Paragraph{Content: current.String()})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
