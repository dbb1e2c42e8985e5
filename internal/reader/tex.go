package reader

import (
	"io"

	"github.com/dgallion1/texgest/internal/latex"
)

// LaTeXReader handles .tex files through the structural parser.
type LaTeXReader struct {
	Parser *latex.Parser
}

func (p *LaTeXReader) Read(r io.Reader, filename string) (*latex.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.Parser.ParseText(string(src), filename), nil
}
