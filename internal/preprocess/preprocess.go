package preprocess

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/texgest/internal/bibtex"
	"github.com/dgallion1/texgest/internal/chunker"
	"github.com/dgallion1/texgest/internal/latex"
)

// Preprocessor wires the bibliography, structural parser, flattener, and
// chunking engine into one call producing index-ready chunks.
type Preprocessor struct {
	parser  *latex.Parser
	chunker *chunker.DataChunker
	log     *slog.Logger
}

func New(bib map[string]bibtex.Citation, ch *chunker.DataChunker, log *slog.Logger) *Preprocessor {
	if ch == nil {
		ch = chunker.New()
	}
	return &Preprocessor{
		parser:  latex.NewParser(bib, log),
		chunker: ch,
		log:     log,
	}
}

// PreprocessDocument parses, flattens, and chunks one LaTeX file. A parse
// failure propagates to the caller.
func (p *Preprocessor) PreprocessDocument(path string) ([]chunker.Chunk, error) {
	doc, err := p.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	text := latex.Flatten([]*latex.Document{doc})
	ctx := chunker.NewContext().
		ForDocument().
		WithSource(path).
		Build()
	return p.chunker.Chunk(text, ctx), nil
}

// PreprocessDocuments parses every file, flattens the collected documents
// once in input order, and chunks the result. Files that fail to parse
// are skipped with a log line so one bad input cannot sink the batch. An
// empty path list yields an empty chunk slice, never an error.
func (p *Preprocessor) PreprocessDocuments(paths []string) []chunker.Chunk {
	var docs []*latex.Document
	for _, path := range paths {
		doc, err := p.parser.ParseFile(path)
		if err != nil {
			p.log.Warn("skipping unparseable document", "path", path, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	text := latex.Flatten(docs)
	ctx := chunker.NewContext().ForDocument().Build()
	return p.chunker.Chunk(text, ctx)
}

// PreprocessFolder preprocesses every file in a directory as one batch.
func (p *Preprocessor) PreprocessFolder(dir string) ([]chunker.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document folder %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return p.PreprocessDocuments(paths), nil
}
