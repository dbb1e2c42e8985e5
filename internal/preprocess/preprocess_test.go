package preprocess

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/texgest/internal/chunker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const samplePaper = `\title{Sample Paper}
\author{Test Author}
\begin{document}
\section{Introduction}
This paper studies something specific and interesting.

It builds on a body of earlier work in the area.
\section{Conclusion}
The approach works.
\end{document}`

func TestPreprocessDocument_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "paper.tex", samplePaper)

	// Small windows so even a short paper produces overlapping chunks.
	ch := chunker.NewWithDefault(&chunker.DocumentStrategy{ChunkSize: 60, OverlapSize: 15})
	ch.RegisterStrategy(chunker.TypeDocument, &chunker.DocumentStrategy{ChunkSize: 60, OverlapSize: 15})
	p := New(nil, ch, discardLogger())

	chunks, err := p.PreprocessDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	if !strings.HasPrefix(chunks[0].Text, "## Introduction") {
		t.Errorf("expected flattened text to start with heading, got %q", chunks[0].Text)
	}
	for i, c := range chunks {
		if c.Metadata.SourceDocument != path {
			t.Errorf("chunk %d: expected source %q, got %q", i, path, c.Metadata.SourceDocument)
		}
		if c.ChunkType != chunker.TypeDocument {
			t.Errorf("chunk %d: expected type %q, got %q", i, chunker.TypeDocument, c.ChunkType)
		}
		if c.Metadata.TotalChunks != len(chunks) {
			t.Errorf("chunk %d: expected total %d, got %d", i, len(chunks), c.Metadata.TotalChunks)
		}
	}

	// Adjacent chunks share the configured 15-char overlap.
	for i := 0; i < len(chunks)-1; i++ {
		if got := chunks[i].EndIdx - chunks[i+1].StartIdx; got != 15 {
			t.Errorf("chunks %d/%d: expected overlap 15, got %d", i, i+1, got)
		}
	}
}

func TestPreprocessDocument_ParseErrorPropagates(t *testing.T) {
	p := New(nil, nil, discardLogger())
	_, err := p.PreprocessDocument("/nonexistent/paper.tex")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPreprocessDocuments_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.tex", samplePaper)

	p := New(nil, nil, discardLogger())
	chunks := p.PreprocessDocuments([]string{good, filepath.Join(dir, "missing.tex")})

	if len(chunks) == 0 {
		t.Fatal("expected chunks from the readable file")
	}
	if !strings.Contains(chunks[0].Text, "Introduction") {
		t.Errorf("expected surviving document content, got %q", chunks[0].Text)
	}
}

func TestPreprocessDocuments_EmptyInput(t *testing.T) {
	p := New(nil, nil, discardLogger())
	if chunks := p.PreprocessDocuments(nil); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty path list, got %d", len(chunks))
	}
}

func TestPreprocessFolder(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.tex", `\section{Alpha}
Alpha body text.`)
	writeDoc(t, dir, "b.tex", `\section{Beta}
Beta body text.`)
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := New(nil, nil, discardLogger())
	chunks, err := p.PreprocessFolder(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks from folder")
	}

	joined := ""
	for _, c := range chunks {
		joined += c.Text
	}
	if !strings.Contains(joined, "Alpha body text.") || !strings.Contains(joined, "Beta body text.") {
		t.Errorf("expected both documents in output, got %q", joined)
	}
}

func TestPreprocessFolder_MissingDir(t *testing.T) {
	p := New(nil, nil, discardLogger())
	_, err := p.PreprocessFolder("/nonexistent/docs")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
