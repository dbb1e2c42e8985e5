package chunker

import (
	"strings"
	"time"
)

// Built-in chunk type tags.
const (
	TypeText     = "text"
	TypeDocument = "document"
	TypeEmail    = "email"
)

// Strategy is an interchangeable chunking algorithm, selected by the
// context's chunk type tag. Implementations must hold no per-call mutable
// state so a single instance can serve concurrent Chunk calls.
type Strategy interface {
	Chunk(text string, ctx Context) []Chunk
}

// TextStrategy is the standard character-window strategy for plain text.
type TextStrategy struct {
	ChunkSize   int
	OverlapSize int
}

func NewTextStrategy() *TextStrategy {
	return &TextStrategy{ChunkSize: 768, OverlapSize: 100}
}

func (s *TextStrategy) Chunk(text string, ctx Context) []Chunk {
	return slidingWindow(text, s.ChunkSize, s.OverlapSize, ctx)
}

// DocumentStrategy chunks flattened document text. It currently shares
// the sliding-window core; section-aware splitting can hook in here
// without touching the other strategies.
type DocumentStrategy struct {
	ChunkSize   int
	OverlapSize int
}

func NewDocumentStrategy() *DocumentStrategy {
	return &DocumentStrategy{ChunkSize: 768, OverlapSize: 100}
}

func (s *DocumentStrategy) Chunk(text string, ctx Context) []Chunk {
	return slidingWindow(text, s.ChunkSize, s.OverlapSize, ctx)
}

// EmailStrategy chunks email bodies with smaller windows.
type EmailStrategy struct {
	ChunkSize   int
	OverlapSize int
}

func NewEmailStrategy() *EmailStrategy {
	return &EmailStrategy{ChunkSize: 512, OverlapSize: 50}
}

func (s *EmailStrategy) Chunk(text string, ctx Context) []Chunk {
	return slidingWindow(text, s.ChunkSize, s.OverlapSize, ctx)
}

// slidingWindow is the core shared by all built-in strategies: fixed-size
// overlapping character windows over the text. Sizes and offsets count
// runes, not bytes, so a multibyte character is never split across two
// chunks. Empty or whitespace-only input yields no chunks. The advance
// rule
//
//	start = max(start+1, end-overlap)
//
// guarantees strictly positive progress even when the overlap is at least
// the chunk size, so the realized overlap can be smaller than configured.
// TotalChunks is written in a second pass once the count is known.
func slidingWindow(text string, chunkSize, overlapSize int, ctx Context) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	createdAt := ctx.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	runes := []rune(text)
	var chunks []Chunk
	start := 0
	chunkID := ctx.StartChunkID

	for start < len(runes) {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, Chunk{
			Text:     string(runes[start:end]),
			StartIdx: start,
			EndIdx:   end,
			Metadata: Metadata{
				ChunkID:        chunkID,
				ChunkSize:      end - start,
				SourceDocument: ctx.SourceDocument,
				PageNumber:     ctx.PageNumber,
				SectionTitle:   ctx.SectionTitle,
				ChunkType:      ctx.ChunkType,
				CreatedAt:      createdAt,
				EmailSubject:   ctx.EmailSubject,
				EmailSender:    ctx.EmailSender,
				EmailRecipient: ctx.EmailRecipient,
				EmailDate:      ctx.EmailDate,
				EmailID:        ctx.EmailID,
				EmailFolder:    ctx.EmailFolder,
			},
			ChunkType:      ctx.ChunkType,
			SourceDocument: ctx.SourceDocument,
		})
		chunkID++

		if end >= len(runes) {
			break
		}
		next := end - overlapSize
		if next < start+1 {
			next = start + 1
		}
		start = next
	}

	for i := range chunks {
		chunks[i].Metadata.TotalChunks = len(chunks)
	}

	return chunks
}
