package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/texgest/internal/chunker"
	"github.com/dgallion1/texgest/internal/latex"
	"github.com/dgallion1/texgest/internal/reader"
	"github.com/dgallion1/texgest/internal/vectorstore"
)

// Worker processes one ingestion job at a time: parse the uploaded file,
// flatten it, chunk the text, and push the batch into the vector store.
type Worker struct {
	readers *reader.Registry
	store   *vectorstore.Store
	log     *slog.Logger

	defaultChunkSize    int
	defaultChunkOverlap int
}

func NewWorker(readers *reader.Registry, store *vectorstore.Store, log *slog.Logger, chunkSize, chunkOverlap int) *Worker {
	return &Worker{
		readers:             readers,
		store:               store,
		log:                 log,
		defaultChunkSize:    chunkSize,
		defaultChunkOverlap: chunkOverlap,
	}
}

// Process runs the full pipeline for one job. Failures mark the job
// failed with the error recorded; they never panic the worker loop.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusParsing, "parsing document")
	doc, err := w.parse(job)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parse_error")
		return
	}
	if job.Title == "" {
		job.Title = doc.Title
	}

	job.SetStatus(StatusChunking, "chunking document")
	chunks := w.chunk(doc, job)
	job.SetChunks(chunks)
	job.SetTotalChunks(len(chunks))
	if len(chunks) == 0 {
		log.Info("document produced no chunks")
		job.SetStatus(StatusCompleted, "empty_document")
		return
	}

	job.SetStatus(StatusStoring, "storing chunks")
	ids, err := w.store.StoreChunks(ctx, chunks)
	job.AddChunksStored(len(ids))
	if err != nil {
		log.Error("store failed", "error", err, "stored", len(ids))
		job.AddError(err.Error())
		if len(ids) > 0 {
			job.SetStatus(StatusPartial, "store_error")
		} else {
			job.SetStatus(StatusFailed, "store_error")
		}
		return
	}

	log.Info("job completed", "chunks", len(chunks))
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) parse(job *Job) (*latex.Document, error) {
	rd, err := w.readers.ForFile(job.Filename)
	if err != nil {
		return nil, err
	}
	doc, err := rd.Read(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", job.Filename, err)
	}
	return doc, nil
}

func (w *Worker) chunk(doc *latex.Document, job *Job) []chunker.Chunk {
	text := latex.Flatten([]*latex.Document{doc})

	size := job.ChunkSize
	if size <= 0 {
		size = w.defaultChunkSize
	}
	overlap := job.ChunkOverlap
	if overlap <= 0 {
		overlap = w.defaultChunkOverlap
	}

	engine := chunker.NewWithDefault(&chunker.DocumentStrategy{
		ChunkSize:   size,
		OverlapSize: overlap,
	})
	engine.RegisterStrategy(chunker.TypeDocument, &chunker.DocumentStrategy{
		ChunkSize:   size,
		OverlapSize: overlap,
	})

	ctx := chunker.NewContext().
		ForDocument().
		WithSource(job.Filename).
		WithSection(doc.Title).
		Build()
	return engine.Chunk(text, ctx)
}
