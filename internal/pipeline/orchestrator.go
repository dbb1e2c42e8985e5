package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/texgest/internal/config"
	"github.com/dgallion1/texgest/internal/reader"
	"github.com/dgallion1/texgest/internal/vectorstore"
)

// Orchestrator manages the document ingestion pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	readers *reader.Registry
	store   *vectorstore.Store
	log     *slog.Logger
	cfg     config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, readers *reader.Registry, store *vectorstore.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		readers: readers,
		store:   store,
		log:     log,
		cfg:     cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.readers, o.store, o.log, o.cfg.DefaultChunkSize, o.cfg.DefaultChunkOverlap)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// VectorStore returns the store for direct use by API handlers.
func (o *Orchestrator) VectorStore() *vectorstore.Store {
	return o.store
}

// NewJob builds a queued job for an uploaded file.
func NewJob(filename, title string, data []byte, chunkSize, chunkOverlap int) *Job {
	now := time.Now()
	job := &Job{
		ID:           generateULID(),
		DocID:        ContentHashHex(data)[:16],
		Status:       StatusQueued,
		Phase:        "queued",
		Filename:     filename,
		Title:        title,
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		ContentHash:  ContentHashHex(data),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	job.SetFileData(data)
	return job
}
