package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/texgest/internal/pipeline"
	"github.com/dgallion1/texgest/internal/reader"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	job, status, err := s.buildJob(r, file, header.Filename)
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, job.Snapshot())
}

// handleBatchIngest accepts multiple files in one multipart form and
// queues a job per file. Unsupported or oversized files are reported in
// the response without blocking the rest of the batch.
func (s *Server) handleBatchIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*4+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	type batchItem struct {
		Filename string                `json:"filename"`
		JobID    string                `json:"job_id,omitempty"`
		Error    string                `json:"error,omitempty"`
		Job      *pipeline.JobSnapshot `json:"job,omitempty"`
	}

	var items []batchItem
	for _, header := range files {
		item := batchItem{Filename: header.Filename}

		f, err := header.Open()
		if err != nil {
			item.Error = "open: " + err.Error()
			items = append(items, item)
			continue
		}
		job, _, err := s.buildJob(r, f, header.Filename)
		f.Close()
		if err != nil {
			item.Error = err.Error()
			items = append(items, item)
			continue
		}
		if err := s.orchestrator.Submit(job); err != nil {
			item.Error = err.Error()
			items = append(items, item)
			continue
		}

		snap := job.Snapshot()
		item.JobID = snap.ID
		item.Job = &snap
		items = append(items, item)
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": items})
}

func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// buildJob validates one uploaded file and turns it into a queued job.
func (s *Server) buildJob(r *http.Request, file multipart.File, rawName string) (*pipeline.Job, int, error) {
	filename := sanitizeFilename(rawName)
	if !reader.IsSupportedExtension(filename) {
		return nil, http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	chunkSize := formInt(r, "chunk_size")
	chunkOverlap := formInt(r, "overlap")

	return pipeline.NewJob(filename, r.FormValue("title"), data, chunkSize, chunkOverlap), 0, nil
}

func formInt(r *http.Request, key string) int {
	if v := r.FormValue(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// sanitizeFilename strips any path components from an uploaded filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
