package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dwHou/Slidown/internal/deck"
	"github.com/dwHou/Slidown/internal/pipeline"
)

func (s *Server) handleCreateJobs(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

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

	opts := s.formOptions(r)
	if err := opts.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !pipeline.IsMarkdownFilename(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		now := time.Now()
		job := &pipeline.Job{
			ID:        pipeline.NewJobID(),
			Status:    pipeline.StatusQueued,
			Phase:     "queued",
			Filename:  filename,
			Options:   opts,
			CreatedAt: now,
			UpdatedAt: now,
		}
		job.SetSource(data)

		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"status":   job.Status,
			"poll_url": fmt.Sprintf("/v1/jobs/%s", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleJobDeck(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	d := job.Result()
	if d == nil {
		snap := job.Snapshot()
		jsonError(w, fmt.Sprintf("job is %s, no deck available", snap.Status), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// formOptions applies per-request option overrides from form values.
func (s *Server) formOptions(r *http.Request) deck.Options {
	opts := s.cfg.Convert
	if v := r.FormValue("split_level"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.SplitLevel = n
		}
	}
	if v := r.FormValue("max_content_length"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxContentLength = n
		}
	}
	if v := r.FormValue("max_elements"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxElements = n
		}
	}
	if v := r.FormValue("show_page_numbers"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.ShowPageNumbers = b
		}
	}
	if v := r.FormValue("viewport_height"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.ViewportHeight = n
		}
	}
	if v := r.FormValue("content_threshold"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.ContentThreshold = f
		}
	}
	if v := r.FormValue("chapter_level"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.ChapterLevel = n
		}
	}
	return opts
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
