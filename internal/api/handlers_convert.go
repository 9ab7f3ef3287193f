package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dwHou/Slidown/internal/converter"
	"github.com/dwHou/Slidown/internal/deck"
)

// convertRequest is a synchronous conversion. Option fields are pointers
// so absent fields fall back to the server's configured defaults.
type convertRequest struct {
	Content string `json:"content"`

	SplitLevel       *int     `json:"split_level,omitempty"`
	MaxContentLength *int     `json:"max_content_length,omitempty"`
	MaxElements      *int     `json:"max_elements,omitempty"`
	ShowPageNumbers  *bool    `json:"show_page_numbers,omitempty"`
	ViewportHeight   *int     `json:"viewport_height,omitempty"`
	ContentThreshold *float64 `json:"content_threshold,omitempty"`
	ChapterLevel     *int     `json:"chapter_level,omitempty"`
}

func (req *convertRequest) options(defaults deck.Options) deck.Options {
	opts := defaults
	if req.SplitLevel != nil {
		opts.SplitLevel = *req.SplitLevel
	}
	if req.MaxContentLength != nil {
		opts.MaxContentLength = *req.MaxContentLength
	}
	if req.MaxElements != nil {
		opts.MaxElements = *req.MaxElements
	}
	if req.ShowPageNumbers != nil {
		opts.ShowPageNumbers = *req.ShowPageNumbers
	}
	if req.ViewportHeight != nil {
		opts.ViewportHeight = *req.ViewportHeight
	}
	if req.ContentThreshold != nil {
		opts.ContentThreshold = *req.ContentThreshold
	}
	if req.ChapterLevel != nil {
		opts.ChapterLevel = *req.ChapterLevel
	}
	return opts
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}

	conv, err := converter.New(req.options(s.cfg.Convert), s.renderer)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := conv.Convert(req.Content)
	if err != nil {
		if errors.Is(err, converter.ErrNoContent) {
			jsonError(w, "document has no content", http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("conversion failed", "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
