package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dwHou/Slidown/internal/converter"
	"github.com/dwHou/Slidown/internal/render"
)

// Worker converts queued documents. Each worker owns its renderer so jobs
// on different workers never share markdown engine state.
type Worker struct {
	renderer *render.Renderer
	log      *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{
		renderer: render.New(),
		log:      log,
	}
}

// IsMarkdownFilename reports whether filename has a markdown extension.
func IsMarkdownFilename(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Process runs the conversion for one job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError("shutdown before conversion started")
		job.SetStatus(StatusFailed, "queued")
		return
	}

	job.SetStatus(StatusConverting, "converting")

	conv, err := converter.New(job.Options, w.renderer)
	if err != nil {
		log.Error("invalid conversion options", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "converting")
		return
	}

	d, err := conv.Convert(string(job.Source()))
	if err != nil {
		if errors.Is(err, converter.ErrNoContent) {
			log.Warn("empty document")
		} else {
			log.Error("conversion failed", "error", err)
		}
		job.AddError(fmt.Sprintf("%s: %s", job.Filename, err))
		job.SetStatus(StatusFailed, "converting")
		return
	}

	job.SetResult(d)
	job.SetStatus(StatusCompleted, "done")
	log.Info("converted document",
		"slides", len(d.Slides),
		"nav_entries", len(d.Nav),
		"toc_entries", len(d.TOC),
	)
}
