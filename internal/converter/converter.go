// Package converter runs the full markdown-to-deck pipeline for one
// document: segment at heading boundaries, paginate oversized slides,
// number the result, extract the chapter index. The converter performs no
// I/O; the complete deck is computed before anything is returned.
package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dwHou/Slidown/internal/chapters"
	"github.com/dwHou/Slidown/internal/deck"
	"github.com/dwHou/Slidown/internal/paginate"
	"github.com/dwHou/Slidown/internal/segment"
)

// ErrNoContent reports a document with nothing to convert.
var ErrNoContent = errors.New("document has no content")

// SlideError localizes a failure to one slide of the source document.
type SlideError struct {
	Index int // Zero-based position in the segmented slide list.
	Title string
	Err   error
}

func (e *SlideError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("slide %d (%q): %v", e.Index, e.Title, e.Err)
	}
	return fmt.Sprintf("slide %d: %v", e.Index, e.Err)
}

func (e *SlideError) Unwrap() error { return e.Err }

// Renderer is the external collaborator that turns a markdown chunk into
// display markup. Pagination math operates on raw source lines; the
// renderer is consulted once per initial slide for the split gate and once
// per final chunk.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Converter converts documents under one fixed option set.
type Converter struct {
	opts   deck.Options
	render Renderer
}

func New(opts deck.Options, r Renderer) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Converter{opts: opts, render: r}, nil
}

// Convert produces the full deck for one document.
func (c *Converter) Convert(content string) (*deck.Deck, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	slides := segment.Segment(lines, c.opts.SplitLevel)
	if len(slides) == 0 {
		return nil, ErrNoContent
	}

	p := paginate.New(paginate.BudgetFor(c.opts), c.opts.ShowPageNumbers, c.render.Render)

	var finals []deck.FinalSlide
	for i, s := range slides {
		out, err := p.Paginate(s)
		if err != nil {
			return nil, &SlideError{Index: i, Title: s.Title, Err: err}
		}
		finals = append(finals, out...)
	}

	nav, toc := chapters.Extract(finals, c.opts.ChapterLevel)

	return &deck.Deck{
		Title:  deckTitle(slides),
		Slides: finals,
		Nav:    nav,
		TOC:    toc,
	}, nil
}

// deckTitle prefers the cover slide's heading, then the first titled slide.
func deckTitle(slides []deck.Slide) string {
	for _, s := range slides {
		if s.IsTitleSlide {
			return s.Title
		}
	}
	for _, s := range slides {
		if s.Title != "" {
			return s.Title
		}
	}
	return ""
}
