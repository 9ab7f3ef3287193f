// Package deck defines the value types shared by every stage of the
// markdown-to-slides pipeline. All types are derived data: constructed by
// one stage, read by the next, never mutated after that.
package deck

import "fmt"

// Options controls segmentation and pagination for one conversion.
type Options struct {
	SplitLevel       int     // Heading level that starts a new slide (1-6).
	MaxContentLength int     // Maximum plain-text characters per slide.
	MaxElements      int     // Maximum block elements per slide.
	ShowPageNumbers  bool    // Suffix split-slide titles with " (i/N)".
	ViewportHeight   int     // Viewport height in pixels.
	ContentThreshold float64 // Usable fraction of the viewport, in (0,1].
	ChapterLevel     int     // Deepest heading level shown in the nav bar (1-6).
}

// DefaultOptions returns the conversion defaults.
func DefaultOptions() Options {
	return Options{
		SplitLevel:       2,
		MaxContentLength: 800,
		MaxElements:      15,
		ShowPageNumbers:  false,
		ViewportHeight:   900,
		ContentThreshold: 0.8,
		ChapterLevel:     3,
	}
}

// Validate rejects out-of-range settings before any segmentation runs.
func (o Options) Validate() error {
	if o.SplitLevel < 1 || o.SplitLevel > 6 {
		return fmt.Errorf("split level must be between 1 and 6, got %d", o.SplitLevel)
	}
	if o.MaxContentLength <= 0 {
		return fmt.Errorf("max content length must be positive, got %d", o.MaxContentLength)
	}
	if o.MaxElements <= 0 {
		return fmt.Errorf("max elements must be positive, got %d", o.MaxElements)
	}
	if o.ViewportHeight <= 0 {
		return fmt.Errorf("viewport height must be positive, got %d", o.ViewportHeight)
	}
	if o.ContentThreshold <= 0 || o.ContentThreshold > 1 {
		return fmt.Errorf("content threshold must be in (0,1], got %g", o.ContentThreshold)
	}
	if o.ChapterLevel < 1 || o.ChapterLevel > 6 {
		return fmt.Errorf("chapter level must be between 1 and 6, got %d", o.ChapterLevel)
	}
	return nil
}

// MaxHeightPx is the per-slide height budget derived from the viewport.
func (o Options) MaxHeightPx() int {
	return int(float64(o.ViewportHeight) * o.ContentThreshold)
}

// Slide is one screen's worth of raw content prior to size-based splitting.
type Slide struct {
	Title        string   // Heading text, empty if the slide has no heading.
	RawLines     []string // Source lines, in document order.
	IsTitleSlide bool     // First top-level heading, rendered as a cover.
}

// FinalSlide is a slide as actually emitted, after pagination and rendering.
// PageNumber and TotalPages are set only on slides produced by splitting;
// such slides share an OriginalTitle and carry contiguous page numbers.
type FinalSlide struct {
	Title         string   `json:"title,omitempty"`
	Content       string   `json:"content"`
	IsTitleSlide  bool     `json:"is_title_slide,omitempty"`
	RawLines      []string `json:"-"`
	OriginalTitle string   `json:"original_title,omitempty"`
	PageNumber    int      `json:"page_number,omitempty"`
	TotalPages    int      `json:"total_pages,omitempty"`
}

// ChapterEntry is one heading in the navigation index.
type ChapterEntry struct {
	Title       string `json:"title"`
	SlideNumber int    `json:"slide_number"` // 1-based position in the final slide list.
	Level       int    `json:"level"`
	Anchor      string `json:"anchor"`
}

// Deck is the complete output of one conversion.
type Deck struct {
	Title  string         `json:"title,omitempty"`
	Slides []FinalSlide   `json:"slides"`
	Nav    []ChapterEntry `json:"nav"` // Headings at or above ChapterLevel.
	TOC    []ChapterEntry `json:"toc"` // Full outline, heading levels 1-5.
}
