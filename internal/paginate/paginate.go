// Package paginate re-splits slides whose rendered content would overflow
// the viewport. Splitting walks the slide's raw lines, accumulating scanned
// runs into chunks bounded by a height/char/element budget. Atomic runs
// (fenced code, display math, table rows) are never split, even when a
// single run alone exceeds the budget: the budget is advisory, atomicity
// is absolute.
package paginate

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dwHou/Slidown/internal/deck"
	"github.com/dwHou/Slidown/internal/estimate"
	"github.com/dwHou/Slidown/internal/scan"
)

// renderConcurrency bounds parallel chunk rendering within one slide.
const renderConcurrency = 4

// Budget bounds one output slide.
type Budget struct {
	MaxHeightPx int
	MaxChars    int
	MaxElements int
}

// BudgetFor derives the per-slide budget from conversion options.
func BudgetFor(opts deck.Options) Budget {
	return Budget{
		MaxHeightPx: opts.MaxHeightPx(),
		MaxChars:    opts.MaxContentLength,
		MaxElements: opts.MaxElements,
	}
}

// RenderFunc converts a markdown chunk into display HTML.
type RenderFunc func(markdown string) (string, error)

// Paginator turns one initial slide into one or more final slides.
type Paginator struct {
	budget          Budget
	showPageNumbers bool
	render          RenderFunc
}

func New(budget Budget, showPageNumbers bool, render RenderFunc) *Paginator {
	return &Paginator{
		budget:          budget,
		showPageNumbers: showPageNumbers,
		render:          render,
	}
}

// Paginate emits the final slides for one initial slide. Title slides are
// never split regardless of size.
func (p *Paginator) Paginate(slide deck.Slide) ([]deck.FinalSlide, error) {
	rendered, err := p.render(strings.Join(slide.RawLines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("render slide: %w", err)
	}

	if slide.IsTitleSlide || !p.shouldSplit(rendered) {
		return []deck.FinalSlide{{
			Title:        slide.Title,
			Content:      rendered,
			IsTitleSlide: slide.IsTitleSlide,
			RawLines:     slide.RawLines,
		}}, nil
	}

	chunks := p.split(slide.RawLines)
	return p.emit(slide.Title, chunks)
}

// shouldSplit measures the rendered slide against all three budget
// dimensions. Any one of them over budget forces a split.
func (p *Paginator) shouldSplit(rendered string) bool {
	m := estimate.MeasureHTML(rendered)
	return m.Height > p.budget.MaxHeightPx ||
		m.Chars > p.budget.MaxChars ||
		m.Elements > p.budget.MaxElements
}

// split partitions raw lines into budget-sized chunks at run boundaries.
func (p *Paginator) split(lines []string) [][]string {
	var chunks [][]string
	var current []string
	height, chars, elements := 0, 0, 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, current)
		}
		current = nil
		height, chars, elements = 0, 0, 0
	}

	for _, run := range scan.Scan(lines) {
		if run.Unterminated && run.Kind.Atomic() {
			// Recovered run with no closing delimiter: glue it onto
			// whatever came before rather than budget-check it.
			flush()
			if len(chunks) > 0 {
				last := len(chunks) - 1
				chunks[last] = append(chunks[last], run.Lines...)
			} else {
				chunks = append(chunks, run.Lines)
			}
			continue
		}

		switch {
		case run.Kind.Atomic():
			h := estimate.RunHeight(run)
			if height+h > p.budget.MaxHeightPx && len(current) > 0 {
				flush()
			}
			current = append(current, run.Lines...)
			height += h
			chars += run.Chars()
			elements++

		case run.Kind == scan.InlineMathLine:
			// The whole line is one unit; only the height dimension
			// gates it, matching the atomic-run treatment.
			line := run.Lines[0]
			h := estimate.Line(line)
			if height+h > p.budget.MaxHeightPx && len(current) > 0 {
				flush()
			}
			current = append(current, line)
			height += h
			chars += len(line)
			elements++

		default:
			line := run.Lines[0]
			h := estimate.Line(line)
			e := plainLineElements(line)
			if len(current) > 0 &&
				(height+h > p.budget.MaxHeightPx ||
					chars+len(line) > p.budget.MaxChars ||
					elements+e > p.budget.MaxElements) {
				flush()
			}
			current = append(current, line)
			height += h
			chars += len(line)
			elements += e
		}
	}

	flush()
	return chunks
}

// plainLineElements counts a non-heading, non-blank line as one element.
func plainLineElements(line string) int {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(line, "#") {
		return 0
	}
	return 1
}

// emit renders each chunk independently and numbers the resulting slides.
// Rendering is pure per chunk, so chunks render in parallel; results land
// in indexed slots to keep emission order identical to source order.
func (p *Paginator) emit(title string, chunks [][]string) ([]deck.FinalSlide, error) {
	total := len(chunks)
	slides := make([]deck.FinalSlide, total)

	var g errgroup.Group
	g.SetLimit(renderConcurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			content, err := p.render(strings.Join(chunk, "\n"))
			if err != nil {
				return fmt.Errorf("render page %d/%d: %w", i+1, total, err)
			}
			slideTitle := title
			if p.showPageNumbers && title != "" {
				slideTitle = fmt.Sprintf("%s (%d/%d)", title, i+1, total)
			}
			slides[i] = deck.FinalSlide{
				Title:         slideTitle,
				Content:       content,
				RawLines:      chunk,
				OriginalTitle: title,
				PageNumber:    i + 1,
				TotalPages:    total,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slides, nil
}
