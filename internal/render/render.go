// Package render converts markdown to HTML while keeping LaTeX math spans
// intact for client-side rendering. The markdown engine would otherwise
// escape or transform $...$ and $$...$$ notation, so math spans are swapped
// for HTML-comment placeholders before conversion and restored after.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts one chunk of markdown into display HTML. Render is pure
// per call: all per-document state lives on the stack, so a single Renderer
// may serve concurrent calls.
type Renderer struct {
	md goldmark.Markdown
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
				// Placeholders are HTML comments and must survive rendering.
				goldmarkhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts markdown to HTML with math spans preserved verbatim.
func (r *Renderer) Render(markdown string) (string, error) {
	protected, spans := protectMath(markdown)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(protected), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return restoreMath(buf.String(), spans), nil
}

// mathSpan is one extracted formula awaiting restoration.
type mathSpan struct {
	display bool
	formula string
}

var (
	// Display math first: $$...$$ may span lines.
	displayMath = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)
	// Inline math: no $ or newline inside the delimiters.
	inlineMath = regexp.MustCompile(`\$([^$\n]+?)\$`)
)

// protectMath replaces math spans with placeholders the markdown engine
// passes through untouched. The extracted spans are returned as a value so
// the transform stays referentially transparent.
func protectMath(text string) (string, []mathSpan) {
	var spans []mathSpan

	text = displayMath.ReplaceAllStringFunc(text, func(m string) string {
		placeholder := fmt.Sprintf("<!--MATH_DISPLAY_%d-->", len(spans))
		spans = append(spans, mathSpan{display: true, formula: m[2 : len(m)-2]})
		return placeholder
	})

	text = inlineMath.ReplaceAllStringFunc(text, func(m string) string {
		placeholder := fmt.Sprintf("<!--MATH_INLINE_%d-->", len(spans))
		spans = append(spans, mathSpan{formula: m[1 : len(m)-1]})
		return placeholder
	})

	return text, spans
}

func restoreMath(html string, spans []mathSpan) string {
	for i, s := range spans {
		if s.display {
			html = strings.ReplaceAll(html, fmt.Sprintf("<!--MATH_DISPLAY_%d-->", i), "$$"+s.formula+"$$")
		} else {
			html = strings.ReplaceAll(html, fmt.Sprintf("<!--MATH_INLINE_%d-->", i), "$"+s.formula+"$")
		}
	}
	return html
}
