// Package estimate maps markdown constructs to estimated pixel heights.
// The heuristics are fixed per construct and deliberately coarse: they
// decide where slides break, not how slides look.
//
// Two modes exist. Line and RunHeight operate on raw source lines and are
// authoritative while the paginator builds chunks. MeasureHTML operates on
// a rendered slide and feeds the should-split gate.
package estimate

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dwHou/Slidown/internal/scan"
)

// Heading heights by level 1-6.
var headingHeights = [...]int{120, 100, 80, 70, 60, 60}

// HeadingHeight returns the fixed height of a heading at level 1-6.
func HeadingHeight(level int) int {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return headingHeights[level-1]
}

var orderedItem = regexp.MustCompile(`^\d+\.`)

// Line estimates the height of one raw markdown line.
func Line(line string) int {
	s := strings.TrimSpace(line)

	if s == "" {
		return 12
	}
	for level := 1; level <= 6; level++ {
		if strings.HasPrefix(s, strings.Repeat("#", level)+" ") {
			return HeadingHeight(level)
		}
	}
	if strings.HasPrefix(s, "```") {
		return 20
	}
	if s == "---" || s == "***" || s == "___" {
		return 36
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "*") || strings.HasPrefix(s, "+") || orderedItem.MatchString(s) {
		return 32
	}
	if strings.Contains(s, "|") {
		return 40
	}
	return 24
}

// RunHeight estimates the height of a scanned run as one unit.
func RunHeight(r scan.Run) int {
	n := len(r.Lines)
	switch r.Kind {
	case scan.Code:
		return n*20 + 40
	case scan.DisplayMath:
		return n*30 + 40
	case scan.TableRows:
		return n*40 + 50
	default:
		h := 0
		for _, l := range r.Lines {
			h += Line(l)
		}
		return h
	}
}

// HTMLMetrics are the measurements the split gate compares to a budget.
type HTMLMetrics struct {
	Height   int // Summed heights of top-level block elements.
	Chars    int // Plain-text character count, tags stripped.
	Elements int // Count of <p>, <li>, <pre> and <table> elements.
}

// MeasureHTML measures a rendered slide. Input that fails to parse as HTML
// measures as zero, which keeps the slide whole rather than dropping it.
func MeasureHTML(rendered string) HTMLMetrics {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return HTMLMetrics{}
	}
	body := findBody(doc)
	if body == nil {
		return HTMLMetrics{}
	}

	var m HTMLMetrics
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		m.Height += blockHeight(n)
	}
	m.Chars = len(textContent(body))
	for _, tag := range []string{"p", "li", "pre", "table"} {
		m.Elements += countTag(body, tag)
	}
	return m
}

// blockHeight estimates one top-level rendered block. An element wrapping
// an image measures as the image, matching the rendered layout where the
// image dominates the paragraph around it.
func blockHeight(n *html.Node) int {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return HeadingHeight(int(n.Data[1] - '0'))
	case "pre":
		lines := strings.Count(textContent(n), "\n") + 1
		return lines*20 + 40
	case "table":
		return countTag(n, "tr")*40 + 50
	case "hr":
		return 36
	}

	if img := findTag(n, "img"); img != nil {
		if h, ok := attrInt(img, "height"); ok {
			return h
		}
		return 300
	}

	switch n.Data {
	case "ul", "ol":
		return countTag(n, "li") * 32
	case "p":
		lines := max(1, len(textContent(n))/80)
		return lines*24 + 12
	case "blockquote":
		lines := max(1, len(textContent(n))/70)
		return lines*24 + 36
	}
	return 40
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func countTag(n *html.Node, tag string) int {
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return count
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func attrInt(n *html.Node, key string) (int, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			if v, err := strconv.Atoi(strings.TrimSuffix(a.Val, "px")); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}
