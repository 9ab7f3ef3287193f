package chapters

import (
	"testing"

	"github.com/dwHou/Slidown/internal/deck"
)

func slide(lines ...string) deck.FinalSlide {
	return deck.FinalSlide{RawLines: lines}
}

func TestExtract_LevelsAndSlideNumbers(t *testing.T) {
	slides := []deck.FinalSlide{
		slide("## Intro", "text"),
		slide("### Details", "more"),
		slide("#### Fine Print"),
	}

	nav, toc := Extract(slides, 3)

	if len(toc) != 3 {
		t.Fatalf("expected 3 toc entries, got %d", len(toc))
	}
	wantTOC := []struct {
		title string
		num   int
		level int
	}{
		{"Intro", 1, 2},
		{"Details", 2, 3},
		{"Fine Print", 3, 4},
	}
	for i, w := range wantTOC {
		e := toc[i]
		if e.Title != w.title || e.SlideNumber != w.num || e.Level != w.level {
			t.Errorf("toc[%d] = %+v, want %+v", i, e, w)
		}
	}

	// Nav is filtered to level <= 3.
	if len(nav) != 2 {
		t.Fatalf("expected 2 nav entries, got %d", len(nav))
	}
	if nav[0].Title != "Intro" || nav[1].Title != "Details" {
		t.Errorf("unexpected nav: %+v", nav)
	}
}

func TestExtract_SkipsTitleSlides(t *testing.T) {
	slides := []deck.FinalSlide{
		{RawLines: []string{"# Cover"}, IsTitleSlide: true},
		slide("## First"),
	}

	nav, toc := Extract(slides, 3)
	if len(toc) != 1 || toc[0].Title != "First" {
		t.Errorf("cover heading must not appear in toc: %+v", toc)
	}
	if toc[0].SlideNumber != 2 {
		t.Errorf("slide numbering must count the skipped cover: got %d", toc[0].SlideNumber)
	}
	if len(nav) != 1 {
		t.Errorf("unexpected nav: %+v", nav)
	}
}

func TestExtract_DedupByFirstSeenTitle(t *testing.T) {
	slides := []deck.FinalSlide{
		slide("## Setup"),
		slide("## Setup"), // same heading repeated on a later slide
		slide("### Setup"),
	}

	nav, toc := Extract(slides, 3)
	if len(toc) != 1 {
		t.Fatalf("expected deduped toc, got %+v", toc)
	}
	if toc[0].SlideNumber != 1 || toc[0].Level != 2 {
		t.Errorf("first occurrence must win: %+v", toc[0])
	}
	if len(nav) != 1 {
		t.Errorf("expected deduped nav, got %+v", nav)
	}
}

func TestExtract_NavIsSubsetOfTOC(t *testing.T) {
	slides := []deck.FinalSlide{
		slide("# Top"),
		slide("## Mid"),
		slide("#### Deep"),
		slide("##### Deeper"),
	}

	nav, toc := Extract(slides, 2)
	if len(toc) != 4 {
		t.Fatalf("toc should hold levels 1-5, got %d entries", len(toc))
	}
	if len(nav) != 2 {
		t.Fatalf("nav should hold levels <= 2, got %d entries", len(nav))
	}
	inTOC := make(map[string]bool)
	for _, e := range toc {
		inTOC[e.Title] = true
	}
	for _, e := range nav {
		if !inTOC[e.Title] {
			t.Errorf("nav entry %q missing from toc", e.Title)
		}
	}
}

func TestExtract_Anchors(t *testing.T) {
	_, toc := Extract([]deck.FinalSlide{slide("## Getting Started")}, 3)
	if len(toc) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(toc))
	}
	if toc[0].Anchor != "getting-started" {
		t.Errorf("anchor = %q, want %q", toc[0].Anchor, "getting-started")
	}
}

func TestHeadingAt_ExactPrefixMatching(t *testing.T) {
	cases := []struct {
		line  string
		level int
		title string
	}{
		{"# One", 1, "One"},
		{"## Two", 2, "Two"},
		{"##### Five", 5, "Five"},
		{"###### Six", 0, ""}, // level 6 stays out of the outline
		{"#NoSpace", 0, ""},
		{"not a heading", 0, ""},
		{"  ## Indented  ", 2, "Indented"},
		{"## ", 0, ""}, // no text
	}
	for _, c := range cases {
		level, title := headingAt(c.line)
		if level != c.level || title != c.title {
			t.Errorf("headingAt(%q) = (%d, %q), want (%d, %q)", c.line, level, title, c.level, c.title)
		}
	}
}
