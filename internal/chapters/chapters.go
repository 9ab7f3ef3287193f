// Package chapters builds the navigation index from finalized slides: a
// nav-bar list filtered by chapter level and a full outline of heading
// levels 1-5. Both lists dedup by first-seen title text.
package chapters

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/dwHou/Slidown/internal/deck"
)

// Extract scans final slides in emission order for headings. Title slides
// are skipped: the cover heading is not a chapter.
func Extract(slides []deck.FinalSlide, chapterLevel int) (nav, toc []deck.ChapterEntry) {
	seenNav := make(map[string]bool)
	seenTOC := make(map[string]bool)

	for i, s := range slides {
		if s.IsTitleSlide {
			continue
		}
		for _, line := range s.RawLines {
			level, title := headingAt(line)
			if level == 0 {
				continue
			}
			entry := deck.ChapterEntry{
				Title:       title,
				SlideNumber: i + 1,
				Level:       level,
				Anchor:      slug.Make(title),
			}
			if !seenTOC[title] {
				toc = append(toc, entry)
				seenTOC[title] = true
			}
			if level <= chapterLevel && !seenNav[title] {
				nav = append(nav, entry)
				seenNav[title] = true
			}
		}
	}
	return nav, toc
}

// headingAt detects a heading of level 1-5 by exact prefix: level N is
// exactly N '#' characters followed by a space. Returns level 0 for
// non-heading lines and for level-6 headings, which the outline omits.
func headingAt(line string) (int, string) {
	s := strings.TrimSpace(line)
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n < 1 || n > 5 || n >= len(s) || s[n] != ' ' {
		return 0, ""
	}
	title := strings.TrimSpace(s[n+1:])
	if title == "" {
		return 0, ""
	}
	return n, title
}
