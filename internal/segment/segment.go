// Package segment splits a markdown document into initial slides at heading
// boundaries. The split is purely structural: no size or height limits are
// consulted here.
package segment

import (
	"fmt"
	"regexp"

	"github.com/dwHou/Slidown/internal/deck"
)

var h1Pattern = regexp.MustCompile(`^#\s+(.+)$`)

// Segment splits lines into slides at headings of splitLevel.
//
// The first top-level heading, when splitLevel is not 1, becomes a title
// slide: it closes the slide being accumulated and starts a new one flagged
// as the cover. Later top-level headings are ordinary content. A document
// with no heading at all yields a single untitled slide.
func Segment(lines []string, splitLevel int) []deck.Slide {
	splitPattern := regexp.MustCompile(fmt.Sprintf(`^#{%d}\s+(.+)$`, splitLevel))

	var slides []deck.Slide
	var current []string
	currentTitle := ""
	currentIsTitle := false
	firstH1 := true

	flush := func() {
		if len(current) == 0 {
			return
		}
		slides = append(slides, deck.Slide{
			Title:        currentTitle,
			RawLines:     current,
			IsTitleSlide: currentIsTitle,
		})
	}

	for _, line := range lines {
		if m := h1Pattern.FindStringSubmatch(line); m != nil && firstH1 && splitLevel != 1 {
			flush()
			currentTitle = m[1]
			current = []string{line}
			currentIsTitle = true
			firstH1 = false
			continue
		}

		if m := splitPattern.FindStringSubmatch(line); m != nil {
			flush()
			currentTitle = m[1]
			current = []string{line}
			currentIsTitle = false
			firstH1 = false
			continue
		}

		current = append(current, line)
	}

	flush()
	return slides
}
