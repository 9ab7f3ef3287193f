// Package scan partitions a slide's source lines into runs the paginator
// treats as indivisible units. Fenced code, display math and table rows are
// atomic: they are never split across two output slides.
package scan

import (
	"regexp"
	"strings"
)

// Kind tags a run of lines.
type Kind int

const (
	Plain Kind = iota
	Code
	DisplayMath
	TableRows
	InlineMathLine
)

// Atomic reports whether a run of this kind must be kept whole.
func (k Kind) Atomic() bool {
	return k == Code || k == DisplayMath || k == TableRows
}

// Run is a maximal span of consecutive lines of one kind. Plain and
// InlineMathLine runs are always a single line. Unterminated is set on a
// trailing atomic run whose closing delimiter never appeared; the run is
// closed at the last input line so content is never dropped.
type Run struct {
	Kind         Kind
	Lines        []string
	Unterminated bool
}

// Chars is the total character count of the run's lines.
func (r Run) Chars() int {
	n := 0
	for _, l := range r.Lines {
		n += len(l)
	}
	return n
}

// inlineMath matches a $...$ span whose content has no $ or newline and
// whose delimiters are not part of a $$ pair. Known false positive: prose
// with two currency amounts on one line ("$5 and $9") reads as math; the
// heuristic is kept as-is because author intent is not recoverable here.
var inlineMath = regexp.MustCompile(`(?:^|[^$])\$[^$\n]+\$(?:[^$]|$)`)

// ContainsInlineMath reports whether line has a well-formed $...$ span.
func ContainsInlineMath(line string) bool {
	return inlineMath.MatchString(line)
}

type state int

const (
	stPlain state = iota
	stCode
	stDisplayMath
	stTable
)

// Scan walks lines left to right and returns the run partition. The walk is
// single-pass: one explicit state per open construct, one accumulator.
func Scan(lines []string) []Run {
	var runs []Run
	var buf []string
	st := stPlain

	emit := func(kind Kind, unterminated bool) {
		runs = append(runs, Run{Kind: kind, Lines: buf, Unterminated: unterminated})
		buf = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch st {
		case stCode:
			buf = append(buf, line)
			if strings.HasPrefix(trimmed, "```") {
				emit(Code, false)
				st = stPlain
			}
			continue

		case stDisplayMath:
			buf = append(buf, line)
			if trimmed == "$$" {
				emit(DisplayMath, false)
				st = stPlain
			}
			continue

		case stTable:
			if strings.Contains(line, "|") {
				buf = append(buf, line)
				continue
			}
			// A blank or non-table line closes the row run; the line
			// itself is reprocessed below as plain input.
			emit(TableRows, false)
			st = stPlain
		}

		// st == stPlain from here on.
		switch {
		case strings.HasPrefix(trimmed, "```"):
			buf = []string{line}
			st = stCode
		case trimmed == "$$":
			buf = []string{line}
			st = stDisplayMath
		case ContainsInlineMath(line):
			runs = append(runs, Run{Kind: InlineMathLine, Lines: []string{line}})
		case strings.Contains(line, "|"):
			buf = []string{line}
			st = stTable
		default:
			runs = append(runs, Run{Kind: Plain, Lines: []string{line}})
		}
	}

	// End of input with an open construct: close it at the last line.
	switch st {
	case stCode:
		emit(Code, true)
	case stDisplayMath:
		emit(DisplayMath, true)
	case stTable:
		emit(TableRows, true)
	}

	return runs
}
