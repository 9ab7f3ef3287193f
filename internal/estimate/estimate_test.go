package estimate

import (
	"strings"
	"testing"

	"github.com/dwHou/Slidown/internal/scan"
)

func TestLine_Heights(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"# Title", 120},
		{"## Section", 100},
		{"### Sub", 80},
		{"#### Deep", 70},
		{"##### Deeper", 60},
		{"###### Deepest", 60},
		{"```go", 20},
		{"- item", 32},
		{"* item", 32},
		{"+ item", 32},
		{"12. item", 32},
		{"| a | b |", 40},
		{"---", 36},
		{"***", 36},
		{"___", 36},
		{"", 12},
		{"   ", 12},
		{"ordinary text", 24},
		{"  indented text", 24},
	}
	for _, c := range cases {
		if got := Line(c.line); got != c.want {
			t.Errorf("Line(%q) = %d, want %d", c.line, got, c.want)
		}
	}
}

func TestHeadingHeight_ClampsLevel(t *testing.T) {
	if got := HeadingHeight(0); got != 120 {
		t.Errorf("level 0 should clamp to 120, got %d", got)
	}
	if got := HeadingHeight(9); got != 60 {
		t.Errorf("level 9 should clamp to 60, got %d", got)
	}
}

func TestRunHeight_PerKind(t *testing.T) {
	code := scan.Run{Kind: scan.Code, Lines: []string{"```", "x", "```"}}
	if got := RunHeight(code); got != 3*20+40 {
		t.Errorf("code run height = %d, want %d", got, 3*20+40)
	}

	math := scan.Run{Kind: scan.DisplayMath, Lines: []string{"$$", "a", "$$"}}
	if got := RunHeight(math); got != 3*30+40 {
		t.Errorf("math run height = %d, want %d", got, 3*30+40)
	}

	table := scan.Run{Kind: scan.TableRows, Lines: []string{"| a |", "| - |", "| 1 |"}}
	if got := RunHeight(table); got != 3*40+50 {
		t.Errorf("table run height = %d, want %d", got, 3*40+50)
	}

	plain := scan.Run{Kind: scan.Plain, Lines: []string{"text"}}
	if got := RunHeight(plain); got != 24 {
		t.Errorf("plain run height = %d, want 24", got)
	}
}

func TestMeasureHTML_Headings(t *testing.T) {
	m := MeasureHTML("<h1>A</h1><h2>B</h2><h3>C</h3>")
	if m.Height != 120+100+80 {
		t.Errorf("heading heights = %d, want %d", m.Height, 120+100+80)
	}
}

func TestMeasureHTML_Paragraph(t *testing.T) {
	// 160 chars -> 2 estimated lines -> 2*24+12.
	m := MeasureHTML("<p>" + strings.Repeat("a", 160) + "</p>")
	if m.Height != 2*24+12 {
		t.Errorf("paragraph height = %d, want %d", m.Height, 2*24+12)
	}
	if m.Chars != 160 {
		t.Errorf("chars = %d, want 160", m.Chars)
	}
	if m.Elements != 1 {
		t.Errorf("elements = %d, want 1", m.Elements)
	}
}

func TestMeasureHTML_ShortParagraphMinimumOneLine(t *testing.T) {
	m := MeasureHTML("<p>short</p>")
	if m.Height != 1*24+12 {
		t.Errorf("short paragraph height = %d, want %d", m.Height, 24+12)
	}
}

func TestMeasureHTML_CodeBlock(t *testing.T) {
	m := MeasureHTML("<pre><code>a\nb\nc</code></pre>")
	if m.Height != 3*20+40 {
		t.Errorf("code height = %d, want %d", m.Height, 3*20+40)
	}
	if m.Elements != 1 {
		t.Errorf("elements = %d, want 1", m.Elements)
	}
}

func TestMeasureHTML_TableRows(t *testing.T) {
	m := MeasureHTML("<table><tr><td>x</td></tr><tr><td>y</td></tr></table>")
	if m.Height != 2*40+50 {
		t.Errorf("table height = %d, want %d", m.Height, 2*40+50)
	}
	if m.Elements != 1 {
		t.Errorf("elements = %d, want 1", m.Elements)
	}
}

func TestMeasureHTML_List(t *testing.T) {
	m := MeasureHTML("<ul><li>a</li><li>b</li><li>c</li></ul>")
	if m.Height != 3*32 {
		t.Errorf("list height = %d, want %d", m.Height, 3*32)
	}
	if m.Elements != 3 {
		t.Errorf("elements = %d, want 3 list items", m.Elements)
	}
}

func TestMeasureHTML_ImageHeights(t *testing.T) {
	m := MeasureHTML(`<p><img src="x.png" height="200"></p>`)
	if m.Height != 200 {
		t.Errorf("explicit image height = %d, want 200", m.Height)
	}

	m = MeasureHTML(`<p><img src="x.png"></p>`)
	if m.Height != 300 {
		t.Errorf("default image height = %d, want 300", m.Height)
	}
}

func TestMeasureHTML_BlockquoteAndRule(t *testing.T) {
	m := MeasureHTML("<blockquote><p>" + strings.Repeat("b", 140) + "</p></blockquote><hr>")
	// 140 chars / 70 -> 2 lines -> 2*24+36, plus 36 for the rule.
	want := 2*24 + 36 + 36
	if m.Height != want {
		t.Errorf("height = %d, want %d", m.Height, want)
	}
}

func TestMeasureHTML_UnknownElementDefault(t *testing.T) {
	m := MeasureHTML("<div>something</div>")
	if m.Height != 40 {
		t.Errorf("unknown element height = %d, want 40", m.Height)
	}
}

func TestMeasureHTML_ElementCount(t *testing.T) {
	html := "<p>a</p><ul><li>b</li><li>c</li></ul><pre>d</pre><table><tr><td>e</td></tr></table>"
	m := MeasureHTML(html)
	// 1 paragraph + 2 list items + 1 pre + 1 table.
	if m.Elements != 5 {
		t.Errorf("elements = %d, want 5", m.Elements)
	}
}
