package render

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	r := New()
	out, err := r.Render("# Hello\n\nsome text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected an h1 in output, got %q", out)
	}
	if !strings.Contains(out, "some text") {
		t.Errorf("expected paragraph text in output, got %q", out)
	}
}

func TestRender_TableExtension(t *testing.T) {
	r := New()
	out, err := r.Render("| a | b |\n| --- | --- |\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("expected a table in output, got %q", out)
	}
}

func TestRender_HardWraps(t *testing.T) {
	r := New()
	out, err := r.Render("line one\nline two")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<br") {
		t.Errorf("expected a line break between soft-wrapped lines, got %q", out)
	}
}

func TestRender_InlineMathSurvives(t *testing.T) {
	r := New()
	out, err := r.Render("the area is $\\pi r^2$ exactly")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "$\\pi r^2$") {
		t.Errorf("inline math must be restored verbatim, got %q", out)
	}
	if strings.Contains(out, "MATH_INLINE") {
		t.Errorf("placeholder leaked into output: %q", out)
	}
}

func TestRender_DisplayMathSurvives(t *testing.T) {
	r := New()
	out, err := r.Render("before\n\n$$\na + b = c\n$$\n\nafter")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "a + b = c") {
		t.Errorf("display math content lost, got %q", out)
	}
	if !strings.Contains(out, "$$") {
		t.Errorf("display math delimiters must be restored, got %q", out)
	}
	if strings.Contains(out, "MATH_DISPLAY") {
		t.Errorf("placeholder leaked into output: %q", out)
	}
}

func TestRender_MathWithMarkdownSpecials(t *testing.T) {
	// Underscores inside math would otherwise become emphasis.
	r := New()
	out, err := r.Render("value $x_1 + x_2$ here")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "$x_1 + x_2$") {
		t.Errorf("math with underscores must survive untouched, got %q", out)
	}
	if strings.Contains(out, "<em>") {
		t.Errorf("markdown emphasis applied inside math: %q", out)
	}
}

func TestRender_MultipleMathSpans(t *testing.T) {
	r := New()
	out, err := r.Render("$a$ and $b$ and $$\nc\n$$")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"$a$", "$b$", "c"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output %q", want, out)
		}
	}
}

func TestRender_PureFunction(t *testing.T) {
	r := New()
	first, err := r.Render("# T\n\n$x$ math")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render("# T\n\n$x$ math")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Errorf("render is not deterministic:\n%q\n%q", first, second)
	}
}

func TestProtectMath_ReturnsSpansAsValue(t *testing.T) {
	text, spans := protectMath("inline $a$ and $$b$$")
	if strings.Contains(text, "$") {
		t.Errorf("all math must be replaced, got %q", text)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	// Display math is extracted first.
	if !spans[0].display || spans[0].formula != "b" {
		t.Errorf("unexpected display span: %+v", spans[0])
	}
	if spans[1].display || spans[1].formula != "a" {
		t.Errorf("unexpected inline span: %+v", spans[1])
	}
}
