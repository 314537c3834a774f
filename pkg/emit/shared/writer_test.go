package shared

import (
	"strings"
	"testing"

	"github.com/cwbudde/polytrans/internal/ir"
)

func TestWriterIndentAndDedent(t *testing.T) {
	w := NewWriter("    ")
	w.Line("top")
	w.Indent()
	w.Line("nested")
	w.Dedent()
	w.Line("back")

	want := "top\n    nested\nback\n"
	if got := w.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriterDedentNeverGoesNegative(t *testing.T) {
	w := NewWriter("  ")
	w.Dedent()
	w.Dedent()
	w.Line("x")
	if got := w.String(); got != "x\n" {
		t.Errorf("got %q, want \"x\\n\" (dedent below zero should be a no-op)", got)
	}
}

func TestWriterBlank(t *testing.T) {
	w := NewWriter("  ")
	w.Line("a")
	w.Blank()
	w.Line("b")
	if got := w.String(); got != "a\n\nb\n" {
		t.Errorf("got %q", got)
	}
}

func TestNumberTextDropsTrailingZero(t *testing.T) {
	if got := NumberText(5); got != "5" {
		t.Errorf("got %q, want 5", got)
	}
	if got := NumberText(3.14); got != "3.14" {
		t.Errorf("got %q, want 3.14", got)
	}
	if got := NumberText(-2); got != "-2" {
		t.Errorf("got %q, want -2", got)
	}
}

func TestQuoteStringEscapesSpecialCharacters(t *testing.T) {
	got := QuoteString("a\"b\\c\nd")
	want := `"a\"b\\c\nd"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLooksDecomposed(t *testing.T) {
	strLit := &ir.Literal{Type: ir.String, Value: "x="}
	ident := &ir.Identifier{Name: "x"}
	numLit := &ir.Literal{Type: ir.Int, Value: float64(1)}

	if LooksDecomposed(nil) {
		t.Error("nil args should not look decomposed")
	}
	if LooksDecomposed([]ir.Expression{ident}) {
		t.Error("a single argument should not look decomposed")
	}
	if LooksDecomposed([]ir.Expression{ident, ident}) {
		t.Error("two non-string-leading args should not look decomposed")
	}
	if !LooksDecomposed([]ir.Expression{strLit, ident}) {
		t.Error("a string literal followed by a value should look decomposed")
	}
	if LooksDecomposed([]ir.Expression{numLit, ident}) {
		t.Error("a leading numeric literal should not look decomposed")
	}
}

func TestStringLiteralText(t *testing.T) {
	s, ok := StringLiteralText(&ir.Literal{Type: ir.String, Value: "hi"})
	if !ok || s != "hi" {
		t.Errorf("got (%q, %v), want (\"hi\", true)", s, ok)
	}
	if _, ok := StringLiteralText(&ir.Literal{Type: ir.Int, Value: float64(1)}); ok {
		t.Error("expected ok=false for a non-string literal")
	}
	if _, ok := StringLiteralText(&ir.Identifier{Name: "x"}); ok {
		t.Error("expected ok=false for a non-literal expression")
	}
}

func TestWriterStringIsAccumulated(t *testing.T) {
	w := NewWriter("  ")
	if got := w.String(); got != "" {
		t.Errorf("fresh Writer should render empty, got %q", got)
	}
	w.Line("a")
	if !strings.Contains(w.String(), "a") {
		t.Error("expected the written line to be present")
	}
}
