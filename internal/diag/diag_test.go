package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/polytrans/internal/token"
)

func TestCompilerErrorFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "int x = ;\n"
	err := NewCompilerError(token.Position{Line: 1, Column: 9}, "expected expression", source, "")
	out := err.Format(false)

	if !strings.Contains(out, "int x = ;") {
		t.Errorf("expected the offending source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret in output, got:\n%s", out)
	}
	if !strings.Contains(out, "expected expression") {
		t.Errorf("expected the message in output, got:\n%s", out)
	}
}

func TestCompilerErrorFormatWithFileName(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 2, Column: 3}, "bad token", "a\nb\n", "main.c")
	out := err.Format(false)
	if !strings.Contains(out, "Error in main.c:2:3") {
		t.Errorf("expected file-qualified header, got:\n%s", out)
	}
}

func TestCompilerErrorFormatWithoutFileName(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 2, Column: 3}, "bad token", "a\nb\n", "")
	out := err.Format(false)
	if !strings.Contains(out, "Error at line 2:3") {
		t.Errorf("expected line-only header, got:\n%s", out)
	}
}

func TestCompilerErrorFormatColorAddsEscapes(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 1, Column: 1}, "oops", "x\n", "")
	out := err.Format(true)
	if !strings.Contains(out, "\033[") {
		t.Error("expected ANSI escape codes when color=true")
	}
}

func TestCompilerErrorOmitsSourceLineWhenOutOfRange(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 50, Column: 1}, "oops", "only one line\n", "")
	out := err.Format(false)
	if strings.Contains(out, "|") {
		t.Errorf("did not expect a source-line excerpt for an out-of-range line, got:\n%s", out)
	}
}

func TestCompilerErrorImplementsError(t *testing.T) {
	var err error = NewCompilerError(token.Position{Line: 1, Column: 1}, "oops", "x\n", "")
	if err.Error() == "" {
		t.Error("expected a non-empty Error() string")
	}
}

func TestFormatErrorsJoinsWithBlankLine(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "x\n", ""),
		NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "x\ny\n", ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("expected both messages present, got:\n%s", out)
	}
	if !strings.Contains(out, "\n\n") {
		t.Error("expected a blank line between formatted errors")
	}
}

func TestTargetErrorMessage(t *testing.T) {
	err := NewTargetError("CPP", errors.New("unexpected nil class"))
	if got := err.Error(); got != "CPP generation error: unexpected nil class" {
		t.Errorf("got %q", got)
	}
}
