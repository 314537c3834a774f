// Package diag formats parse and generation errors with source context,
// line/column information, and a caret pointing at the offending
// position, adapted from the teacher's internal/errors package.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/polytrans/internal/token"
)

// CompilerError is a single diagnostic tied to a source position.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError builds a CompilerError for source text at pos.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a one-line source excerpt and a caret.
// If color is true, ANSI escapes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of errors, one per blank-line-separated
// block, in the order given.
func FormatErrors(errs []*CompilerError, color bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n\n")
}

// TargetError wraps a per-target emission failure, formatted as
// "<Target> generation error: ...".
type TargetError struct {
	Target string
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s generation error: %s", e.Target, e.Err.Error())
}

func NewTargetError(target string, err error) *TargetError {
	return &TargetError{Target: target, Err: err}
}
