// Package idiom holds the idiom-recognition logic shared by the parsers:
// classic counted-loop normalization into
// range form, and the printf/%-style and f-string/{name}-style format
// decomposition that turns one literal argument into an interleaved
// sequence of literal segments and value expressions. Both directions of
// the pipeline (parse-time recognition, emit-time re-expression) share
// these helpers so the splitting rule is defined exactly once.
package idiom

import (
	"strings"

	"github.com/cwbudde/polytrans/internal/ir"
)

// directives is the closed set of C-style format directives recognized
// during decomposition.
var directives = []string{"%d", "%s", "%f", "%c", "%i", "%x", "%X", "%o", "%u", "%e", "%E", "%g", "%G", "%p"}

// DecomposeFormatDirectives scans a printf-style format literal for
// %-directives, splitting it into an alternating sequence of string
// Literal segments and consumed values from args. Literal segments
// that would be empty are omitted. A trailing "\n" in the final segment
// is stripped in favor of the returned newline flag.
//
// Given `printf("x=%d y=%s\n", a, b)` this returns
// (["x=", a, " y=", b], true, 2), the last value being the number of
// arguments consumed.
func DecomposeFormatDirectives(format string, args []ir.Expression) (outArgs []ir.Expression, newline bool, extra int) {
	newline = strings.HasSuffix(format, "\n")
	if newline {
		format = strings.TrimSuffix(format, "\n")
	}

	var out []ir.Expression
	argIdx := 0
	rest := format
	for {
		idx, dir := nextDirective(rest)
		if idx == -1 {
			if rest != "" {
				out = append(out, litStr(rest))
			}
			break
		}
		if idx > 0 {
			out = append(out, litStr(rest[:idx]))
		}
		if argIdx < len(args) {
			out = append(out, args[argIdx])
			argIdx++
		} else {
			// Malformed input: more directives than arguments. Tolerate
			// by inserting an empty placeholder rather than failing the
			// parse.
			out = append(out, litStr(""))
		}
		rest = rest[idx+len(dir):]
	}
	return out, newline, argIdx
}

func nextDirective(s string) (int, string) {
	best := -1
	bestDir := ""
	for _, d := range directives {
		if i := strings.Index(s, d); i != -1 && (best == -1 || i < best) {
			best = i
			bestDir = d
		}
	}
	return best, bestDir
}

func litStr(s string) *ir.Literal {
	return &ir.Literal{Type: ir.String, Value: s}
}

// DecomposeInterpolated scans a `{name}` placeholder literal (a PY
// f-string, or any language's literal print argument bearing the same
// convention) into an alternating sequence of string Literal
// segments and Identifier nodes. ok is false if no placeholder was found.
func DecomposeInterpolated(content string) (outArgs []ir.Expression, ok bool) {
	var out []ir.Expression
	rest := content
	found := false
	for {
		open := strings.IndexByte(rest, '{')
		if open == -1 {
			if rest != "" {
				out = append(out, litStr(rest))
			}
			break
		}
		close := strings.IndexByte(rest[open:], '}')
		if close == -1 {
			out = append(out, litStr(rest))
			break
		}
		close += open
		if open > 0 {
			out = append(out, litStr(rest[:open]))
		}
		name := rest[open+1 : close]
		out = append(out, &ir.Identifier{Name: name})
		found = true
		rest = rest[close+1:]
	}
	return out, found
}
