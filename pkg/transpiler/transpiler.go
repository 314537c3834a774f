// Package transpiler implements the orchestrator façade: it dispatches
// source text to the matching front-end parser, then runs every
// back-end — including the one matching the source language, which
// serves as a canonicalizer and self-check — and collects the four
// output texts plus a per-target error list.
package transpiler

import (
	"fmt"

	"github.com/cwbudde/polytrans/internal/diag"
	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/internal/parser/cfamily"
	"github.com/cwbudde/polytrans/internal/parser/jv"
	"github.com/cwbudde/polytrans/internal/parser/py"
	emitc "github.com/cwbudde/polytrans/pkg/emit/c"
	emitcpp "github.com/cwbudde/polytrans/pkg/emit/cpp"
	emitjv "github.com/cwbudde/polytrans/pkg/emit/jv"
	emitpy "github.com/cwbudde/polytrans/pkg/emit/py"
)

// TranspileResult carries four optional text fields keyed by target
// tag, a success flag, and a list of error strings each prefixed by
// the target name.
type TranspileResult struct {
	PY      string
	C       string
	CPP     string
	JV      string
	Success bool
	Errors  []string
}

// Transpiler holds no parser or emitter state between calls: each
// Transpile call constructs a fresh Parser for that call, so parser
// counters start from zero every time. The emitters are stateless and
// hold no per-call counters, so the Emit functions are called directly
// rather than through a reusable receiver.
//
// A Transpiler is not safe for concurrent use; callers running from
// different execution contexts must use separate instances or
// serialize externally.
type Transpiler struct{}

// New returns a ready-to-use Transpiler.
func New() *Transpiler { return &Transpiler{} }

// Transpile runs the front-end matching source and every back-end,
// returning the combined result. source is the original program text;
// lang names the language it is written in.
func (t *Transpiler) Transpile(source string, lang langspec.Language) *TranspileResult {
	prog := t.parse(source, lang)
	result := &TranspileResult{}

	nonTrivial := hasNonTrivialClass(prog)

	result.PY = t.emit("PY", result, func() string { return emitpy.Emit(prog) })
	if nonTrivial {
		result.C = emitc.ClassLessGuard
	} else {
		result.C = t.emit("C", result, func() string { return emitc.Emit(prog) })
	}
	result.CPP = t.emit("CPP", result, func() string { return emitcpp.Emit(prog) })
	result.JV = t.emit("JV", result, func() string { return emitjv.Emit(prog) })

	result.Success = len(result.Errors) == 0
	return result
}

// parse dispatches to the matching front-end. A parser never throws;
// the parse errors it returns are discarded here and do not feed into
// the orchestrator's per-target error list, which is reserved for
// emission failures.
func (t *Transpiler) parse(source string, lang langspec.Language) *ir.Program {
	switch lang {
	case langspec.PY:
		prog, _ := py.New(source).Parse()
		return prog
	case langspec.C:
		prog, _ := cfamily.New(source, cfamily.C).Parse()
		return prog
	case langspec.CPP:
		prog, _ := cfamily.New(source, cfamily.CPP).Parse()
		return prog
	case langspec.JV:
		prog, _ := jv.New(source).Parse()
		return prog
	default:
		return &ir.Program{}
	}
}

// emit runs fn under a recover boundary and records a TargetError on
// panic: an emitter may throw, and the orchestrator catches it and
// records a per-target error. A failing target contributes an empty
// string to its output field; the other three still run.
func (t *Transpiler) emit(target string, result *TranspileResult, fn func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			result.Errors = append(result.Errors, diag.NewTargetError(target, fmt.Errorf("%v", r)).Error())
		}
	}()
	return fn()
}

// hasNonTrivialClass reports whether prog's body contains any Class
// beyond an entry-point shell, which is the condition under which the
// orchestrator refuses C emission.
func hasNonTrivialClass(prog *ir.Program) bool {
	if prog == nil {
		return false
	}
	for _, stmt := range prog.Body {
		if c, ok := stmt.(*ir.Class); ok && c.IsNonTrivialClass() {
			return true
		}
	}
	return false
}
