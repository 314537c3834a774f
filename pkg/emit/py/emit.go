// Package py implements the scripting-language back-end.
package py

import (
	"fmt"
	"strings"

	"github.com/cwbudde/polytrans/internal/idiom"
	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/parser/precedence"
	"github.com/cwbudde/polytrans/pkg/emit/shared"
)

// Emit renders prog as scripting-language source text. Program.Imports
// are never re-emitted: captured verbatim, consumed by no
// emitter, since a source-language import line has no meaning translated
// into another language's module system.
func Emit(prog *ir.Program) string {
	w := shared.NewWriter("    ")
	for _, stmt := range prog.Body {
		emitTopLevel(w, stmt)
	}
	return w.String()
}

// emitTopLevel applies the entry-point-class-shell and bare-main
// flattening rule before falling back to ordinary statement emission.
func emitTopLevel(w *shared.Writer, stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.Class:
		if s.IsEntryPointShell() {
			for _, fn := range s.StaticMethods {
				emitFunctionDef(w, fn, false)
				w.Blank()
			}
			for _, body := range s.EntryPoint.Body {
				emitStatement(w, body)
			}
			return
		}
		emitClass(w, s)
	case *ir.Function:
		if s.Name == "main" {
			for _, body := range s.Body {
				emitStatement(w, body)
			}
			return
		}
		emitFunctionDef(w, s, false)
	default:
		emitStatement(w, stmt)
	}
}

func emitStatement(w *shared.Writer, stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.Comment:
		emitComment(w, s)
	case *ir.Variable:
		w.Line(fmt.Sprintf("%s = %s", s.Name, exprText(s.Initializer)))
	case *ir.Assignment:
		emitAssignment(w, s)
	case *ir.If:
		emitIf(w, s, false)
	case *ir.For:
		emitFor(w, s)
	case *ir.While:
		w.Line(fmt.Sprintf("while %s:", exprText(s.Condition)))
		emitBlock(w, s.Body)
	case *ir.Switch:
		emitSwitch(w, s)
	case *ir.Break:
		w.Line("break")
	case *ir.Return:
		if s.Value == nil {
			w.Line("return")
		} else {
			w.Line("return " + exprText(s.Value))
		}
	case *ir.Print:
		w.Line(printText(s))
	case *ir.Call:
		w.Line(exprText(s))
	case *ir.Function:
		emitFunctionDef(w, s, false)
	case *ir.Class:
		emitClass(w, s)
	case *ir.ExprStatement:
		emitExprStatement(w, s)
	default:
		w.Line("pass")
	}
}

func emitComment(w *shared.Writer, c *ir.Comment) {
	for _, line := range strings.Split(c.Text, "\n") {
		w.Line("# " + strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "//"), "#")))
	}
}

func emitAssignment(w *shared.Writer, a *ir.Assignment) {
	w.Line(fmt.Sprintf("%s %s %s", a.Target, a.Op, exprText(a.Value)))
}

// emitExprStatement handles the two shapes a bare expression statement
// carries: a pre/post increment (no Python equivalent, rewritten as a
// compound assignment) or a plain call.
func emitExprStatement(w *shared.Writer, s *ir.ExprStatement) {
	if u, ok := s.X.(*ir.UnaryOp); ok {
		switch u.Operator {
		case "++", "++_post":
			w.Line(fmt.Sprintf("%s += 1", exprText(u.Operand)))
			return
		case "--", "--_post":
			w.Line(fmt.Sprintf("%s -= 1", exprText(u.Operand)))
			return
		}
	}
	w.Line(exprText(s.X))
}

func emitBlock(w *shared.Writer, body []ir.Statement) {
	w.Indent()
	if len(body) == 0 {
		w.Line("pass")
	}
	for _, stmt := range body {
		emitStatement(w, stmt)
	}
	w.Dedent()
}

func emitIf(w *shared.Writer, n *ir.If, elif bool) {
	kw := "if"
	if elif {
		kw = "elif"
	}
	w.Line(fmt.Sprintf("%s %s:", kw, exprText(n.Condition)))
	emitBlock(w, n.Then)
	if n.ElseIf != nil {
		emitIf(w, n.ElseIf, true)
		return
	}
	if n.Else != nil {
		w.Line("else:")
		emitBlock(w, n.Else)
	}
}

// emitFor prefers the range form; when HasRange is false it degrades to
// a while loop carrying the classic init/update clauses, since Python
// has no C-style counted for statement.
func emitFor(w *shared.Writer, n *ir.For) {
	if n.HasRange {
		argc := idiom.CollapsedRangeArgCount(n.RangeStart, n.RangeStep)
		var args string
		switch argc {
		case 1:
			args = exprText(n.RangeEnd)
		case 2:
			args = exprText(n.RangeStart) + ", " + exprText(n.RangeEnd)
		default:
			args = exprText(n.RangeStart) + ", " + exprText(n.RangeEnd) + ", " + exprText(n.RangeStep)
		}
		w.Line(fmt.Sprintf("for %s in range(%s):", n.Iterator, args))
		emitBlock(w, n.Body)
		return
	}
	if n.Init != nil {
		emitStatement(w, n.Init)
	}
	cond := "True"
	if n.Condition != nil {
		cond = exprText(n.Condition)
	}
	w.Line(fmt.Sprintf("while %s:", cond))
	w.Indent()
	if len(n.Body) == 0 && n.Update == nil {
		w.Line("pass")
	}
	for _, stmt := range n.Body {
		emitStatement(w, stmt)
	}
	if n.Update != nil {
		emitStatement(w, n.Update)
	}
	w.Dedent()
}

// emitSwitch has no native counterpart in Python; it lowers to an
// if/elif/else chain comparing the discriminant against each case value.
// A SwitchCase's trailing Break (marking "no fallthrough" in the source
// switch) carries no meaning in an if/elif arm and is dropped.
func emitSwitch(w *shared.Writer, s *ir.Switch) {
	for i, c := range s.Cases {
		kw := "if"
		if i > 0 {
			kw = "elif"
		}
		w.Line(fmt.Sprintf("%s %s == %s:", kw, exprText(s.Discriminant), exprText(c.Value)))
		emitBlock(w, dropTrailingBreak(c.Body))
	}
	if s.Default != nil {
		kw := "else"
		if len(s.Cases) == 0 {
			kw = "if True"
		}
		w.Line(kw + ":")
		emitBlock(w, dropTrailingBreak(s.Default))
	}
}

func dropTrailingBreak(body []ir.Statement) []ir.Statement {
	if len(body) == 0 {
		return body
	}
	if _, ok := body[len(body)-1].(*ir.Break); ok {
		return body[:len(body)-1]
	}
	return body
}

// emitFunctionDef always reprepends "self" to a method's parameter list
// regardless of the source language, since only PY's own parser strips
// it at parse time — a method inherited from a CPP/JV class never had
// an implicit receiver parameter to strip in the first place.
func emitFunctionDef(w *shared.Writer, fn *ir.Function, isMethod bool) {
	params := make([]string, 0, len(fn.Params)+1)
	if isMethod {
		params = append(params, "self")
	}
	for _, p := range fn.Params {
		params = append(params, p.Name)
	}
	w.Line(fmt.Sprintf("def %s(%s):", fn.Name, strings.Join(params, ", ")))
	emitBlock(w, fn.Body)
}

func emitClass(w *shared.Writer, c *ir.Class) {
	w.Line(fmt.Sprintf("class %s:", c.Name))
	w.Indent()
	if c.Constructor == nil && len(c.Methods) == 0 && len(c.StaticMethods) == 0 && c.EntryPoint == nil {
		w.Line("pass")
	}
	if c.Constructor != nil {
		ctor := &ir.Function{Name: "__init__", Params: c.Constructor.Params, Body: c.Constructor.Body}
		emitFunctionDef(w, ctor, true)
	}
	for _, m := range c.Methods {
		emitFunctionDef(w, m, true)
	}
	for _, m := range c.StaticMethods {
		w.Line("@staticmethod")
		emitFunctionDef(w, m, false)
	}
	if c.EntryPoint != nil {
		w.Line("@staticmethod")
		emitFunctionDef(w, c.EntryPoint, false)
	}
	w.Dedent()
}

// printText implements the Print shared emission contract's scripting
// spelling: print(a, b, …[, end='']), recomposing a
// decomposed literal/value sequence back into a single f-string.
func printText(p *ir.Print) string {
	var inner string
	if shared.LooksDecomposed(p.Args) {
		inner = "f" + shared.QuoteString(fstringBody(p.Args))
	} else {
		parts := make([]string, len(p.Args))
		for i, a := range p.Args {
			parts[i] = exprText(a)
		}
		inner = strings.Join(parts, ", ")
	}
	if !p.Newline {
		if inner == "" {
			inner = `end=''`
		} else {
			inner += `, end=''`
		}
	}
	return fmt.Sprintf("print(%s)", inner)
}

func fstringBody(args []ir.Expression) string {
	var b strings.Builder
	for _, a := range args {
		if text, ok := shared.StringLiteralText(a); ok {
			b.WriteString(text)
			continue
		}
		b.WriteByte('{')
		b.WriteString(exprText(a))
		b.WriteByte('}')
	}
	return b.String()
}

func exprText(e ir.Expression) string {
	switch v := e.(type) {
	case nil:
		return "None"
	case *ir.Literal:
		return literalText(v)
	case *ir.Identifier:
		return v.Name
	case *ir.BinaryOp:
		return binaryOpText(v)
	case *ir.UnaryOp:
		return unaryOpText(v)
	case *ir.Call:
		return callText(v)
	case *ir.Input:
		return inputText(v)
	default:
		return ""
	}
}

func literalText(v *ir.Literal) string {
	switch v.Type {
	case ir.String, ir.Char:
		s, _ := v.Value.(string)
		return shared.QuoteString(s)
	case ir.Bool:
		b, _ := v.Value.(bool)
		if b {
			return "True"
		}
		return "False"
	case ir.Void:
		return "None"
	default:
		f, _ := v.Value.(float64)
		return shared.NumberText(f)
	}
}

var pyBinaryOp = map[string]string{
	"&&": "and",
	"||": "or",
}

func binaryOpText(v *ir.BinaryOp) string {
	op := v.Operator
	if w, ok := pyBinaryOp[op]; ok {
		op = w
	}
	l, r := exprText(v.Left), exprText(v.Right)
	if childPrecedence(v.Left) < precedence.OfOperator(v.Operator) {
		l = "(" + l + ")"
	}
	if childPrecedence(v.Right) < precedence.OfOperator(v.Operator) {
		r = "(" + r + ")"
	}
	return fmt.Sprintf("%s %s %s", l, op, r)
}

func childPrecedence(e ir.Expression) precedence.Level {
	bin, ok := e.(*ir.BinaryOp)
	if !ok {
		return precedence.Primary
	}
	return precedence.OfOperator(bin.Operator)
}

func unaryOpText(v *ir.UnaryOp) string {
	switch v.Operator {
	case "!":
		return "not " + exprText(v.Operand)
	case "++", "++_post":
		return exprText(v.Operand) + " + 1"
	case "--", "--_post":
		return exprText(v.Operand) + " - 1"
	case "&", "*":
		return exprText(v.Operand)
	default:
		return v.Operator + exprText(v.Operand)
	}
}

func callText(v *ir.Call) string {
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = exprText(a)
	}
	name := v.Callee
	if v.IsMethod {
		name = v.Receiver + "." + v.Callee
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// inputText renders an Input the way the py front-end itself parses
// input()/int(input())/float(input()), so self-checking a
// PY source file's own IR through this emitter round-trips identically.
func inputText(v *ir.Input) string {
	prompt := ""
	if v.HasPrompt {
		prompt = shared.QuoteString(v.Prompt)
	}
	call := fmt.Sprintf("input(%s)", prompt)
	switch v.TargetType {
	case ir.Int:
		return "int(" + call + ")"
	case ir.Float, ir.Double:
		return "float(" + call + ")"
	default:
		return call
	}
}
