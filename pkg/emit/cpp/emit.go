// Package cpp implements the CPP back-end.
package cpp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/polytrans/internal/infer"
	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/parser/precedence"
	"github.com/cwbudde/polytrans/pkg/emit/shared"
)

// Emit renders prog as CPP source text.
func Emit(prog *ir.Program) string {
	w := shared.NewWriter("    ")
	for _, stmt := range prog.Body {
		emitTopLevel(w, stmt)
	}
	return w.String()
}

func emitTopLevel(w *shared.Writer, stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.Class:
		if s.IsEntryPointShell() {
			for _, fn := range s.StaticMethods {
				emitFunctionDef(w, fn)
				w.Blank()
			}
			emitMainFunction(w, s.EntryPoint)
			return
		}
		emitClass(w, s)
	case *ir.Function:
		if s.Name == "main" {
			emitMainFunction(w, s)
			return
		}
		emitFunctionDef(w, s)
	default:
		emitStatement(w, stmt)
	}
}

func emitMainFunction(w *shared.Writer, fn *ir.Function) {
	w.Line("int main() {")
	w.Indent()
	for _, stmt := range fn.Body {
		emitStatement(w, stmt)
	}
	if !endsInReturn(fn.Body) {
		w.Line("return 0;")
	}
	w.Dedent()
	w.Line("}")
}

func endsInReturn(body []ir.Statement) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ir.Return)
	return ok
}

func emitFunctionDef(w *shared.Writer, fn *ir.Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s %s", typeKeyword(p.Type), p.Name)
	}
	ret := fn.ReturnType
	if ret == "" {
		ret = ir.Void
	}
	w.Line(fmt.Sprintf("%s %s(%s) {", typeKeyword(ret), fn.Name, strings.Join(params, ", ")))
	w.Indent()
	for _, stmt := range fn.Body {
		emitStatement(w, stmt)
	}
	w.Dedent()
	w.Line("}")
}

func typeKeyword(t ir.DataType) string {
	switch t {
	case ir.Int:
		return "int"
	case ir.Float:
		return "float"
	case ir.Double:
		return "double"
	case ir.Char:
		return "char"
	case ir.Bool:
		return "bool"
	case ir.String:
		return "string"
	case ir.Void, ir.Auto, "":
		return "void"
	default:
		return "auto"
	}
}

func emitClass(w *shared.Writer, c *ir.Class) {
	w.Line(fmt.Sprintf("class %s {", c.Name))
	if len(c.Members) > 0 {
		w.Line("private:")
		w.Indent()
		for _, m := range c.Members {
			w.Line(fmt.Sprintf("%s %s;", typeKeyword(m.Type), m.Name))
		}
		w.Dedent()
	}
	w.Line("public:")
	w.Indent()
	if c.Constructor != nil {
		params := make([]string, len(c.Constructor.Params))
		for i, p := range c.Constructor.Params {
			params[i] = fmt.Sprintf("%s %s", typeKeyword(p.Type), p.Name)
		}
		w.Line(fmt.Sprintf("%s(%s) {", c.Name, strings.Join(params, ", ")))
		w.Indent()
		for _, init := range defaultMemberInits(c) {
			emitStatement(w, init)
		}
		for _, stmt := range c.Constructor.Body {
			emitStatement(w, stmt)
		}
		w.Dedent()
		w.Line("}")
	}
	for _, m := range c.Methods {
		emitFunctionDef(w, m)
	}
	w.Dedent()
	w.Line("};")
}

// assignedMembers collects the member names already targeted by a
// top-level assignment in a constructor body.
func assignedMembers(body []ir.Statement) map[string]bool {
	assigned := map[string]bool{}
	for _, stmt := range body {
		asg, ok := stmt.(*ir.Assignment)
		if !ok || !strings.HasPrefix(asg.Target, "self.") {
			continue
		}
		assigned[strings.TrimPrefix(asg.Target, "self.")] = true
	}
	return assigned
}

// defaultMemberInits builds the implicit "this->x = <zero value>;"
// assignments for every member the constructor body never targets
// directly, so the constructor still initializes each member to its
// data type's default value before running its own body.
func defaultMemberInits(c *ir.Class) []*ir.Assignment {
	assigned := assignedMembers(c.Constructor.Body)
	var inits []*ir.Assignment
	for _, m := range c.Members {
		if assigned[m.Name] {
			continue
		}
		inits = append(inits, &ir.Assignment{Target: "self." + m.Name, Op: "=", Value: infer.ZeroValueLiteral(m.Type)})
	}
	return inits
}

func emitStatement(w *shared.Writer, stmt ir.Statement) {
	switch s := stmt.(type) {
	case *ir.Comment:
		emitComment(w, s)
	case *ir.Variable:
		emitVariable(w, s)
	case *ir.Assignment:
		w.Line(fmt.Sprintf("%s %s %s;", remapSelf(s.Target), s.Op, exprText(s.Value)))
	case *ir.If:
		emitIf(w, s)
	case *ir.For:
		emitFor(w, s)
	case *ir.While:
		w.Line(fmt.Sprintf("while (%s) {", exprText(s.Condition)))
		emitBody(w, s.Body)
		w.Line("}")
	case *ir.Switch:
		emitSwitch(w, s)
	case *ir.Break:
		w.Line("break;")
	case *ir.Return:
		if s.Value == nil {
			w.Line("return;")
		} else {
			w.Line("return " + exprText(s.Value) + ";")
		}
	case *ir.Print:
		w.Line(coutText(s) + ";")
	case *ir.Input:
		w.Line(cinText(s) + ";")
	case *ir.Call:
		w.Line(exprText(s) + ";")
	case *ir.ExprStatement:
		w.Line(exprText(s.X) + ";")
	case *ir.Function:
		emitFunctionDef(w, s)
	default:
	}
}

func emitComment(w *shared.Writer, c *ir.Comment) {
	if c.Multiline {
		w.Line("/*" + c.Text + "*/")
		return
	}
	for _, line := range strings.Split(c.Text, "\n") {
		w.Line("//" + strings.TrimPrefix(strings.TrimPrefix(line, "//"), "#"))
	}
}

func emitVariable(w *shared.Writer, v *ir.Variable) {
	typ := v.Type
	if typ == "" || typ == ir.Auto {
		typ = infer.OfExpression(v.Initializer)
		if typ == "" || typ == ir.Auto {
			typ = ir.Int
		}
	}
	if v.Initializer == nil {
		w.Line(fmt.Sprintf("%s %s;", typeKeyword(typ), v.Name))
		return
	}
	w.Line(fmt.Sprintf("%s %s = %s;", typeKeyword(typ), v.Name, exprText(v.Initializer)))
}

func emitBody(w *shared.Writer, body []ir.Statement) {
	w.Indent()
	for _, stmt := range body {
		emitStatement(w, stmt)
	}
	w.Dedent()
}

func emitIf(w *shared.Writer, n *ir.If) {
	w.Line(fmt.Sprintf("if (%s) {", exprText(n.Condition)))
	emitBody(w, n.Then)
	emitElseTail(w, n)
}

func emitElseTail(w *shared.Writer, n *ir.If) {
	if n.ElseIf != nil {
		w.Line("} else if (" + exprText(n.ElseIf.Condition) + ") {")
		emitBody(w, n.ElseIf.Then)
		emitElseTail(w, n.ElseIf)
		return
	}
	if n.Else != nil {
		w.Line("} else {")
		emitBody(w, n.Else)
	}
	w.Line("}")
}

func emitFor(w *shared.Writer, n *ir.For) {
	init, cond, update := "", "", ""
	if n.HasRange {
		init = fmt.Sprintf("int %s = %s", n.Iterator, exprText(n.RangeStart))
		cond = fmt.Sprintf("%s < %s", n.Iterator, exprText(n.RangeEnd))
		update = fmt.Sprintf("%s += %s", n.Iterator, exprText(n.RangeStep))
	} else {
		if v, ok := n.Init.(*ir.Variable); ok {
			init = fmt.Sprintf("%s %s = %s", typeKeyword(v.Type), v.Name, exprText(v.Initializer))
		} else if a, ok := n.Init.(*ir.Assignment); ok {
			init = fmt.Sprintf("%s %s %s", a.Target, a.Op, exprText(a.Value))
		}
		if n.Condition != nil {
			cond = exprText(n.Condition)
		}
		if u, ok := n.Update.(*ir.ExprStatement); ok {
			update = exprText(u.X)
		} else if a, ok := n.Update.(*ir.Assignment); ok {
			update = fmt.Sprintf("%s %s %s", a.Target, a.Op, exprText(a.Value))
		}
	}
	w.Line(fmt.Sprintf("for (%s; %s; %s) {", init, cond, update))
	emitBody(w, n.Body)
	w.Line("}")
}

func emitSwitch(w *shared.Writer, s *ir.Switch) {
	w.Line(fmt.Sprintf("switch (%s) {", exprText(s.Discriminant)))
	w.Indent()
	for _, c := range s.Cases {
		w.Line(fmt.Sprintf("case %s:", exprText(c.Value)))
		w.Indent()
		for _, stmt := range c.Body {
			emitStatement(w, stmt)
		}
		w.Dedent()
	}
	if s.Default != nil {
		w.Line("default:")
		w.Indent()
		for _, stmt := range s.Default {
			emitStatement(w, stmt)
		}
		w.Dedent()
	}
	w.Dedent()
	w.Line("}")
}

// coutText implements the CPP shared emission contract: a chained
// `cout << … << endl?` stream. Unlike C's printf, CPP's
// stream operator already matches the decomposed literal/value shape
// directly, so no recomposition decision is needed.
func coutText(p *ir.Print) string {
	var parts []string
	for _, a := range p.Args {
		parts = append(parts, exprText(a))
	}
	if p.Newline {
		parts = append(parts, "endl")
	}
	return "cout << " + strings.Join(parts, " << ")
}

func cinText(in *ir.Input) string {
	return fmt.Sprintf("cin >> %s", in.TargetName)
}

func exprText(e ir.Expression) string {
	switch v := e.(type) {
	case nil:
		return "0"
	case *ir.Literal:
		return literalText(v)
	case *ir.Identifier:
		return remapSelf(v.Name)
	case *ir.BinaryOp:
		return binaryOpText(v)
	case *ir.UnaryOp:
		return unaryOpText(v)
	case *ir.Call:
		return callText(v)
	case *ir.Input:
		return cinText(v)
	default:
		return ""
	}
}

// remapSelf reverses the CPP front-end's `this->x` → `self.x` parse-time
// normalization so a member reference round-trips back to CPP's own
// spelling.
func remapSelf(name string) string {
	if name == "self" {
		return "this"
	}
	if strings.HasPrefix(name, "self.") {
		return "this->" + strings.TrimPrefix(name, "self.")
	}
	return name
}

func literalText(v *ir.Literal) string {
	switch v.Type {
	case ir.String:
		s, _ := v.Value.(string)
		return shared.QuoteString(s)
	case ir.Char:
		s, _ := v.Value.(string)
		return "'" + s + "'"
	case ir.Bool:
		b, _ := v.Value.(bool)
		if b {
			return "true"
		}
		return "false"
	case ir.Void:
		return "nullptr"
	default:
		f, _ := v.Value.(float64)
		return shared.NumberText(f)
	}
}

func binaryOpText(v *ir.BinaryOp) string {
	l, r := exprText(v.Left), exprText(v.Right)
	if childPrecedence(v.Left) < precedence.OfOperator(v.Operator) {
		l = "(" + l + ")"
	}
	if childPrecedence(v.Right) < precedence.OfOperator(v.Operator) {
		r = "(" + r + ")"
	}
	return fmt.Sprintf("%s %s %s", l, v.Operator, r)
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
	case "++_post", "--_post":
		return exprText(v.Operand) + v.Operator[:2]
	default:
		return v.Operator + exprText(v.Operand)
	}
}

func callText(v *ir.Call) string {
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = exprText(a)
	}
	if v.IsMethod {
		return fmt.Sprintf("%s.%s(%s)", remapSelf(v.Receiver), v.Callee, strings.Join(args, ", "))
	}
	// A capitalized callee with no receiver is the shape `new Type(args)`
	// parses to (cfamily's parsePrimary "new" case); re-spelled here so a
	// CPP class instantiation round-trips through the emitter.
	if looksLikeTypeName(v.Callee) {
		return fmt.Sprintf("new %s(%s)", v.Callee, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", v.Callee, strings.Join(args, ", "))
}

func looksLikeTypeName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
