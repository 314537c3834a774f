// Package py implements the PY front-end: an indentation-based
// recursive-descent parser over the shared lexer/langspec
// infrastructure. Blocks are delimited by a header line
// ending in ":" followed by a run of lines indented deeper than the
// header; a block ends at the first line whose indent falls back to or
// below the header's own indent, or at EOF.
package py

import (
	"strings"

	"github.com/cwbudde/polytrans/internal/idiom"
	"github.com/cwbudde/polytrans/internal/infer"
	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/internal/lexer"
	"github.com/cwbudde/polytrans/internal/parser/precedence"
	"github.com/cwbudde/polytrans/internal/parser/shared"
	"github.com/cwbudde/polytrans/internal/token"
)

// Parser holds the token cursor and the lexically-scoped set of names
// already declared in the current function (or top level), used to
// decide whether a bare `name = value` line is a first declaration or a
// later reassignment.
type Parser struct {
	c      *shared.Cursor
	scopes []map[string]bool

	// interpLiterals marks which *ir.Literal string nodes were built from
	// an f-string token, so print() can decompose them.
	interpLiterals map[*ir.Literal]bool
}

// New creates a Parser over PY source text.
func New(source string) *Parser {
	spec := langspec.MustLoad(langspec.PY)
	lx := lexer.New(source, spec)
	p := &Parser{c: shared.NewCursor(lx), interpLiterals: map[*ir.Literal]bool{}}
	p.pushScope()
	return p
}

// Parse consumes the whole token stream and returns the resulting
// Program along with any non-fatal parse errors accumulated along the
// way. The parser never throws: it always returns a usable, possibly
// partial, tree.
func (p *Parser) Parse() (*ir.Program, []shared.ParseError) {
	prog := &ir.Program{}
	for p.c.GuardIteration() {
		p.skipNewlines()
		if p.c.CurIs(token.EOF, "") {
			break
		}
		if p.c.CurIs(token.KEYWORD, "import") || p.c.CurIs(token.KEYWORD, "from") {
			prog.Imports = append(prog.Imports, p.captureLineVerbatim())
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	return prog, p.c.Errors
}

func (p *Parser) pushScope() { p.scopes = append(p.scopes, map[string]bool{}) }
func (p *Parser) popScope()  { p.scopes = p.scopes[:len(p.scopes)-1] }

func (p *Parser) declare(name string) { p.scopes[len(p.scopes)-1][name] = true }

func (p *Parser) isDeclared(name string) bool {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i][name] {
			return true
		}
	}
	return false
}

func (p *Parser) skipNewlines() {
	for p.c.CurIs(token.NEWLINE, "") {
		p.c.Advance()
	}
}

func (p *Parser) expectNewline() {
	if p.c.CurIs(token.NEWLINE, "") {
		p.c.Advance()
		return
	}
	if p.c.CurIs(token.EOF, "") {
		return
	}
	p.c.AddError("expected newline, got " + p.c.Cur.Literal)
}

func (p *Parser) expectPunct(lit string) {
	if p.c.CurIs(token.PUNCTUATION, lit) {
		p.c.Advance()
		return
	}
	p.c.AddError("expected '" + lit + "', got " + p.c.Cur.Literal)
}

// captureLineVerbatim joins token literals up to the next NEWLINE/EOF,
// used for import/from lines the IR keeps informational-only.
func (p *Parser) captureLineVerbatim() string {
	var sb strings.Builder
	for !p.c.CurIs(token.NEWLINE, "") && !p.c.CurIs(token.EOF, "") {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.c.Cur.Literal)
		p.c.Advance()
	}
	return sb.String()
}

// parseBlock parses statements belonging to a compound header indented
// deeper than parentIndent, stopping at the first line whose indent is
// not strictly greater (or at EOF).
func (p *Parser) parseBlock(parentIndent int) []ir.Statement {
	var stmts []ir.Statement
	for p.c.GuardIteration() {
		p.skipNewlines()
		if p.c.CurIs(token.EOF, "") {
			break
		}
		if p.c.Cur.Indent <= parentIndent {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *Parser) parseStatement() ir.Statement {
	indent := p.c.Cur.Indent
	switch {
	case p.c.Cur.Kind == token.COMMENT:
		return p.parseComment(false)
	case p.c.Cur.Kind == token.MULTILINE_COMMENT:
		return p.parseComment(true)
	case p.c.CurIs(token.KEYWORD, "def"):
		return p.parseFunctionDef(indent)
	case p.c.CurIs(token.KEYWORD, "class"):
		return p.parseClassDef(indent)
	case p.c.CurIs(token.KEYWORD, "if"):
		return p.parseIf(indent)
	case p.c.CurIs(token.KEYWORD, "for"):
		return p.parseFor(indent)
	case p.c.CurIs(token.KEYWORD, "while"):
		return p.parseWhile(indent)
	case p.c.CurIs(token.KEYWORD, "return"):
		return p.parseReturn()
	case p.c.CurIs(token.KEYWORD, "break"):
		p.c.Advance()
		return &ir.Break{}
	case p.c.CurIs(token.KEYWORD, "continue"), p.c.CurIs(token.KEYWORD, "pass"):
		p.c.Advance()
		return nil
	case p.c.CurIs(token.KEYWORD, "print"):
		return p.parsePrintStatement()
	case p.c.CurIs(token.KEYWORD, "const"):
		return p.parseConstDecl()
	case p.c.CurIs(token.KEYWORD, "import"), p.c.CurIs(token.KEYWORD, "from"):
		p.captureLineVerbatim()
		return nil
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseComment(multiline bool) *ir.Comment {
	text := p.c.Cur.Literal
	p.c.Advance()
	return &ir.Comment{Text: text, Multiline: multiline}
}

func (p *Parser) parseConstDecl() ir.Statement {
	p.c.Advance() // 'const'
	name := p.c.Cur.Literal
	p.c.Advance()
	p.expectPunct("=")
	value := p.parseExpression(precedence.Lowest)
	p.declare(name)
	return &ir.Variable{Name: name, Type: infer.OfExpression(value), Initializer: value, Const: true}
}

func isAssignOp(lit string) bool {
	switch lit {
	case "+=", "-=", "*=", "/=":
		return true
	}
	return false
}

func (p *Parser) parseSimpleStatement() ir.Statement {
	if p.c.Cur.Kind == token.IDENTIFIER || p.c.CurIs(token.KEYWORD, "self") {
		name := p.c.Cur.Literal
		p.c.Advance()
		for p.c.CurIs(token.PUNCTUATION, ".") {
			p.c.Advance()
			name += "." + p.c.Cur.Literal
			p.c.Advance()
		}

		switch {
		case p.c.Cur.Kind == token.OPERATOR && isAssignOp(p.c.Cur.Literal):
			op := p.c.Cur.Literal
			p.c.Advance()
			value := p.parseExpression(precedence.Lowest)
			return p.buildAssignmentOrDeclaration(name, op, value)
		case p.c.CurIs(token.PUNCTUATION, "="):
			p.c.Advance()
			value := p.parseExpression(precedence.Lowest)
			return p.buildAssignmentOrDeclaration(name, "=", value)
		case p.c.CurIs(token.PUNCTUATION, "("):
			args := p.parseArgs()
			if idx := strings.LastIndex(name, "."); idx >= 0 {
				return &ir.Call{Callee: name[idx+1:], Args: args, IsMethod: true, Receiver: name[:idx]}
			}
			return &ir.Call{Callee: name, Args: args}
		default:
			return &ir.ExprStatement{X: &ir.Identifier{Name: name}}
		}
	}

	expr := p.parseExpression(precedence.Lowest)
	return &ir.ExprStatement{X: expr}
}

func (p *Parser) buildAssignmentOrDeclaration(name, op string, value ir.Expression) ir.Statement {
	if op == "=" && !strings.Contains(name, ".") && !p.isDeclared(name) {
		p.declare(name)
		return &ir.Variable{Name: name, Type: infer.OfExpression(value), Initializer: value}
	}
	return &ir.Assignment{Target: name, Op: op, Value: value}
}

func (p *Parser) parseIf(indent int) *ir.If {
	p.c.Advance() // 'if'
	cond := p.parseExpression(precedence.Lowest)
	p.expectPunct(":")
	p.expectNewline()
	node := &ir.If{Condition: cond, Then: p.parseBlock(indent)}

	cur := node
	for p.c.GuardIteration() {
		p.skipNewlines()
		if p.c.Cur.Indent != indent {
			break
		}
		if p.c.CurIs(token.KEYWORD, "elif") {
			p.c.Advance()
			c2 := p.parseExpression(precedence.Lowest)
			p.expectPunct(":")
			p.expectNewline()
			next := &ir.If{Condition: c2, Then: p.parseBlock(indent)}
			cur.ElseIf = next
			cur = next
			continue
		}
		if p.c.CurIs(token.KEYWORD, "else") {
			p.c.Advance()
			p.expectPunct(":")
			p.expectNewline()
			cur.Else = p.parseBlock(indent)
		}
		break
	}
	return node
}

func (p *Parser) parseFor(indent int) *ir.For {
	p.c.Advance() // 'for'
	iterName := p.c.Cur.Literal
	p.c.Advance()
	if p.c.CurIs(token.KEYWORD, "in") {
		p.c.Advance()
	} else {
		p.c.AddError("expected 'in' in for statement")
	}

	node := &ir.For{Iterator: iterName}
	if p.c.CurIs(token.KEYWORD, "range") {
		p.c.Advance()
		args := p.parseArgs()
		one := &ir.Literal{Type: ir.Int, Value: float64(1)}
		zero := &ir.Literal{Type: ir.Int, Value: float64(0)}
		switch len(args) {
		case 1:
			node.RangeStart, node.RangeEnd, node.RangeStep = zero, args[0], one
		case 2:
			node.RangeStart, node.RangeEnd, node.RangeStep = args[0], args[1], one
		case 3:
			node.RangeStart, node.RangeEnd, node.RangeStep = args[0], args[1], args[2]
		}
		node.HasRange = true
	} else {
		node.Condition = p.parseExpression(precedence.Lowest)
	}

	p.expectPunct(":")
	p.expectNewline()
	node.Body = p.parseBlock(indent)
	return node
}

func (p *Parser) parseWhile(indent int) *ir.While {
	p.c.Advance() // 'while'
	cond := p.parseExpression(precedence.Lowest)
	p.expectPunct(":")
	p.expectNewline()
	return &ir.While{Condition: cond, Body: p.parseBlock(indent)}
}

func (p *Parser) parseReturn() *ir.Return {
	p.c.Advance() // 'return'
	if p.c.CurIs(token.NEWLINE, "") || p.c.CurIs(token.EOF, "") {
		return &ir.Return{}
	}
	return &ir.Return{Value: p.parseExpression(precedence.Lowest)}
}

func (p *Parser) parsePrintStatement() *ir.Print {
	p.c.Advance() // 'print'
	p.expectPunct("(")

	newline := true
	var args []ir.Expression
	for !p.c.CurIs(token.PUNCTUATION, ")") && !p.c.CurIs(token.EOF, "") {
		if p.c.Cur.Kind == token.IDENTIFIER && p.c.PeekIs(token.PUNCTUATION, "=") {
			kw := p.c.Cur.Literal
			p.c.Advance() // name
			p.c.Advance() // '='
			value := p.parseExpression(precedence.Lowest)
			if kw == "end" {
				if lit, ok := value.(*ir.Literal); ok {
					if s, ok := lit.Value.(string); ok && s != "\n" {
						newline = false
					}
				}
			}
		} else {
			arg := p.parseExpression(precedence.Lowest)
			if lit, ok := arg.(*ir.Literal); ok && lit.Type == ir.String {
				if pieces, ok := p.splitInterpolated(lit); ok {
					args = append(args, pieces...)
					if p.c.CurIs(token.PUNCTUATION, ",") {
						p.c.Advance()
						continue
					}
					break
				}
			}
			args = append(args, arg)
		}
		if p.c.CurIs(token.PUNCTUATION, ",") {
			p.c.Advance()
			continue
		}
		break
	}
	p.expectPunct(")")
	return &ir.Print{Args: args, Newline: newline}
}

// splitInterpolated decomposes an f-string literal into literal/value
// segments. It only applies to literals built from a token
// the lexer tagged Interpolated; the Parser threads that tag through via
// interpLiterals.
func (p *Parser) splitInterpolated(lit *ir.Literal) ([]ir.Expression, bool) {
	s, ok := lit.Value.(string)
	if !ok || !p.interpLiterals[lit] {
		return nil, false
	}
	return idiom.DecomposeInterpolated(s)
}

func (p *Parser) parseArgs() []ir.Expression {
	p.expectPunct("(")
	var args []ir.Expression
	for !p.c.CurIs(token.PUNCTUATION, ")") && !p.c.CurIs(token.EOF, "") {
		args = append(args, p.parseExpression(precedence.Lowest))
		if p.c.CurIs(token.PUNCTUATION, ",") {
			p.c.Advance()
			continue
		}
		break
	}
	p.expectPunct(")")
	return args
}

func (p *Parser) parseFunctionDef(indent int) *ir.Function {
	p.c.Advance() // 'def'
	name := p.c.Cur.Literal
	p.c.Advance()
	p.expectPunct("(")

	var params []*ir.Variable
	first := true
	for !p.c.CurIs(token.PUNCTUATION, ")") && !p.c.CurIs(token.EOF, "") {
		pname := p.c.Cur.Literal
		p.c.Advance()
		skip := first && pname == "self"
		first = false
		if !skip {
			ptype := ir.DataType("")
			if p.c.CurIs(token.PUNCTUATION, ":") {
				p.c.Advance()
				ptype = parseTypeName(p.c.Cur.Literal)
				p.c.Advance()
			}
			if p.c.CurIs(token.PUNCTUATION, "=") {
				p.c.Advance()
				p.parseExpression(precedence.Lowest)
			}
			if ptype == "" {
				ptype = infer.AutoDefault(infer.ParamPosition)
			}
			params = append(params, &ir.Variable{Name: pname, Type: ptype})
		}
		if p.c.CurIs(token.PUNCTUATION, ",") {
			p.c.Advance()
			continue
		}
		break
	}
	p.expectPunct(")")

	retType := ir.DataType("")
	if p.curIsArrow() {
		p.c.Advance()
		p.c.Advance()
		retType = parseTypeName(p.c.Cur.Literal)
		p.c.Advance()
	}
	if retType == "" {
		retType = ir.Void
	}

	p.expectPunct(":")
	p.expectNewline()
	p.pushScope()
	body := p.parseBlock(indent)
	p.popScope()

	return &ir.Function{Name: name, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) curIsArrow() bool {
	return p.c.CurIs(token.PUNCTUATION, "-") && p.c.PeekIs(token.PUNCTUATION, ">")
}

func (p *Parser) parseClassDef(indent int) *ir.Class {
	p.c.Advance() // 'class'
	name := p.c.Cur.Literal
	p.c.Advance()

	if p.c.CurIs(token.PUNCTUATION, "(") {
		depth := 0
		for p.c.GuardIteration() {
			if p.c.CurIs(token.PUNCTUATION, "(") {
				depth++
			} else if p.c.CurIs(token.PUNCTUATION, ")") {
				depth--
				p.c.Advance()
				if depth == 0 {
					break
				}
				continue
			} else if p.c.CurIs(token.EOF, "") {
				break
			}
			p.c.Advance()
		}
	}

	p.expectPunct(":")
	p.expectNewline()
	p.pushScope()
	body := p.parseBlock(indent)
	p.popScope()

	class := &ir.Class{Name: name}
	for _, stmt := range body {
		fn, ok := stmt.(*ir.Function)
		if !ok {
			continue
		}
		if fn.Name == "__init__" {
			fn.Name = ir.ConstructorName
			class.Constructor = fn
			class.Members = append(class.Members, extractMembers(fn)...)
			continue
		}
		class.Methods = append(class.Methods, fn)
	}
	return class
}

// extractMembers promotes `self.x = value` assignments made directly in
// the constructor body into the class's member list.
func extractMembers(ctor *ir.Function) []*ir.Variable {
	seen := map[string]bool{}
	var members []*ir.Variable
	for _, stmt := range ctor.Body {
		asg, ok := stmt.(*ir.Assignment)
		if !ok || !strings.HasPrefix(asg.Target, "self.") {
			continue
		}
		name := strings.TrimPrefix(asg.Target, "self.")
		if seen[name] {
			continue
		}
		seen[name] = true
		typ := infer.OfExpression(asg.Value)
		if typ == ir.Auto {
			typ = infer.AutoDefault(infer.MemberPosition)
		}
		members = append(members, &ir.Variable{Name: name, Type: typ})
	}
	return members
}

func parseTypeName(lit string) ir.DataType {
	switch lit {
	case "int":
		return ir.Int
	case "float":
		return ir.Float
	case "str":
		return ir.String
	case "bool":
		return ir.Bool
	default:
		return ir.Auto
	}
}
