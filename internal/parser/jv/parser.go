// Package jv implements the JV front-end: a brace-delimited,
// class-based recursive descent parser. Every top-level
// declaration is a class; a `public static void main` method becomes
// the class's EntryPoint, other static methods become StaticMethods,
// and Scanner-style `nextInt()/nextFloat()/nextDouble()/nextLine()`
// calls are recognized directly into ir.Input.
package jv

import (
	"strings"

	"github.com/cwbudde/polytrans/internal/idiom"
	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/internal/lexer"
	"github.com/cwbudde/polytrans/internal/parser/precedence"
	"github.com/cwbudde/polytrans/internal/parser/shared"
	"github.com/cwbudde/polytrans/internal/token"
)

type Parser struct {
	c *shared.Cursor
}

// New creates a Parser over JV source text.
func New(source string) *Parser {
	spec := langspec.MustLoad(langspec.JV)
	lx := lexer.New(source, spec)
	return &Parser{c: shared.NewCursor(lx)}
}

// Parse consumes the whole compilation unit. package/
// import lines are captured verbatim as Program.Imports, same
// treatment as every other front-end.
func (p *Parser) Parse() (*ir.Program, []shared.ParseError) {
	prog := &ir.Program{}
	for p.c.GuardIteration() {
		switch {
		case p.c.CurIs(token.EOF, ""):
			return prog, p.c.Errors
		case p.c.CurIs(token.KEYWORD, "package"), p.c.CurIs(token.KEYWORD, "import"):
			prog.Imports = append(prog.Imports, p.captureLineVerbatim())
		case p.c.Cur.Kind == token.COMMENT:
			prog.Body = append(prog.Body, p.parseComment(false))
		case p.c.Cur.Kind == token.MULTILINE_COMMENT:
			prog.Body = append(prog.Body, p.parseComment(true))
		default:
			prog.Body = append(prog.Body, p.parseClass())
		}
	}
	return prog, p.c.Errors
}

func (p *Parser) parseComment(multiline bool) *ir.Comment {
	text := p.c.Cur.Literal
	p.c.Advance()
	return &ir.Comment{Text: text, Multiline: multiline}
}

func (p *Parser) captureLineVerbatim() string {
	var sb strings.Builder
	for !p.c.CurIs(token.PUNCTUATION, ";") && !p.c.CurIs(token.EOF, "") {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.c.Cur.Literal)
		p.c.Advance()
	}
	p.consumeSemicolon()
	return sb.String()
}

func (p *Parser) consumeSemicolon() {
	if p.c.CurIs(token.PUNCTUATION, ";") {
		p.c.Advance()
	}
}

func (p *Parser) expectPunct(lit string) {
	if p.c.CurIs(token.PUNCTUATION, lit) {
		p.c.Advance()
		return
	}
	p.c.AddError("expected '" + lit + "', got " + p.c.Cur.Literal)
}

func isAssignOp(lit string) bool {
	switch lit {
	case "+=", "-=", "*=", "/=":
		return true
	}
	return false
}

func mapJVType(lit string) (ir.DataType, bool) {
	switch lit {
	case "int":
		return ir.Int, true
	case "float":
		return ir.Float, true
	case "double":
		return ir.Double, true
	case "char":
		return ir.Char, true
	case "boolean":
		return ir.Bool, true
	case "String":
		return ir.String, true
	case "void":
		return ir.Void, true
	}
	return "", false
}

// consumeModifiers consumes a run of access/storage modifier keywords
// and reports whether "static" appeared among them.
func (p *Parser) consumeModifiers() bool {
	isStatic := false
	for p.c.CurIs(token.KEYWORD, "public") || p.c.CurIs(token.KEYWORD, "private") ||
		p.c.CurIs(token.KEYWORD, "protected") || p.c.CurIs(token.KEYWORD, "static") ||
		p.c.CurIs(token.KEYWORD, "final") {
		if p.c.Cur.Literal == "static" {
			isStatic = true
		}
		p.c.Advance()
	}
	return isStatic
}

// parseTypeToken recognizes either a built-in JV type keyword or a
// custom class-name type (an IDENTIFIER immediately followed by
// another IDENTIFIER, e.g. "Scanner sc" — two identifiers in a row never
// occurs elsewhere in this grammar, so the lookahead is unambiguous).
// Trailing array brackets are consumed and discarded.
func (p *Parser) parseTypeToken() (ir.DataType, bool) {
	if p.c.Cur.Kind == token.KEYWORD {
		t, ok := mapJVType(p.c.Cur.Literal)
		if !ok {
			return "", false
		}
		p.c.Advance()
		for p.c.CurIs(token.PUNCTUATION, "[") {
			p.c.Advance()
			p.expectPunct("]")
		}
		return t, true
	}
	if p.c.Cur.Kind == token.IDENTIFIER && p.c.Peek1.Kind == token.IDENTIFIER {
		p.c.Advance()
		return ir.Auto, true
	}
	return "", false
}

func (p *Parser) parseClass() *ir.Class {
	p.consumeModifiers()
	if p.c.CurIs(token.KEYWORD, "class") {
		p.c.Advance()
	} else {
		p.c.AddError("expected 'class', got " + p.c.Cur.Literal)
	}
	name := p.c.Cur.Literal
	p.c.Advance()
	p.expectPunct("{")

	class := &ir.Class{Name: name}
	for !p.c.CurIs(token.PUNCTUATION, "}") && !p.c.CurIs(token.EOF, "") && p.c.GuardIteration() {
		p.parseClassMember(class, name)
	}
	p.expectPunct("}")
	return class
}

func (p *Parser) parseClassMember(class *ir.Class, className string) {
	if p.c.Cur.Kind == token.COMMENT || p.c.Cur.Kind == token.MULTILINE_COMMENT {
		p.c.Advance()
		return
	}
	isStatic := p.consumeModifiers()

	if p.c.Cur.Kind == token.IDENTIFIER && p.c.Cur.Literal == className && p.c.PeekIs(token.PUNCTUATION, "(") {
		p.c.Advance()
		params := p.parseParamList()
		body := p.parseBraceBlock()
		class.Constructor = &ir.Function{Name: ir.ConstructorName, Params: params, ReturnType: ir.Void, Body: body}
		return
	}

	typ, ok := p.parseTypeToken()
	if !ok {
		p.c.AddError("unexpected token in class body: " + p.c.Cur.Literal)
		p.c.Advance()
		return
	}
	name := p.c.Cur.Literal
	p.c.Advance()

	if p.c.CurIs(token.PUNCTUATION, "(") {
		params := p.parseParamList()
		body := p.parseBraceBlock()
		fn := &ir.Function{Name: name, Params: params, ReturnType: typ, Body: body}
		switch {
		case name == "main" && isStatic:
			class.EntryPoint = fn
		case isStatic:
			class.StaticMethods = append(class.StaticMethods, fn)
		default:
			class.Methods = append(class.Methods, fn)
		}
		return
	}

	for p.c.CurIs(token.PUNCTUATION, "[") {
		p.c.Advance()
		p.expectPunct("]")
	}
	var init ir.Expression
	if p.c.CurIs(token.PUNCTUATION, "=") {
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	}
	p.consumeSemicolon()
	class.Members = append(class.Members, &ir.Variable{Name: name, Type: typ, Initializer: init})
}

func (p *Parser) parseParamList() []*ir.Variable {
	p.expectPunct("(")
	var params []*ir.Variable
	for !p.c.CurIs(token.PUNCTUATION, ")") && !p.c.CurIs(token.EOF, "") {
		typ, ok := p.parseTypeToken()
		if !ok {
			p.c.Advance()
			continue
		}
		pname := p.c.Cur.Literal
		p.c.Advance()
		params = append(params, &ir.Variable{Name: pname, Type: typ})
		if p.c.CurIs(token.PUNCTUATION, ",") {
			p.c.Advance()
			continue
		}
		break
	}
	p.expectPunct(")")
	return params
}

func (p *Parser) parseBraceBlock() []ir.Statement {
	p.expectPunct("{")
	var stmts []ir.Statement
	for !p.c.CurIs(token.PUNCTUATION, "}") && !p.c.CurIs(token.EOF, "") && p.c.GuardIteration() {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expectPunct("}")
	return stmts
}

func (p *Parser) parseStatementOrBlock() []ir.Statement {
	if p.c.CurIs(token.PUNCTUATION, "{") {
		return p.parseBraceBlock()
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	return []ir.Statement{stmt}
}

func (p *Parser) parseStatement() ir.Statement {
	switch {
	case p.c.Cur.Kind == token.COMMENT:
		return p.parseComment(false)
	case p.c.Cur.Kind == token.MULTILINE_COMMENT:
		return p.parseComment(true)
	case p.c.CurIs(token.PUNCTUATION, ";"):
		p.c.Advance()
		return nil
	case p.c.CurIs(token.KEYWORD, "if"):
		return p.parseIf()
	case p.c.CurIs(token.KEYWORD, "for"):
		return p.parseFor()
	case p.c.CurIs(token.KEYWORD, "while"):
		return p.parseWhile()
	case p.c.CurIs(token.KEYWORD, "switch"):
		return p.parseSwitch()
	case p.c.CurIs(token.KEYWORD, "return"):
		return p.parseReturn()
	case p.c.CurIs(token.KEYWORD, "break"):
		p.c.Advance()
		p.consumeSemicolon()
		return &ir.Break{}
	case p.c.CurIs(token.KEYWORD, "System"):
		return p.parseSystemOutCall()
	default:
		if typ, ok := p.tryParseLocalType(); ok {
			return p.parseLocalDeclaration(typ)
		}
		return p.parseExprOrAssignStatement()
	}
}

// tryParseLocalType mirrors parseTypeToken but never consumes tokens
// when the lookahead doesn't signal a declaration, so callers can fall
// back to statement parsing.
func (p *Parser) tryParseLocalType() (ir.DataType, bool) {
	if p.c.Cur.Kind == token.KEYWORD {
		if t, ok := mapJVType(p.c.Cur.Literal); ok {
			p.c.Advance()
			for p.c.CurIs(token.PUNCTUATION, "[") {
				p.c.Advance()
				p.expectPunct("]")
			}
			return t, true
		}
		return "", false
	}
	if p.c.Cur.Kind == token.IDENTIFIER && p.c.Peek1.Kind == token.IDENTIFIER {
		p.c.Advance()
		return ir.Auto, true
	}
	return "", false
}

func (p *Parser) parseLocalDeclaration(typ ir.DataType) ir.Statement {
	name := p.c.Cur.Literal
	p.c.Advance()
	var init ir.Expression
	if p.c.CurIs(token.PUNCTUATION, "=") {
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	}
	p.consumeSemicolon()
	return &ir.Variable{Name: name, Type: typ, Initializer: init}
}

func (p *Parser) parseLHSName() string {
	var name string
	if p.c.CurIs(token.KEYWORD, "this") {
		name = "self"
	} else {
		name = p.c.Cur.Literal
	}
	p.c.Advance()
	for p.c.CurIs(token.PUNCTUATION, ".") {
		p.c.Advance()
		name += "." + p.c.Cur.Literal
		p.c.Advance()
	}
	return name
}

func (p *Parser) parseExprOrAssignStatement() ir.Statement {
	if p.c.Cur.Kind == token.IDENTIFIER || p.c.CurIs(token.KEYWORD, "this") {
		name := p.parseLHSName()
		switch {
		case p.c.Cur.Kind == token.OPERATOR && isAssignOp(p.c.Cur.Literal):
			op := p.c.Cur.Literal
			p.c.Advance()
			value := p.parseExpression(precedence.Lowest)
			p.consumeSemicolon()
			return &ir.Assignment{Target: name, Op: op, Value: value}
		case p.c.CurIs(token.PUNCTUATION, "="):
			p.c.Advance()
			value := p.parseExpression(precedence.Lowest)
			p.consumeSemicolon()
			return &ir.Assignment{Target: name, Op: "=", Value: value}
		case p.c.CurIs(token.OPERATOR, "++"), p.c.CurIs(token.OPERATOR, "--"):
			op := p.c.Cur.Literal + "_post"
			p.c.Advance()
			p.consumeSemicolon()
			return &ir.ExprStatement{X: &ir.UnaryOp{Operator: op, Operand: &ir.Identifier{Name: name}}}
		case p.c.CurIs(token.PUNCTUATION, "("):
			args := p.parseArgs()
			p.consumeSemicolon()
			if t, ok := scannerMethodType(methodName(name)); ok {
				return &ir.Input{TargetType: t}
			}
			if idx := strings.LastIndex(name, "."); idx >= 0 {
				return &ir.Call{Callee: name[idx+1:], Args: args, IsMethod: true, Receiver: name[:idx]}
			}
			return &ir.Call{Callee: name, Args: args}
		default:
			p.consumeSemicolon()
			return &ir.ExprStatement{X: &ir.Identifier{Name: name}}
		}
	}
	expr := p.parseExpression(precedence.Lowest)
	p.consumeSemicolon()
	return &ir.ExprStatement{X: expr}
}

func methodName(dotted string) string {
	if idx := strings.LastIndex(dotted, "."); idx >= 0 {
		return dotted[idx+1:]
	}
	return dotted
}

// scannerMethodType maps java.util.Scanner's primitive-read methods to
// the Input's inferred target type.
func scannerMethodType(method string) (ir.DataType, bool) {
	switch method {
	case "nextInt":
		return ir.Int, true
	case "nextFloat":
		return ir.Float, true
	case "nextDouble":
		return ir.Double, true
	case "nextLine":
		return ir.String, true
	}
	return "", false
}

func (p *Parser) parseIf() *ir.If {
	p.c.Advance() // 'if'
	p.expectPunct("(")
	cond := p.parseExpression(precedence.Lowest)
	p.expectPunct(")")
	node := &ir.If{Condition: cond, Then: p.parseStatementOrBlock()}
	if p.c.CurIs(token.KEYWORD, "else") {
		p.c.Advance()
		if p.c.CurIs(token.KEYWORD, "if") {
			node.ElseIf = p.parseIf()
		} else {
			node.Else = p.parseStatementOrBlock()
		}
	}
	return node
}

func (p *Parser) parseFor() *ir.For {
	p.c.Advance() // 'for'
	p.expectPunct("(")

	var init ir.Statement
	if p.c.CurIs(token.PUNCTUATION, ";") {
		p.c.Advance()
	} else if typ, ok := p.tryParseLocalType(); ok {
		init = p.parseForInitDeclaration(typ)
	} else {
		init = p.parseForInitAssignment()
	}

	var cond ir.Expression
	if !p.c.CurIs(token.PUNCTUATION, ";") {
		cond = p.parseExpression(precedence.Lowest)
	}
	p.expectPunct(";")

	var update ir.Statement
	if !p.c.CurIs(token.PUNCTUATION, ")") {
		update = p.parseForUpdate()
	}
	p.expectPunct(")")

	body := p.parseStatementOrBlock()
	node := &ir.For{Init: init, Condition: cond, Update: update, Body: body}
	if iter, start, end, step, ok := idiom.RecognizeCountedLoop(init, cond, update); ok {
		node.HasRange = true
		node.Iterator = iter
		node.RangeStart, node.RangeEnd, node.RangeStep = start, end, step
	}
	return node
}

func (p *Parser) parseForInitDeclaration(typ ir.DataType) ir.Statement {
	name := p.c.Cur.Literal
	p.c.Advance()
	var init ir.Expression
	if p.c.CurIs(token.PUNCTUATION, "=") {
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	}
	p.expectPunct(";")
	return &ir.Variable{Name: name, Type: typ, Initializer: init}
}

func (p *Parser) parseForInitAssignment() ir.Statement {
	name := p.parseLHSName()
	p.expectPunct("=")
	value := p.parseExpression(precedence.Lowest)
	p.expectPunct(";")
	return &ir.Assignment{Target: name, Op: "=", Value: value}
}

func (p *Parser) parseForUpdate() ir.Statement {
	if p.c.CurIs(token.OPERATOR, "++") || p.c.CurIs(token.OPERATOR, "--") {
		op := p.c.Cur.Literal
		p.c.Advance()
		name := p.parseLHSName()
		return &ir.ExprStatement{X: &ir.UnaryOp{Operator: op, Operand: &ir.Identifier{Name: name}}}
	}
	name := p.parseLHSName()
	switch {
	case p.c.CurIs(token.OPERATOR, "++"), p.c.CurIs(token.OPERATOR, "--"):
		op := p.c.Cur.Literal + "_post"
		p.c.Advance()
		return &ir.ExprStatement{X: &ir.UnaryOp{Operator: op, Operand: &ir.Identifier{Name: name}}}
	case p.c.Cur.Kind == token.OPERATOR && isAssignOp(p.c.Cur.Literal):
		op := p.c.Cur.Literal
		p.c.Advance()
		value := p.parseExpression(precedence.Lowest)
		return &ir.Assignment{Target: name, Op: op, Value: value}
	}
	return &ir.ExprStatement{X: &ir.Identifier{Name: name}}
}

func (p *Parser) parseWhile() *ir.While {
	p.c.Advance() // 'while'
	p.expectPunct("(")
	cond := p.parseExpression(precedence.Lowest)
	p.expectPunct(")")
	return &ir.While{Condition: cond, Body: p.parseStatementOrBlock()}
}

func (p *Parser) parseSwitch() *ir.Switch {
	p.c.Advance() // 'switch'
	p.expectPunct("(")
	disc := p.parseExpression(precedence.Lowest)
	p.expectPunct(")")
	p.expectPunct("{")
	sw := &ir.Switch{Discriminant: disc}
	for !p.c.CurIs(token.PUNCTUATION, "}") && !p.c.CurIs(token.EOF, "") && p.c.GuardIteration() {
		switch {
		case p.c.CurIs(token.KEYWORD, "case"):
			p.c.Advance()
			val := p.parseExpression(precedence.Lowest)
			p.expectPunct(":")
			sw.Cases = append(sw.Cases, ir.SwitchCase{Value: val, Body: p.parseCaseBody()})
		case p.c.CurIs(token.KEYWORD, "default"):
			p.c.Advance()
			p.expectPunct(":")
			sw.Default = p.parseCaseBody()
		default:
			p.c.Advance()
		}
	}
	p.expectPunct("}")
	return sw
}

func (p *Parser) parseCaseBody() []ir.Statement {
	var stmts []ir.Statement
	for !p.c.CurIs(token.KEYWORD, "case") && !p.c.CurIs(token.KEYWORD, "default") &&
		!p.c.CurIs(token.PUNCTUATION, "}") && !p.c.CurIs(token.EOF, "") && p.c.GuardIteration() {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *Parser) parseReturn() *ir.Return {
	p.c.Advance() // 'return'
	if p.c.CurIs(token.PUNCTUATION, ";") {
		p.c.Advance()
		return &ir.Return{}
	}
	val := p.parseExpression(precedence.Lowest)
	p.consumeSemicolon()
	return &ir.Return{Value: val}
}

// parseSystemOutCall recognizes `System.out.println(...)` /
// `System.out.print(...)`.
func (p *Parser) parseSystemOutCall() *ir.Print {
	p.c.Advance() // 'System'
	p.expectPunct(".")
	p.c.Advance() // 'out'
	p.expectPunct(".")
	method := p.c.Cur.Literal
	p.c.Advance()
	args := p.parseArgs()
	p.consumeSemicolon()
	return &ir.Print{Args: args, Newline: method == "println"}
}
