// Package cfamily implements the shared C/CPP front-end:
// brace-delimited recursive descent over the common lexer/langspec
// infrastructure, parametrized by a Dialect so the single parser covers
// both C's classless, printf/scanf-based programs and C++'s class
// bodies, cout/cin streams, and `new` expressions.
package cfamily

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

// Dialect selects which of C's or C++'s additional forms (classes,
// cout/cin, new) the parser recognizes.
type Dialect int

const (
	C Dialect = iota
	CPP
)

// Parser holds the token cursor for one C or C++ source unit.
type Parser struct {
	c       *shared.Cursor
	dialect Dialect
}

// New creates a Parser over C or C++ source text.
func New(source string, dialect Dialect) *Parser {
	lang := langspec.C
	if dialect == CPP {
		lang = langspec.CPP
	}
	spec := langspec.MustLoad(lang)
	lx := lexer.New(source, spec)
	return &Parser{c: shared.NewCursor(lx), dialect: dialect}
}

// Parse consumes the whole translation unit. Preprocessor
// lines are captured verbatim as Program.Imports, the same
// treatment as PY's import/from lines.
func (p *Parser) Parse() (*ir.Program, []shared.ParseError) {
	prog := &ir.Program{}
	for p.c.GuardIteration() {
		switch {
		case p.c.CurIs(token.EOF, ""):
			return prog, p.c.Errors
		case p.c.Cur.Kind == token.PREPROCESSOR:
			prog.Imports = append(prog.Imports, p.c.Cur.Literal)
			p.c.Advance()
		case p.c.Cur.Kind == token.COMMENT:
			prog.Body = append(prog.Body, p.parseComment(false))
		case p.c.Cur.Kind == token.MULTILINE_COMMENT:
			prog.Body = append(prog.Body, p.parseComment(true))
		case p.dialect == CPP && p.c.CurIs(token.KEYWORD, "class"):
			prog.Body = append(prog.Body, p.parseClassOrStruct())
		case p.c.CurIs(token.KEYWORD, "struct"):
			prog.Body = append(prog.Body, p.parseClassOrStruct())
		default:
			if stmt := p.parseTopLevelDecl(); stmt != nil {
				prog.Body = append(prog.Body, stmt)
			}
		}
	}
	return prog, p.c.Errors
}

func (p *Parser) parseComment(multiline bool) *ir.Comment {
	text := p.c.Cur.Literal
	p.c.Advance()
	return &ir.Comment{Text: text, Multiline: multiline}
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

// mapTypeKeyword resolves a type keyword's literal text to a DataType.
func mapTypeKeyword(lit string) (ir.DataType, bool) {
	switch lit {
	case "int":
		return ir.Int, true
	case "float":
		return ir.Float, true
	case "double":
		return ir.Double, true
	case "char":
		return ir.Char, true
	case "void":
		return ir.Void, true
	case "bool":
		return ir.Bool, true
	case "string":
		return ir.String, true
	case "auto":
		return ir.Auto, true
	}
	return "", false
}

// tryParseType consumes an optional modifier prefix ("const"/"static")
// followed by a type keyword. When the token after any modifiers is not
// a recognized type keyword it reports ok=false, having consumed only
// those modifiers, so callers can fall back to treating the token as an
// identifier.
func (p *Parser) tryParseType() (ir.DataType, bool, bool) {
	isConst := false
	for p.c.CurIs(token.KEYWORD, "const") || p.c.CurIs(token.KEYWORD, "static") {
		if p.c.Cur.Literal == "const" {
			isConst = true
		}
		p.c.Advance()
	}
	if p.c.Cur.Kind != token.KEYWORD {
		return "", false, false
	}
	t, ok := mapTypeKeyword(p.c.Cur.Literal)
	if !ok {
		return "", false, false
	}
	p.c.Advance()
	for p.c.CurIs(token.PUNCTUATION, "&") || p.c.CurIs(token.PUNCTUATION, "*") {
		p.c.Advance()
	}
	return t, isConst, true
}

func (p *Parser) parseTopLevelDecl() ir.Statement {
	typ, isConst, ok := p.tryParseType()
	if !ok {
		p.c.AddError("unexpected top-level token: " + p.c.Cur.Literal)
		p.c.Advance()
		return nil
	}
	name := p.c.Cur.Literal
	p.c.Advance()
	if p.c.CurIs(token.PUNCTUATION, "(") {
		return p.parseFunctionDef(name, typ)
	}
	var init ir.Expression
	if p.c.CurIs(token.PUNCTUATION, "=") {
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	}
	p.consumeSemicolon()
	return &ir.Variable{Name: name, Type: typ, Initializer: init, Const: isConst}
}

func (p *Parser) parseParamList() []*ir.Variable {
	p.expectPunct("(")
	var params []*ir.Variable
	for !p.c.CurIs(token.PUNCTUATION, ")") && !p.c.CurIs(token.EOF, "") {
		typ, _, ok := p.tryParseType()
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

func (p *Parser) parseFunctionDef(name string, retType ir.DataType) *ir.Function {
	params := p.parseParamList()
	body := p.parseBraceBlock()
	return &ir.Function{Name: name, Params: params, ReturnType: retType, Body: body}
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
	case p.c.CurIs(token.KEYWORD, "printf"):
		return p.parsePrintf()
	case p.c.CurIs(token.KEYWORD, "scanf"):
		return p.parseScanf()
	case p.dialect == CPP && p.c.CurIs(token.KEYWORD, "cout"):
		return p.parseCout()
	case p.dialect == CPP && p.c.CurIs(token.KEYWORD, "cin"):
		return p.parseCin()
	default:
		if typ, isConst, ok := p.tryParseType(); ok {
			return p.parseLocalDeclaration(typ, isConst)
		}
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseLocalDeclaration(typ ir.DataType, isConst bool) ir.Statement {
	name := p.c.Cur.Literal
	p.c.Advance()
	var init ir.Expression
	switch {
	case p.c.CurIs(token.PUNCTUATION, "="):
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	case p.c.CurIs(token.PUNCTUATION, "("):
		init = &ir.Call{Callee: string(typ), Args: p.parseArgs()}
	}
	p.consumeSemicolon()
	return &ir.Variable{Name: name, Type: typ, Initializer: init, Const: isConst}
}

func (p *Parser) parseLHSName() string {
	var name string
	if p.c.CurIs(token.KEYWORD, "this") {
		name = "self"
		p.c.Advance()
	} else {
		name = p.c.Cur.Literal
		p.c.Advance()
	}
	for p.c.CurIs(token.PUNCTUATION, ".") || p.c.CurIs(token.OPERATOR, "->") {
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
			if idx := strings.LastIndex(name, "."); idx >= 0 {
				return &ir.Call{Callee: name[idx+1:], Args: args, IsMethod: true, Receiver: name[:idx]}
			}
			return &ir.Call{Callee: name, Args: args}
		default:
			p.consumeSemicolon()
			return &ir.ExprStatement{X: &ir.Identifier{Name: name}}
		}
	}
	if p.c.CurIs(token.OPERATOR, "++") || p.c.CurIs(token.OPERATOR, "--") {
		op := p.c.Cur.Literal
		p.c.Advance()
		name := p.parseLHSName()
		p.consumeSemicolon()
		return &ir.ExprStatement{X: &ir.UnaryOp{Operator: op, Operand: &ir.Identifier{Name: name}}}
	}
	expr := p.parseExpression(precedence.Lowest)
	p.consumeSemicolon()
	return &ir.ExprStatement{X: expr}
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
	} else if typ, isConst, ok := p.tryParseType(); ok {
		init = p.parseForInitDeclaration(typ, isConst)
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

func (p *Parser) parseForInitDeclaration(typ ir.DataType, isConst bool) ir.Statement {
	name := p.c.Cur.Literal
	p.c.Advance()
	var init ir.Expression
	if p.c.CurIs(token.PUNCTUATION, "=") {
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	}
	p.expectPunct(";")
	return &ir.Variable{Name: name, Type: typ, Initializer: init, Const: isConst}
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

// parsePrintf implements the printf/%-directive decomposition.
func (p *Parser) parsePrintf() *ir.Print {
	p.c.Advance() // 'printf'
	args := p.parseArgs()
	p.consumeSemicolon()
	if len(args) == 0 {
		return &ir.Print{Newline: false}
	}
	formatLit, ok := args[0].(*ir.Literal)
	if !ok || formatLit.Type != ir.String {
		return &ir.Print{Args: args}
	}
	format, _ := formatLit.Value.(string)
	decomposed, newline, _ := idiom.DecomposeFormatDirectives(format, args[1:])
	return &ir.Print{Args: decomposed, Newline: newline}
}

func (p *Parser) parseScanf() *ir.Input {
	p.c.Advance() // 'scanf'
	args := p.parseArgs()
	p.consumeSemicolon()
	in := &ir.Input{}
	if len(args) > 0 {
		if name, ok := addressedIdentifierName(args[len(args)-1]); ok {
			in.TargetName = name
		}
	}
	return in
}

func addressedIdentifierName(e ir.Expression) (string, bool) {
	unary, ok := e.(*ir.UnaryOp)
	if !ok || unary.Operator != "&" {
		return "", false
	}
	ident, ok := unary.Operand.(*ir.Identifier)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// parseCout implements `cout << a << b << endl;` decomposition into the
// same Print shape printf produces.
func (p *Parser) parseCout() *ir.Print {
	p.c.Advance() // 'cout'
	var args []ir.Expression
	newline := false
	for p.c.CurIs(token.OPERATOR, "<<") && p.c.GuardIteration() {
		p.c.Advance()
		if p.c.CurIs(token.KEYWORD, "endl") {
			p.c.Advance()
			newline = true
			continue
		}
		args = append(args, p.parseExpression(precedence.Lowest))
	}
	p.consumeSemicolon()
	return &ir.Print{Args: args, Newline: newline}
}

func (p *Parser) parseCin() *ir.Input {
	p.c.Advance() // 'cin'
	in := &ir.Input{}
	if p.c.CurIs(token.OPERATOR, ">>") {
		p.c.Advance()
		in.TargetName = p.parseLHSName()
	}
	p.consumeSemicolon()
	return in
}

// parseClassOrStruct parses a CPP class or a C/CPP struct body.
// Constructor recognition matches a method whose
// name equals the enclosing class name.
func (p *Parser) parseClassOrStruct() *ir.Class {
	p.c.Advance() // 'class' or 'struct'
	name := p.c.Cur.Literal
	p.c.Advance()

	if p.c.CurIs(token.PUNCTUATION, ":") {
		for !p.c.CurIs(token.PUNCTUATION, "{") && !p.c.CurIs(token.EOF, "") {
			p.c.Advance()
		}
	}
	p.expectPunct("{")

	class := &ir.Class{Name: name}
	for !p.c.CurIs(token.PUNCTUATION, "}") && !p.c.CurIs(token.EOF, "") && p.c.GuardIteration() {
		switch {
		case p.c.CurIs(token.KEYWORD, "public"), p.c.CurIs(token.KEYWORD, "private"), p.c.CurIs(token.KEYWORD, "protected"):
			p.c.Advance()
			p.expectPunct(":")
		case p.c.Cur.Kind == token.COMMENT, p.c.Cur.Kind == token.MULTILINE_COMMENT:
			p.c.Advance()
		case p.c.Cur.Kind == token.IDENTIFIER && p.c.Cur.Literal == name && p.c.PeekIs(token.PUNCTUATION, "("):
			p.c.Advance()
			params := p.parseParamList()
			body := p.parseBraceBlock()
			class.Constructor = &ir.Function{Name: ir.ConstructorName, Params: params, ReturnType: ir.Void, Body: body}
		default:
			p.parseClassMember(class)
		}
	}
	p.expectPunct("}")
	p.consumeSemicolon()
	return class
}

func (p *Parser) parseClassMember(class *ir.Class) {
	typ, isConst, ok := p.tryParseType()
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
		class.Methods = append(class.Methods, &ir.Function{Name: name, Params: params, ReturnType: typ, Body: body})
		return
	}
	var init ir.Expression
	if p.c.CurIs(token.PUNCTUATION, "=") {
		p.c.Advance()
		init = p.parseExpression(precedence.Lowest)
	}
	p.consumeSemicolon()
	class.Members = append(class.Members, &ir.Variable{Name: name, Type: typ, Initializer: init, Const: isConst})
}
