package py

import (
	"strconv"
	"strings"

	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/parser/precedence"
	"github.com/cwbudde/polytrans/internal/token"
)

// parseExpression climbs the shared precedence ladder. Assignment is
// handled at the statement level, so expressions here
// start at logical-or and descend through logical-and, equality,
// relational, additive, multiplicative, unary, postfix, primary.
func (p *Parser) parseExpression(min precedence.Level) ir.Expression {
	left := p.parseUnary()
	for {
		op, lvl, ok := p.currentBinaryOp()
		if !ok || lvl < min {
			break
		}
		p.c.Advance()
		right := p.parseExpression(lvl + 1)
		left = &ir.BinaryOp{Operator: op, Left: left, Right: right}
	}
	return left
}

// currentBinaryOp normalizes the "and"/"or" word-form keywords to their
// symbolic form and reports the binding level of whatever binary
// operator sits at the cursor, if any. Single-
// character operators like "+"/"-"/"*"/"/"/"<"/">" lex as PUNCTUATION
// (the langspec operator table lists multi-character forms only), so
// both kinds are considered.
func (p *Parser) currentBinaryOp() (string, precedence.Level, bool) {
	switch {
	case p.c.CurIs(token.KEYWORD, "and"):
		return "&&", precedence.LogicalAnd, true
	case p.c.CurIs(token.KEYWORD, "or"):
		return "||", precedence.LogicalOr, true
	}
	if p.c.Cur.Kind != token.OPERATOR && p.c.Cur.Kind != token.PUNCTUATION {
		return "", 0, false
	}
	op := p.c.Cur.Literal
	if op == "=" {
		return "", 0, false
	}
	lvl := precedence.OfOperator(op)
	if lvl == precedence.Lowest {
		return "", 0, false
	}
	return op, lvl, true
}

func (p *Parser) parseUnary() ir.Expression {
	if p.c.CurIs(token.KEYWORD, "not") {
		p.c.Advance()
		return &ir.UnaryOp{Operator: "!", Operand: p.parseUnary()}
	}
	if p.c.CurIs(token.PUNCTUATION, "-") {
		p.c.Advance()
		return &ir.UnaryOp{Operator: "-", Operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ir.Expression {
	tok := p.c.Cur
	switch {
	case tok.Kind == token.NUMBER:
		p.c.Advance()
		return numberLiteral(tok.Literal)
	case tok.Kind == token.STRING:
		p.c.Advance()
		lit := &ir.Literal{Type: ir.String, Value: tok.Literal}
		if tok.Interpolated {
			p.interpLiterals[lit] = true
		}
		return lit
	case tok.Kind == token.CHAR:
		p.c.Advance()
		return &ir.Literal{Type: ir.Char, Value: tok.Literal}
	case p.c.CurIs(token.KEYWORD, "True"):
		p.c.Advance()
		return &ir.Literal{Type: ir.Bool, Value: true}
	case p.c.CurIs(token.KEYWORD, "False"):
		p.c.Advance()
		return &ir.Literal{Type: ir.Bool, Value: false}
	case p.c.CurIs(token.KEYWORD, "None"):
		p.c.Advance()
		return &ir.Literal{Type: ir.Void, Value: nil}
	case p.c.CurIs(token.KEYWORD, "input"):
		return p.parseInputExpr()
	case p.c.CurIs(token.KEYWORD, "int"), p.c.CurIs(token.KEYWORD, "float"), p.c.CurIs(token.KEYWORD, "str"):
		return p.parseConversionCall()
	case p.c.CurIs(token.PUNCTUATION, "("):
		p.c.Advance()
		inner := p.parseExpression(precedence.Lowest)
		p.expectPunct(")")
		return inner
	case tok.Kind == token.IDENTIFIER || p.c.CurIs(token.KEYWORD, "self"):
		return p.parseNameOrCall()
	default:
		p.c.AddError("unexpected token in expression: " + tok.Literal)
		p.c.Advance()
		return &ir.Literal{Type: ir.Auto, Value: nil}
	}
}

func (p *Parser) parseNameOrCall() ir.Expression {
	name := p.c.Cur.Literal
	p.c.Advance()
	for p.c.CurIs(token.PUNCTUATION, ".") {
		p.c.Advance()
		name += "." + p.c.Cur.Literal
		p.c.Advance()
	}
	if p.c.CurIs(token.PUNCTUATION, "(") {
		args := p.parseArgs()
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			return &ir.Call{Callee: name[idx+1:], Args: args, IsMethod: true, Receiver: name[:idx]}
		}
		return &ir.Call{Callee: name, Args: args}
	}
	return &ir.Identifier{Name: name}
}

func (p *Parser) parseConversionCall() *ir.Call {
	callee := p.c.Cur.Literal
	p.c.Advance()
	return &ir.Call{Callee: callee, Args: p.parseArgs()}
}

func (p *Parser) parseInputExpr() *ir.Input {
	p.c.Advance() // 'input'
	p.expectPunct("(")
	in := &ir.Input{}
	if !p.c.CurIs(token.PUNCTUATION, ")") {
		if p.c.Cur.Kind == token.STRING {
			in.Prompt = p.c.Cur.Literal
			in.HasPrompt = true
			p.c.Advance()
		} else {
			p.parseExpression(precedence.Lowest)
		}
	}
	p.expectPunct(")")
	return in
}

func numberLiteral(lit string) *ir.Literal {
	if strings.ContainsAny(lit, ".eE") {
		f, _ := strconv.ParseFloat(lit, 64)
		return &ir.Literal{Type: ir.Float, Value: f}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return &ir.Literal{Type: ir.Int, Value: f}
}
