package cfamily

import (
	"strconv"
	"strings"

	"github.com/cwbudde/polytrans/internal/ir"
	"github.com/cwbudde/polytrans/internal/parser/precedence"
	"github.com/cwbudde/polytrans/internal/token"
)

// parseExpression climbs the shared precedence ladder. "&&"
// and "||" are already the source spelling in C/CPP, so unlike PY no
// keyword normalization is needed here.
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

func (p *Parser) currentBinaryOp() (string, precedence.Level, bool) {
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
	switch {
	case p.c.CurIs(token.PUNCTUATION, "!"):
		p.c.Advance()
		return &ir.UnaryOp{Operator: "!", Operand: p.parseUnary()}
	case p.c.CurIs(token.PUNCTUATION, "-"):
		p.c.Advance()
		return &ir.UnaryOp{Operator: "-", Operand: p.parseUnary()}
	case p.dialect == C && p.c.CurIs(token.PUNCTUATION, "&"):
		p.c.Advance()
		return &ir.UnaryOp{Operator: "&", Operand: p.parseUnary()}
	case p.dialect == C && p.c.CurIs(token.PUNCTUATION, "*"):
		p.c.Advance()
		return &ir.UnaryOp{Operator: "*", Operand: p.parseUnary()}
	case p.c.CurIs(token.OPERATOR, "++"), p.c.CurIs(token.OPERATOR, "--"):
		op := p.c.Cur.Literal
		p.c.Advance()
		return &ir.UnaryOp{Operator: op, Operand: p.parseUnary()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ir.Expression {
	expr := p.parsePrimary()
	for p.c.CurIs(token.OPERATOR, "++") || p.c.CurIs(token.OPERATOR, "--") {
		op := p.c.Cur.Literal + "_post"
		p.c.Advance()
		expr = &ir.UnaryOp{Operator: op, Operand: expr}
	}
	return expr
}

func (p *Parser) parsePrimary() ir.Expression {
	tok := p.c.Cur
	switch {
	case tok.Kind == token.NUMBER:
		p.c.Advance()
		return numberLiteral(tok.Literal)
	case tok.Kind == token.STRING:
		p.c.Advance()
		return &ir.Literal{Type: ir.String, Value: tok.Literal}
	case tok.Kind == token.CHAR:
		p.c.Advance()
		return &ir.Literal{Type: ir.Char, Value: tok.Literal}
	case p.c.CurIs(token.KEYWORD, "true"):
		p.c.Advance()
		return &ir.Literal{Type: ir.Bool, Value: true}
	case p.c.CurIs(token.KEYWORD, "false"):
		p.c.Advance()
		return &ir.Literal{Type: ir.Bool, Value: false}
	case p.c.CurIs(token.KEYWORD, "nullptr"), p.c.CurIs(token.KEYWORD, "null"):
		p.c.Advance()
		return &ir.Literal{Type: ir.Void, Value: nil}
	case p.dialect == CPP && p.c.CurIs(token.KEYWORD, "new"):
		p.c.Advance()
		typeName := p.c.Cur.Literal
		p.c.Advance()
		return &ir.Call{Callee: typeName, Args: p.parseArgs()}
	case p.c.CurIs(token.PUNCTUATION, "("):
		p.c.Advance()
		inner := p.parseExpression(precedence.Lowest)
		p.expectPunct(")")
		return inner
	case tok.Kind == token.IDENTIFIER, p.c.CurIs(token.KEYWORD, "this"):
		return p.parseNameOrCall()
	default:
		p.c.AddError("unexpected token in expression: " + tok.Literal)
		p.c.Advance()
		return &ir.Literal{Type: ir.Auto, Value: nil}
	}
}

func (p *Parser) parseNameOrCall() ir.Expression {
	name := p.parseLHSName()
	if p.c.CurIs(token.PUNCTUATION, "(") {
		args := p.parseArgs()
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			return &ir.Call{Callee: name[idx+1:], Args: args, IsMethod: true, Receiver: name[:idx]}
		}
		return &ir.Call{Callee: name, Args: args}
	}
	return &ir.Identifier{Name: name}
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

func numberLiteral(lit string) *ir.Literal {
	if strings.ContainsAny(lit, ".eE") {
		f, _ := strconv.ParseFloat(lit, 64)
		return &ir.Literal{Type: ir.Float, Value: f}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return &ir.Literal{Type: ir.Int, Value: f}
}
