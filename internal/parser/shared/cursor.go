// Package shared provides the token-cursor plumbing common to all three
// recursive-descent front-ends (PY, C-family, JV): current/peek token
// access backed by the lexer's own lookahead buffer, plus the
// accumulate-don't-abort error list every parser keeps: a structure
// error is recorded and the parser advances one token and retries.
package shared

import (
	"fmt"

	"github.com/cwbudde/polytrans/internal/lexer"
	"github.com/cwbudde/polytrans/internal/token"
)

// ParseError is one recorded, non-fatal parse anomaly.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e ParseError) Error() string { return fmt.Sprintf("%s at %s", e.Message, e.Pos) }

// Cursor wraps a Lexer with current/peek token tracking and an error
// list. Every language parser embeds one.
type Cursor struct {
	L      *lexer.Lexer
	Cur    token.Token
	Peek1  token.Token
	Errors []ParseError

	// iterationGuard bounds pathological loops on malformed input.
	iterationGuard int
}

// NewCursor creates a Cursor positioned at the first two tokens of l.
func NewCursor(l *lexer.Lexer) *Cursor {
	c := &Cursor{L: l}
	c.Advance()
	c.Advance()
	return c
}

// Advance consumes the current token and pulls the next one in.
func (c *Cursor) Advance() {
	c.Cur = c.Peek1
	c.Peek1 = c.L.NextToken()
}

// CurIs reports whether the current token has the given kind and
// (when non-empty) literal.
func (c *Cursor) CurIs(kind token.Kind, literal string) bool {
	return c.Cur.Kind == kind && (literal == "" || c.Cur.Literal == literal)
}

// PeekIs reports the same for the lookahead token.
func (c *Cursor) PeekIs(kind token.Kind, literal string) bool {
	return c.Peek1.Kind == kind && (literal == "" || c.Peek1.Literal == literal)
}

// AddError records a non-fatal parse error without aborting.
func (c *Cursor) AddError(msg string) {
	c.Errors = append(c.Errors, ParseError{Message: msg, Pos: c.Cur.Pos})
}

// Synchronize advances past the current token once. The parser's
// recovery strategy on a structure error is simply to retry from the
// next token.
func (c *Cursor) Synchronize() {
	if c.Cur.Kind != token.EOF {
		c.Advance()
	}
}

// MaxLoopIterations bounds any open-ended parsing loop so malformed
// input can never hang the parser.
const MaxLoopIterations = 100000

// GuardIteration increments and checks the shared iteration guard,
// returning false once the bound is exceeded so callers can bail out of
// a pathological loop.
func (c *Cursor) GuardIteration() bool {
	c.iterationGuard++
	return c.iterationGuard < MaxLoopIterations
}
