// Package lexer implements a single, language-parametrized lexer shared
// by all four front-ends. Each source language differs only
// in its langspec.Spec (keyword table, operator table, comment/indent
// conventions); the character-level scanning rules are identical, so one
// implementation serves PY, C, CPP, and JV rather than four near-copies.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/internal/token"
)

// LexError records a lexical anomaly. The lexer never
// aborts on one — it tolerates the offending byte and keeps scanning;
// errors are collected out-of-band for diagnostics only.
type LexError struct {
	Message string
	Pos     token.Position
}

// Lexer scans source text for one language into a flat token sequence.
// It never throws: unrecognized bytes become single-character
// PUNCTUATION tokens.
type Lexer struct {
	spec *langspec.Spec

	input        string
	errors       []LexError
	tokenBuffer  []token.Token
	position     int
	readPosition int
	line         int
	column       int
	ch           rune

	atLineStart bool // true until first non-whitespace rune of a line is seen
	lineIndent  int  // leading-whitespace rune count of the current line
}

// State is a saved snapshot for backtracking lookahead.
type State struct {
	tokenBuffer  []token.Token
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
	atLineStart  bool
	lineIndent   int
}

// New creates a Lexer for input in the language described by spec.
func New(input string, spec *langspec.Spec) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{
		spec:        spec,
		input:       input,
		line:        1,
		column:      0,
		atLineStart: true,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding")
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekCharN(n int) rune {
	pos := l.readPosition
	for i := 0; i < n-1 && pos < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) addError(msg string) {
	l.errors = append(l.errors, LexError{Message: msg, Pos: l.currentPos()})
}

// Errors returns all lexical anomalies observed so far.
func (l *Lexer) Errors() []LexError { return l.errors }

// SaveState captures the lexer's position for later restoration.
func (l *Lexer) SaveState() State {
	buf := make([]token.Token, len(l.tokenBuffer))
	copy(buf, l.tokenBuffer)
	return State{
		tokenBuffer:  buf,
		position:     l.position,
		readPosition: l.readPosition,
		line:         l.line,
		column:       l.column,
		ch:           l.ch,
		atLineStart:  l.atLineStart,
		lineIndent:   l.lineIndent,
	}
}

// RestoreState rewinds the lexer to a previously saved State.
func (l *Lexer) RestoreState(s State) {
	l.tokenBuffer = s.tokenBuffer
	l.position = s.position
	l.readPosition = s.readPosition
	l.line = s.line
	l.column = s.column
	l.ch = s.ch
	l.atLineStart = s.atLineStart
	l.lineIndent = s.lineIndent
}

// Peek returns the token n positions ahead without consuming it.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.scan())
	}
	return l.tokenBuffer[n]
}

// NextToken consumes and returns the next token.
func (l *Lexer) NextToken() token.Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.scan()
}

// Tokens drains the whole input into a flat token sequence, appending a
// trailing EOF token. Parsers normally use NextToken/Peek directly, but a
// flat buffer is convenient for the `polytrans lex` debug command.
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

// scan produces exactly one token, advancing the cursor past it. Every
// token produced while scanning an indentation-based source carries its
// line's leading-whitespace count.
func (l *Lexer) scan() (tok token.Token) {
	if l.spec.Indentation {
		defer func() { tok.Indent = l.lineIndent }()
	}
	return l.scanOne()
}

func (l *Lexer) scanOne() token.Token {
	l.skipWhitespaceAndTrackIndent()

	if l.spec.Indentation && l.ch == '\n' {
		pos := l.currentPos()
		l.line++
		l.column = 0
		l.atLineStart = true
		l.lineIndent = 0
		l.readChar()
		return token.Token{Kind: token.NEWLINE, Literal: "\n", Pos: pos}
	}

	if l.ch == 0 {
		return token.Token{Kind: token.EOF, Literal: "", Pos: l.currentPos()}
	}

	// Preprocessor directive: '#' at the start of a line, C/CPP only.
	if l.spec.HasPreprocessor && l.ch == '#' && l.atLineStart {
		return l.readPreprocessorLine()
	}

	if l.matchesLineComment() {
		return l.readLineComment()
	}
	if l.matchesBlockCommentOpen() {
		return l.readBlockComment()
	}

	switch {
	case l.ch == '"' || l.ch == '\'':
		return l.readString()
	case isDigit(l.ch):
		return l.readNumber()
	case isLetter(l.ch):
		return l.readIdentifierOrKeyword()
	}

	if op, ok := l.matchOperator(); ok {
		pos := l.currentPos()
		for range []rune(op) {
			l.readChar()
		}
		return token.Token{Kind: token.OPERATOR, Literal: op, Pos: pos}
	}

	// Single-character punctuation (includes single-char operators);
	// unrecognized bytes fall through here too.
	pos := l.currentPos()
	lit := string(l.ch)
	l.readChar()
	return token.Token{Kind: token.PUNCTUATION, Literal: lit, Pos: pos}
}

func (l *Lexer) skipWhitespaceAndTrackIndent() {
	for {
		switch {
		case l.spec.Indentation && l.atLineStart && (l.ch == ' ' || l.ch == '\t'):
			l.lineIndent++
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case !l.spec.Indentation && l.ch == '\n':
			l.line++
			l.column = 0
			l.atLineStart = true
			l.readChar()
		default:
			if l.ch != 0 && l.ch != '\n' {
				l.atLineStart = false
			}
			return
		}
	}
}

func (l *Lexer) matchesLineComment() bool {
	lc := l.spec.LineComment
	if lc == "" {
		return false
	}
	for i, r := range []rune(lc) {
		if l.peekCharN(i) != r && !(i == 0 && l.ch == r) {
			return false
		}
	}
	return true
}

func (l *Lexer) readLineComment() token.Token {
	pos := l.currentPos()
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return token.Token{Kind: token.COMMENT, Literal: l.input[start:l.position], Pos: pos}
}

func (l *Lexer) matchesBlockCommentOpen() bool {
	open := l.spec.BlockCommentOpen
	if open == "" {
		return false
	}
	runes := []rune(open)
	if l.ch != runes[0] {
		return false
	}
	for i := 1; i < len(runes); i++ {
		if l.peekCharN(i) != runes[i] {
			return false
		}
	}
	return true
}

func (l *Lexer) readBlockComment() token.Token {
	pos := l.currentPos()
	start := l.position
	closeRunes := []rune(l.spec.BlockCommentClose)
	for i := range []rune(l.spec.BlockCommentOpen) {
		_ = i
		l.readChar()
	}
	for l.ch != 0 {
		if l.matchesRunes(closeRunes) {
			for range closeRunes {
				l.readChar()
			}
			break
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
	return token.Token{Kind: token.MULTILINE_COMMENT, Literal: l.input[start:l.position], Pos: pos}
}

func (l *Lexer) matchesRunes(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	if l.ch != runes[0] {
		return false
	}
	for i := 1; i < len(runes); i++ {
		if l.peekCharN(i) != runes[i] {
			return false
		}
	}
	return true
}

func (l *Lexer) readPreprocessorLine() token.Token {
	pos := l.currentPos()
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		if l.ch == '\\' && l.peekChar() == '\n' {
			l.readChar()
			l.line++
			l.column = 0
		}
		l.readChar()
	}
	return token.Token{Kind: token.PREPROCESSOR, Literal: l.input[start:l.position], Pos: pos}
}

func (l *Lexer) readString() token.Token {
	quote := l.ch
	pos := l.currentPos()
	l.readChar() // consume opening quote

	var sb strings.Builder
	raw := 0
	for l.ch != quote && l.ch != 0 {
		raw++
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 0:
			case 'n':
				sb.WriteRune('\n')
			case '\\', '"', '\'':
				sb.WriteRune(l.ch)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(l.ch)
			}
			if l.ch != 0 {
				raw++
				l.readChar()
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	} else {
		l.addError("unterminated string literal")
	}

	content := norm.NFC.String(sb.String())
	kind := token.STRING
	if quote == '\'' && raw == 1 {
		kind = token.CHAR
	}
	return token.Token{Kind: kind, Literal: content, Pos: pos}
}

func (l *Lexer) readNumber() token.Token {
	pos := l.currentPos()
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekCharN(2)))) {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Kind: token.NUMBER, Literal: l.input[start:l.position], Pos: pos}
}

func (l *Lexer) readIdentifierOrKeyword() token.Token {
	pos := l.currentPos()
	start := l.position

	// PY f-string: bare identifier "f" immediately followed by a quote.
	if l.spec.StringInterpPrefix != "" && l.ch == rune(l.spec.StringInterpPrefix[0]) &&
		!isLetter(l.peekChar()) && !isDigit(l.peekChar()) &&
		(l.peekChar() == '"' || l.peekChar() == '\'') {
		l.readChar() // consume the 'f'
		strTok := l.readString()
		strTok.Pos = pos
		strTok.Interpolated = true
		return strTok
	}

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	if l.spec.IsKeyword(lit) {
		return token.Token{Kind: token.KEYWORD, Literal: lit, Pos: pos}
	}
	return token.Token{Kind: token.IDENTIFIER, Literal: lit, Pos: pos}
}

func (l *Lexer) matchOperator() (string, bool) {
	for _, op := range l.spec.Operators() {
		runes := []rune(op)
		if l.matchesRunes(runes) {
			return op, true
		}
	}
	return "", false
}
