package token

import "testing"

func TestKindStringCoversAllKinds(t *testing.T) {
	kinds := []Kind{ILLEGAL, EOF, PREPROCESSOR, COMMENT, MULTILINE_COMMENT, STRING, CHAR,
		NUMBER, KEYWORD, IDENTIFIER, OPERATOR, PUNCTUATION, NEWLINE}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "UNKNOWN" {
			t.Errorf("Kind %d stringified to UNKNOWN", k)
		}
		if seen[s] {
			t.Errorf("Kind %d produced a duplicate string %q", k, s)
		}
		seen[s] = true
	}
}

func TestKindStringUnknown(t *testing.T) {
	if got := Kind(999).String(); got != "UNKNOWN" {
		t.Errorf("got %q, want UNKNOWN", got)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7, Offset: 42}
	if got := p.String(); got != "3:7" {
		t.Errorf("got %q, want \"3:7\"", got)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Literal: "x", Pos: Position{Line: 1, Column: 1}}
	if got := tok.String(); got != `IDENTIFIER("x")@1:1` {
		t.Errorf("got %q, want IDENTIFIER(\"x\")@1:1", got)
	}
}
