package idiom

import (
	"testing"

	"github.com/cwbudde/polytrans/internal/ir"
)

func ident(name string) *ir.Identifier { return &ir.Identifier{Name: name} }

func TestDecomposeFormatDirectivesSplitsTextAndArgs(t *testing.T) {
	out, newline, extra := DecomposeFormatDirectives("x=%d y=%s\n", []ir.Expression{ident("a"), ident("b")})
	if !newline {
		t.Fatal("expected the trailing newline to be reported")
	}
	if extra != 2 {
		t.Fatalf("got extra=%d, want 2", extra)
	}
	want := []string{"x=", "a", " y=", "b"}
	if len(out) != len(want) {
		t.Fatalf("got %d parts, want %d: %#v", len(out), len(want), out)
	}
	if lit, ok := out[0].(*ir.Literal); !ok || lit.Value != "x=" {
		t.Errorf("part 0 = %#v, want literal \"x=\"", out[0])
	}
	if id, ok := out[1].(*ir.Identifier); !ok || id.Name != "a" {
		t.Errorf("part 1 = %#v, want identifier a", out[1])
	}
}

func TestDecomposeFormatDirectivesNoDirectives(t *testing.T) {
	out, newline, extra := DecomposeFormatDirectives("hi\n", nil)
	if !newline || extra != 0 {
		t.Fatalf("got newline=%v extra=%d", newline, extra)
	}
	if len(out) != 1 {
		t.Fatalf("got %d parts, want 1", len(out))
	}
	if lit, ok := out[0].(*ir.Literal); !ok || lit.Value != "hi" {
		t.Errorf("got %#v, want literal \"hi\"", out[0])
	}
}

func TestDecomposeFormatDirectivesToleratesMissingArgs(t *testing.T) {
	out, _, extra := DecomposeFormatDirectives("%d %d", []ir.Expression{ident("a")})
	if extra != 1 {
		t.Fatalf("got extra=%d, want 1", extra)
	}
	if len(out) != 3 {
		t.Fatalf("got %d parts, want 3: %#v", len(out), out)
	}
	if lit, ok := out[2].(*ir.Literal); !ok || lit.Value != "" {
		t.Errorf("part 2 = %#v, want empty placeholder literal", out[2])
	}
}

func TestDecomposeInterpolatedSplitsPlaceholders(t *testing.T) {
	out, ok := DecomposeInterpolated("x={x} y={y}")
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := []struct {
		isIdent bool
		text    string
	}{
		{false, "x="}, {true, "x"}, {false, " y="}, {true, "y"},
	}
	if len(out) != len(want) {
		t.Fatalf("got %d parts, want %d: %#v", len(out), len(want), out)
	}
	for i, w := range want {
		if w.isIdent {
			if id, ok := out[i].(*ir.Identifier); !ok || id.Name != w.text {
				t.Errorf("part %d = %#v, want identifier %q", i, out[i], w.text)
			}
		} else if lit, ok := out[i].(*ir.Literal); !ok || lit.Value != w.text {
			t.Errorf("part %d = %#v, want literal %q", i, out[i], w.text)
		}
	}
}

func TestDecomposeInterpolatedNoPlaceholderFails(t *testing.T) {
	_, ok := DecomposeInterpolated("no placeholders here")
	if ok {
		t.Fatal("expected ok=false when no {name} is present")
	}
}
