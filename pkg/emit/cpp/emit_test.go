package cpp

import (
	"strings"
	"testing"

	"github.com/cwbudde/polytrans/internal/ir"
)

func TestEmitClassSeparatesPrivateMembersFromPublicMethods(t *testing.T) {
	class := &ir.Class{
		Name:    "Point",
		Members: []*ir.Variable{{Name: "x", Type: ir.Int}, {Name: "y", Type: ir.Int}},
		Constructor: &ir.Function{
			Params: []*ir.Variable{{Name: "x", Type: ir.Int}, {Name: "y", Type: ir.Int}},
			Body: []ir.Statement{
				&ir.Assignment{Target: "self.x", Op: "=", Value: &ir.Identifier{Name: "x"}},
			},
		},
		Methods: []*ir.Function{{Name: "dump", ReturnType: ir.Void}},
	}
	out := Emit(&ir.Program{Body: []ir.Statement{class}})
	if !strings.Contains(out, "class Point {") {
		t.Errorf("got:\n%s", out)
	}
	if !strings.Contains(out, "private:") || !strings.Contains(out, "int x;") {
		t.Errorf("expected private members section, got:\n%s", out)
	}
	if !strings.Contains(out, "public:") {
		t.Errorf("expected a public section, got:\n%s", out)
	}
	if !strings.Contains(out, "Point(int x, int y) {") {
		t.Errorf("expected a constructor matching the class name, got:\n%s", out)
	}
	if !strings.Contains(out, "this->x = x;") {
		t.Errorf("expected self.x remapped to this->x, got:\n%s", out)
	}
}

func TestEmitClassWithoutMembersOmitsPrivateSection(t *testing.T) {
	class := &ir.Class{Name: "Empty", Methods: []*ir.Function{{Name: "noop", ReturnType: ir.Void}}}
	out := Emit(&ir.Program{Body: []ir.Statement{class}})
	if strings.Contains(out, "private:") {
		t.Errorf("a member-less class should not emit a private: section, got:\n%s", out)
	}
}

func TestCoutTextChainsArgsAndAppendsEndl(t *testing.T) {
	p := &ir.Print{
		Args:    []ir.Expression{&ir.Literal{Type: ir.String, Value: "x="}, &ir.Identifier{Name: "x"}},
		Newline: true,
	}
	if got := coutText(p); got != `cout << "x=" << x << endl` {
		t.Errorf("got %q", got)
	}
}

func TestCoutTextWithoutNewlineOmitsEndl(t *testing.T) {
	p := &ir.Print{Args: []ir.Expression{&ir.Identifier{Name: "x"}}, Newline: false}
	if got := coutText(p); got != "cout << x" {
		t.Errorf("got %q", got)
	}
}

func TestCallTextRespellsCapitalizedConstructorCall(t *testing.T) {
	call := &ir.Call{Callee: "Point", Args: []ir.Expression{&ir.Literal{Type: ir.Int, Value: float64(1)}}}
	if got := callText(call); got != "new Point(1)" {
		t.Errorf("got %q, want \"new Point(1)\"", got)
	}
}

func TestCallTextLeavesLowercaseFunctionAlone(t *testing.T) {
	call := &ir.Call{Callee: "helper", Args: nil}
	if got := callText(call); got != "helper()" {
		t.Errorf("got %q, want \"helper()\"", got)
	}
}

func TestCallTextMethodRemapsSelfReceiver(t *testing.T) {
	call := &ir.Call{Callee: "tick", IsMethod: true, Receiver: "self"}
	if got := callText(call); got != "this.tick()" {
		t.Errorf("got %q, want \"this.tick()\"", got)
	}
}

func TestRemapSelfIdentifierAndDotted(t *testing.T) {
	if got := remapSelf("self"); got != "this" {
		t.Errorf("got %q", got)
	}
	if got := remapSelf("self.n"); got != "this->n" {
		t.Errorf("got %q", got)
	}
	if got := remapSelf("other"); got != "other" {
		t.Errorf("got %q", got)
	}
}

func TestEmitEntryPointShellEmitsMainFunction(t *testing.T) {
	shell := &ir.Class{
		Name:       "Main",
		EntryPoint: &ir.Function{Name: "main", Body: []ir.Statement{&ir.Return{Value: &ir.Literal{Type: ir.Int, Value: float64(0)}}}},
	}
	out := Emit(&ir.Program{Body: []ir.Statement{shell}})
	if !strings.Contains(out, "int main() {") {
		t.Errorf("got:\n%s", out)
	}
	if strings.Contains(out, "class Main") {
		t.Errorf("an entry-point shell should not retain its class wrapper in CPP, got:\n%s", out)
	}
}
