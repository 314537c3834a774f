package py

import (
	"testing"

	"github.com/cwbudde/polytrans/internal/ir"
)

func TestParseVariableDeclaration(t *testing.T) {
	prog, errs := New("x = 5\n").Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	v, ok := prog.Body[0].(*ir.Variable)
	if !ok {
		t.Fatalf("statement is %T, want *ir.Variable", prog.Body[0])
	}
	if v.Name != "x" || v.Type != ir.Int {
		t.Errorf("got Variable{%q,%s}, want {x,int}", v.Name, v.Type)
	}
}

func TestParseReassignmentAfterDeclaration(t *testing.T) {
	prog, _ := New("x = 5\nx = 6\n").Parse()
	if len(prog.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Body))
	}
	if _, ok := prog.Body[0].(*ir.Variable); !ok {
		t.Fatalf("first statement is %T, want *ir.Variable", prog.Body[0])
	}
	asg, ok := prog.Body[1].(*ir.Assignment)
	if !ok {
		t.Fatalf("second statement is %T, want *ir.Assignment", prog.Body[1])
	}
	if asg.Target != "x" || asg.Op != "=" {
		t.Errorf("got Assignment{%q,%q}", asg.Target, asg.Op)
	}
}

func TestParseCountedRangeLoop(t *testing.T) {
	prog, errs := New("for i in range(10):\n    print(i)\n").Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	forNode, ok := prog.Body[0].(*ir.For)
	if !ok {
		t.Fatalf("statement is %T, want *ir.For", prog.Body[0])
	}
	if !forNode.HasRange || forNode.Iterator != "i" {
		t.Fatalf("got For{HasRange:%v, Iterator:%q}", forNode.HasRange, forNode.Iterator)
	}
	if len(forNode.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(forNode.Body))
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "if x < 0:\n    print(x)\nelif x == 0:\n    print(x)\nelse:\n    print(x)\n"
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	node, ok := prog.Body[0].(*ir.If)
	if !ok {
		t.Fatalf("statement is %T, want *ir.If", prog.Body[0])
	}
	if node.ElseIf == nil {
		t.Fatal("expected a chained elif")
	}
	if node.ElseIf.Else == nil {
		t.Fatal("expected a trailing else on the elif arm")
	}
}

func TestParsePrintFString(t *testing.T) {
	prog, errs := New(`print(f"x={x}")` + "\n").Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	p, ok := prog.Body[0].(*ir.Print)
	if !ok {
		t.Fatalf("statement is %T, want *ir.Print", prog.Body[0])
	}
	if len(p.Args) != 2 {
		t.Fatalf("got %d print args, want 2 (literal + identifier)", len(p.Args))
	}
	if _, ok := p.Args[0].(*ir.Literal); !ok {
		t.Errorf("first arg is %T, want *ir.Literal", p.Args[0])
	}
	ident, ok := p.Args[1].(*ir.Identifier)
	if !ok || ident.Name != "x" {
		t.Errorf("second arg is %#v, want Identifier{x}", p.Args[1])
	}
}

func TestParsePrintEndSuppressesNewline(t *testing.T) {
	prog, _ := New(`print(x, end="")` + "\n").Parse()
	p := prog.Body[0].(*ir.Print)
	if p.Newline {
		t.Error("expected Newline=false when end=\"\" is given")
	}
}

func TestParseClassWithConstructor(t *testing.T) {
	src := "class Point:\n    def __init__(self, x, y):\n        self.x = x\n        self.y = y\n\n    def sum(self):\n        return self.x + self.y\n"
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cls, ok := prog.Body[0].(*ir.Class)
	if !ok {
		t.Fatalf("statement is %T, want *ir.Class", prog.Body[0])
	}
	if cls.Constructor == nil {
		t.Fatal("expected a constructor")
	}
	if len(cls.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(cls.Members))
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name != "sum" {
		t.Fatalf("got methods %+v, want [sum]", cls.Methods)
	}
	if !cls.IsNonTrivialClass() {
		t.Error("expected IsNonTrivialClass() to be true")
	}
}

func TestParseWhileAndBreak(t *testing.T) {
	prog, errs := New("while True:\n    break\n").Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	w, ok := prog.Body[0].(*ir.While)
	if !ok {
		t.Fatalf("statement is %T, want *ir.While", prog.Body[0])
	}
	if len(w.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(w.Body))
	}
	if _, ok := w.Body[0].(*ir.Break); !ok {
		t.Errorf("body[0] is %T, want *ir.Break", w.Body[0])
	}
}

func TestParseImportCapturedVerbatim(t *testing.T) {
	prog, _ := New("import math\nx = 1\n").Parse()
	if len(prog.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(prog.Imports))
	}
	if len(prog.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(prog.Body))
	}
}
