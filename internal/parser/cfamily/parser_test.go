package cfamily

import (
	"testing"

	"github.com/cwbudde/polytrans/internal/ir"
)

func TestParsePrintfIfScenario(t *testing.T) {
	src := `#include <stdio.h>
int main() {
    int a = 1;
    if (a > 0) {
        printf("x=%d y=%s\n", a, "ok");
    }
    return 0;
}
`
	prog, errs := New(src, C).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(prog.Imports))
	}
	fn, ok := prog.Body[0].(*ir.Function)
	if !ok || fn.Name != "main" {
		t.Fatalf("statement is %+v, want Function main", prog.Body[0])
	}
	ifNode, ok := fn.Body[1].(*ir.If)
	if !ok {
		t.Fatalf("body[1] is %T, want *ir.If", fn.Body[1])
	}
	printNode, ok := ifNode.Then[0].(*ir.Print)
	if !ok {
		t.Fatalf("if-body[0] is %T, want *ir.Print", ifNode.Then[0])
	}
	if !printNode.Newline {
		t.Error("expected Newline=true from trailing \\n")
	}
	if len(printNode.Args) != 4 {
		t.Fatalf("got %d print args, want 4 (x=,a, y=,\"ok\")", len(printNode.Args))
	}
}

func TestParseClassicForLoopRecognizedAsRange(t *testing.T) {
	src := `int main() {
    for (int i = 0; i < 10; i++) {
        printf("%d", i);
    }
    return 0;
}
`
	prog, errs := New(src, C).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := prog.Body[0].(*ir.Function)
	forNode, ok := fn.Body[0].(*ir.For)
	if !ok {
		t.Fatalf("body[0] is %T, want *ir.For", fn.Body[0])
	}
	if !forNode.HasRange || forNode.Iterator != "i" {
		t.Fatalf("got For{HasRange:%v,Iterator:%q}, want range over i", forNode.HasRange, forNode.Iterator)
	}
}

func TestParseCoutEndl(t *testing.T) {
	src := `int main() {
    cout << "hello" << endl;
    return 0;
}
`
	prog, errs := New(src, CPP).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := prog.Body[0].(*ir.Function)
	printNode, ok := fn.Body[0].(*ir.Print)
	if !ok {
		t.Fatalf("body[0] is %T, want *ir.Print", fn.Body[0])
	}
	if !printNode.Newline {
		t.Error("expected Newline=true from endl")
	}
	if len(printNode.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(printNode.Args))
	}
}

func TestParseCppClassWithConstructor(t *testing.T) {
	src := `class Point {
private:
    int x;
    int y;
public:
    Point(int x, int y) {
        this->x = x;
        this->y = y;
    }
    int sum() {
        return this->x + this->y;
    }
};
`
	prog, errs := New(src, CPP).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	class, ok := prog.Body[0].(*ir.Class)
	if !ok {
		t.Fatalf("statement is %T, want *ir.Class", prog.Body[0])
	}
	if len(class.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(class.Members))
	}
	if class.Constructor == nil {
		t.Fatal("expected a constructor")
	}
	if len(class.Methods) != 1 || class.Methods[0].Name != "sum" {
		t.Fatalf("got methods %+v, want [sum]", class.Methods)
	}
	asg, ok := class.Constructor.Body[0].(*ir.Assignment)
	if !ok || asg.Target != "self.x" {
		t.Fatalf("constructor body[0] is %+v, want Assignment{self.x}", class.Constructor.Body[0])
	}
}
