package jv

import (
	"testing"

	"github.com/cwbudde/polytrans/internal/ir"
)

func TestParseMainEntryPointWithPrintln(t *testing.T) {
	src := `import java.util.Scanner;
public class Main {
    public static void main(String[] args) {
        int a = 1;
        if (a > 0) {
            System.out.println("positive");
        }
    }
}
`
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(prog.Imports))
	}
	class, ok := prog.Body[0].(*ir.Class)
	if !ok {
		t.Fatalf("statement is %T, want *ir.Class", prog.Body[0])
	}
	if class.EntryPoint == nil {
		t.Fatal("expected an EntryPoint method")
	}
	ifNode, ok := class.EntryPoint.Body[1].(*ir.If)
	if !ok {
		t.Fatalf("body[1] is %T, want *ir.If", class.EntryPoint.Body[1])
	}
	printNode, ok := ifNode.Then[0].(*ir.Print)
	if !ok {
		t.Fatalf("if-body[0] is %T, want *ir.Print", ifNode.Then[0])
	}
	if !printNode.Newline {
		t.Error("expected Newline=true from println")
	}
}

func TestParseStaticMethodsAreSeparateFromEntryPoint(t *testing.T) {
	src := `public class Main {
    public static int square(int n) {
        return n * n;
    }
    public static void main(String[] args) {
        System.out.print(square(2));
    }
}
`
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	class := prog.Body[0].(*ir.Class)
	if class.EntryPoint == nil || class.EntryPoint.Name != "main" {
		t.Fatal("expected EntryPoint named main")
	}
	if len(class.StaticMethods) != 1 || class.StaticMethods[0].Name != "square" {
		t.Fatalf("got static methods %+v, want [square]", class.StaticMethods)
	}
	printNode, ok := class.EntryPoint.Body[0].(*ir.Print)
	if !ok {
		t.Fatalf("body[0] is %T, want *ir.Print", class.EntryPoint.Body[0])
	}
	if printNode.Newline {
		t.Error("expected Newline=false from print")
	}
}

func TestParseClassicForLoopRecognizedAsRange(t *testing.T) {
	src := `public class Main {
    public static void main(String[] args) {
        for (int i = 0; i < 10; i++) {
            System.out.println(i);
        }
    }
}
`
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	class := prog.Body[0].(*ir.Class)
	forNode, ok := class.EntryPoint.Body[0].(*ir.For)
	if !ok {
		t.Fatalf("body[0] is %T, want *ir.For", class.EntryPoint.Body[0])
	}
	if !forNode.HasRange || forNode.Iterator != "i" {
		t.Fatalf("got For{HasRange:%v,Iterator:%q}, want range over i", forNode.HasRange, forNode.Iterator)
	}
}

func TestParseScannerNextIntBecomesInput(t *testing.T) {
	src := `public class Main {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);
        int n = sc.nextInt();
    }
}
`
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	class := prog.Body[0].(*ir.Class)
	scanner, ok := class.EntryPoint.Body[0].(*ir.Variable)
	if !ok || scanner.Name != "sc" {
		t.Fatalf("body[0] is %+v, want Variable{sc}", class.EntryPoint.Body[0])
	}
	v, ok := class.EntryPoint.Body[1].(*ir.Variable)
	if !ok || v.Name != "n" {
		t.Fatalf("body[1] is %+v, want Variable{n}", class.EntryPoint.Body[1])
	}
	input, ok := v.Initializer.(*ir.Input)
	if !ok {
		t.Fatalf("initializer is %T, want *ir.Input", v.Initializer)
	}
	if input.TargetType != ir.Int {
		t.Errorf("got TargetType %s, want int", input.TargetType)
	}
}

func TestParseClassWithConstructorAndMembers(t *testing.T) {
	src := `public class Point {
    private int x;
    private int y;

    public Point(int x, int y) {
        this.x = x;
        this.y = y;
    }

    public int sum() {
        return this.x + this.y;
    }
}
`
	prog, errs := New(src).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	class := prog.Body[0].(*ir.Class)
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
	if class.IsEntryPointShell() {
		t.Error("a member-and-method class must not read as an entry-point shell")
	}
}
