package transpiler

import (
	"strings"
	"testing"

	"github.com/cwbudde/polytrans/internal/langspec"
)

func TestTranspileScriptingToC(t *testing.T) {
	src := "print('hi')\nx = 10\nif x > 5:\n    print(x)\n"
	res := New().Transpile(src, langspec.PY)
	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if !strings.Contains(res.C, `printf("hi\n");`) {
		t.Errorf("C output missing greeting printf, got:\n%s", res.C)
	}
	if !strings.Contains(res.C, "int x = 10;") {
		t.Errorf("C output missing declaration, got:\n%s", res.C)
	}
	if !strings.Contains(res.C, "if (x > 5) {") {
		t.Errorf("C output missing if, got:\n%s", res.C)
	}
}

func TestTranspileCForLoopToScriptingRange(t *testing.T) {
	src := "int main() { for (int i = 0; i < 5; i++) { printf(\"%d\\n\", i); } return 0; }"
	res := New().Transpile(src, langspec.C)
	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if !strings.Contains(res.PY, "for i in range(5):") {
		t.Errorf("PY output missing range form, got:\n%s", res.PY)
	}
	if !strings.Contains(res.PY, "print(i)") {
		t.Errorf("PY output missing print(i), got:\n%s", res.PY)
	}
}

func TestTranspileCppCoutToJVConcatenation(t *testing.T) {
	src := `int main() { int x = 1; cout << "x=" << x << endl; return 0; }`
	res := New().Transpile(src, langspec.CPP)
	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if !strings.Contains(res.JV, `System.out.println("x=" + x);`) {
		t.Errorf("JV output missing concatenated println, got:\n%s", res.JV)
	}
}

func TestTranspileJVMainToScriptingHasNoClassHeader(t *testing.T) {
	src := `public class Main { public static void main(String[] args) { int x = 10; if (x > 5) System.out.println(x); } }`
	res := New().Transpile(src, langspec.JV)
	if !res.Success {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if strings.Contains(res.PY, "class ") {
		t.Errorf("PY output should have no class wrapper, got:\n%s", res.PY)
	}
	if !strings.Contains(res.PY, "x = 10") {
		t.Errorf("PY output missing assignment, got:\n%s", res.PY)
	}
	if !strings.Contains(res.PY, "if x > 5:") || !strings.Contains(res.PY, "print(x)") {
		t.Errorf("PY output missing if/print, got:\n%s", res.PY)
	}
}

func TestTranspileScriptingClassRefusesCGuardButEmitsCpp(t *testing.T) {
	src := "class P:\n    def __init__(self):\n        self.n = 0\n    def tick(self):\n        self.n = self.n + 1\n"
	res := New().Transpile(src, langspec.PY)
	if res.C != "// C does not support classes" {
		t.Errorf("C output should be the sentinel guard, got:\n%s", res.C)
	}
	if !strings.Contains(res.CPP, "class P {") {
		t.Errorf("CPP output missing class, got:\n%s", res.CPP)
	}
	if !strings.Contains(res.CPP, "this->n = 0;") {
		t.Errorf("CPP constructor missing member init, got:\n%s", res.CPP)
	}
	if !strings.Contains(res.CPP, "this->n = this->n + 1;") {
		t.Errorf("CPP method body missing remapped self, got:\n%s", res.CPP)
	}
}
