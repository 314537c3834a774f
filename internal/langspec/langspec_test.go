package langspec

import "testing"

func TestLoadAllFourLanguages(t *testing.T) {
	for _, lang := range []Language{PY, C, CPP, JV} {
		spec, err := Load(lang)
		if err != nil {
			t.Fatalf("Load(%v) failed: %v", lang, err)
		}
		if spec.Language != lang {
			t.Errorf("Load(%v).Language = %v, want %v", lang, spec.Language, lang)
		}
	}
}

func TestLoadUnknownLanguage(t *testing.T) {
	if _, err := Load(Language("fortran")); err == nil {
		t.Fatal("expected an error for an unknown language")
	}
}

func TestMustLoadPanicsOnUnknownLanguage(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected MustLoad to panic on an unknown language")
		}
	}()
	MustLoad(Language("fortran"))
}

func TestLoadCachesSpec(t *testing.T) {
	a, err := Load(PY)
	if err != nil {
		t.Fatalf("Load(PY) failed: %v", err)
	}
	b, err := Load(PY)
	if err != nil {
		t.Fatalf("Load(PY) failed: %v", err)
	}
	if a != b {
		t.Error("expected Load to return the same cached *Spec instance")
	}
}

func TestCIsIndentationFreeWithPreprocessor(t *testing.T) {
	spec := MustLoad(C)
	if spec.Indentation {
		t.Error("C should not be indentation-sensitive")
	}
	if !spec.HasPreprocessor {
		t.Error("C should report HasPreprocessor")
	}
	if !spec.IsKeyword("if") {
		t.Error("expected \"if\" to be a C keyword")
	}
	if !spec.IsTypeKeyword("int") {
		t.Error("expected \"int\" to be a C type keyword")
	}
	if spec.IsKeyword("nonexistentword") {
		t.Error("unexpected keyword recognition for a made-up word")
	}
}

func TestPYIsIndentationSensitiveWithoutPreprocessor(t *testing.T) {
	spec := MustLoad(PY)
	if !spec.Indentation {
		t.Error("PY should be indentation-sensitive")
	}
	if spec.HasPreprocessor {
		t.Error("PY should not have a preprocessor")
	}
}

func TestOperatorsAreSortedLongestFirst(t *testing.T) {
	spec := MustLoad(C)
	ops := spec.Operators()
	for i := 1; i < len(ops); i++ {
		if len(ops[i-1]) < len(ops[i]) {
			t.Fatalf("operators not longest-first at index %d: %q before %q", i, ops[i-1], ops[i])
		}
	}
}
