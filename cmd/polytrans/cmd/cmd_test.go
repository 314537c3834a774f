package cmd

import (
	"testing"

	"github.com/cwbudde/polytrans/internal/langspec"
)

func TestResolveLanguageAcceptsShortAndSpecTags(t *testing.T) {
	tests := []struct {
		tag  string
		want langspec.Language
	}{
		{"py", langspec.PY},
		{"scripting", langspec.PY},
		{"c", langspec.C},
		{"c-family", langspec.C},
		{"cpp", langspec.CPP},
		{"cpp-family", langspec.CPP},
		{"jv", langspec.JV},
		{"class-based", langspec.JV},
	}
	for _, tt := range tests {
		got, err := resolveLanguage(tt.tag)
		if err != nil {
			t.Errorf("resolveLanguage(%q) returned error: %v", tt.tag, err)
		}
		if got != tt.want {
			t.Errorf("resolveLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestResolveLanguageRejectsUnknownTag(t *testing.T) {
	if _, err := resolveLanguage("rust"); err == nil {
		t.Fatal("expected an error for an unknown language tag")
	}
}

func TestResolveTargetsDefaultsToOtherThree(t *testing.T) {
	targets, err := resolveTargets(nil, langspec.PY)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 3 {
		t.Fatalf("got %d targets, want 3", len(targets))
	}
	for _, t2 := range targets {
		if t2 == langspec.PY {
			t.Errorf("default target set should exclude the source language, got %v", targets)
		}
	}
}

func TestResolveTargetsHonorsExplicitList(t *testing.T) {
	targets, err := resolveTargets([]string{"cpp", " jv "}, langspec.C)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 || targets[0] != langspec.CPP || targets[1] != langspec.JV {
		t.Fatalf("got %v", targets)
	}
}

func TestResolveTargetsRejectsUnknownTarget(t *testing.T) {
	if _, err := resolveTargets([]string{"rust"}, langspec.PY); err == nil {
		t.Fatal("expected an error for an unknown target tag")
	}
}

func TestSelfCheckWarningEmptyOnStableRoundTrip(t *testing.T) {
	src := "print('hi')\nx = 10\n"
	if warning := selfCheckWarning(src, langspec.PY); warning != "" {
		t.Errorf("expected no warning for a stable round trip, got %q", warning)
	}
}
