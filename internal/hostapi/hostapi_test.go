package hostapi

import "testing"

func TestNewSandboxRequestMapsTagToLanguageID(t *testing.T) {
	req, ok := NewSandboxRequest("class-based", "class Main {}")
	if !ok {
		t.Fatal("expected ok=true for a known target tag")
	}
	if req.LanguageID != "java" || req.Version != "15.x" {
		t.Errorf("got %+v, want java/15.x", req)
	}
	if len(req.Files) != 1 || req.Files[0].Content != "class Main {}" {
		t.Errorf("unexpected files: %+v", req.Files)
	}
}

func TestNewSandboxRequestUnknownTag(t *testing.T) {
	if _, ok := NewSandboxRequest("bogus", "x"); ok {
		t.Fatal("expected ok=false for an unknown tag")
	}
}

func TestBuildSandboxRequestJSONRoundTrips(t *testing.T) {
	req, _ := NewSandboxRequest("scripting", "print('hi')")
	body, err := BuildSandboxRequestJSON(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	run, compile, ok := ParseSandboxResponse(`{"run":{"stdout":"hi\n","stderr":"","code":0},"compile":{"stderr":""}}`)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if run.Stdout != "hi\n" || run.Code != 0 {
		t.Errorf("unexpected run result: %+v", run)
	}
	if compile.Stderr != "" {
		t.Errorf("unexpected compile result: %+v", compile)
	}
	if body == "" {
		t.Error("expected non-empty request body")
	}
}

func TestExtractReviewJSONFindsBraceBalancedSubstring(t *testing.T) {
	reply := `Here is the corrected version:
{"corrected_code": "print(1)", "issues": ["missing newline", "off by one"]}
Let me know if you need anything else.`
	result, ok := ExtractReviewJSON(reply)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if result.CorrectedCode != "print(1)" {
		t.Errorf("got corrected_code %q", result.CorrectedCode)
	}
	if len(result.Issues) != 2 || result.Issues[0] != "missing newline" {
		t.Errorf("got issues %v", result.Issues)
	}
}

func TestExtractReviewJSONIgnoresBracesInsideStrings(t *testing.T) {
	reply := `{"corrected_code": "if (x) { return 1; }", "issues": []}`
	result, ok := ExtractReviewJSON(reply)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if result.CorrectedCode != "if (x) { return 1; }" {
		t.Errorf("got corrected_code %q", result.CorrectedCode)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
}

func TestExtractReviewJSONNoBraceFails(t *testing.T) {
	if _, ok := ExtractReviewJSON("no json here"); ok {
		t.Fatal("expected ok=false")
	}
}

func TestExtractReviewJSONMissingFieldFails(t *testing.T) {
	if _, ok := ExtractReviewJSON(`{"issues": []}`); ok {
		t.Fatal("expected ok=false when corrected_code is absent")
	}
}
