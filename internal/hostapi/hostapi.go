// Package hostapi defines the JSON contract shapes exchanged with the
// two remote collaborators a host application wires up: the execution
// sandbox and the review language model. The translator core is never
// I/O-bearing; these types and the extraction helper exist for a
// host application built on top of pkg/transpiler to use when it makes
// those calls itself.
package hostapi

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TranspileResultJSON mirrors pkg/transpiler.TranspileResult in on-wire
// form.
type TranspileResultJSON struct {
	PY      string   `json:"py,omitempty"`
	C       string   `json:"c,omitempty"`
	CPP     string   `json:"cpp,omitempty"`
	JV      string   `json:"jv,omitempty"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// SandboxFile is one entry of a sandbox request's files list.
type SandboxFile struct {
	Content string `json:"content"`
}

// SandboxRequest is the body posted to the execution-sandbox
// collaborator: `{language_id, version, files:[{content}]}`.
type SandboxRequest struct {
	LanguageID string        `json:"language_id"`
	Version    string        `json:"version"`
	Files      []SandboxFile `json:"files"`
}

// sandboxLanguageIDs fixes the target-tag to (language_id, version)
// mapping the sandbox collaborator expects.
var sandboxLanguageIDs = map[string][2]string{
	"scripting":   {"python", "3.x"},
	"c-family":    {"c", "10.x"},
	"cpp-family":  {"c++", "10.x"},
	"class-based": {"java", "15.x"},
}

// NewSandboxRequest builds the request for a given target tag and
// source text, reporting false if the tag is not one of the four
// targets.
func NewSandboxRequest(targetTag, content string) (SandboxRequest, bool) {
	pair, ok := sandboxLanguageIDs[targetTag]
	if !ok {
		return SandboxRequest{}, false
	}
	return SandboxRequest{
		LanguageID: pair[0],
		Version:    pair[1],
		Files:      []SandboxFile{{Content: content}},
	}, true
}

// BuildSandboxRequestJSON renders req as JSON via sjson's incremental
// Set calls rather than a struct-tag marshal, matching the pack's sjson
// idiom of building a wire payload field by field.
func BuildSandboxRequestJSON(req SandboxRequest) (string, error) {
	body := "{}"
	var err error
	if body, err = sjson.Set(body, "language_id", req.LanguageID); err != nil {
		return "", err
	}
	if body, err = sjson.Set(body, "version", req.Version); err != nil {
		return "", err
	}
	for i, f := range req.Files {
		path := "files." + strconv.Itoa(i) + ".content"
		if body, err = sjson.Set(body, path, f.Content); err != nil {
			return "", err
		}
	}
	return body, nil
}

// SandboxRunResult is the sandbox reply's nested "run" object.
type SandboxRunResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   int    `json:"code"`
}

// SandboxCompileResult is the sandbox reply's nested "compile" object.
type SandboxCompileResult struct {
	Stderr string `json:"stderr"`
}

// ParseSandboxResponse reads a `{run:{...}, compile:{...}}` reply using
// gjson, tolerating missing fields (they read as zero values).
func ParseSandboxResponse(body string) (run SandboxRunResult, compile SandboxCompileResult, ok bool) {
	if !gjson.Valid(body) {
		return SandboxRunResult{}, SandboxCompileResult{}, false
	}
	parsed := gjson.Parse(body)
	run.Stdout = parsed.Get("run.stdout").String()
	run.Stderr = parsed.Get("run.stderr").String()
	run.Code = int(parsed.Get("run.code").Int())
	compile.Stderr = parsed.Get("compile.stderr").String()
	return run, compile, true
}

// TransportFailureExitCode is the sentinel exit code reported when a
// sandbox POST itself fails, as opposed to the program under test
// exiting nonzero.
const TransportFailureExitCode = -1

// ExecutionOutcome is the per-target record the host reports back to
// its UI after a sandbox round trip.
type ExecutionOutcome struct {
	Output   string `json:"output"`
	Error    string `json:"error"`
	ExitCode int    `json:"exitCode"`
}

// ReviewRequest is the body the host sends to the review collaborator,
// carrying the original source, the translated text, and both language
// tags.
type ReviewRequest struct {
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// ReviewResult is the host-facing outcome of a review round trip: the
// corrected code (or the original translated text, on extraction
// failure) plus any issues the reviewer reported.
type ReviewResult struct {
	CorrectedCode string
	Issues        []string
}

// ExtractReviewJSON locates the first brace-balanced JSON substring in
// a free-text chat reply and reads corrected_code/issues out of it via
// gjson. Returns ok=false on any extraction or parse failure;
// the caller is expected to keep the original translated text with an
// empty issues list in that case.
func ExtractReviewJSON(reply string) (ReviewResult, bool) {
	sub, ok := firstBraceBalancedSubstring(reply)
	if !ok || !gjson.Valid(sub) {
		return ReviewResult{}, false
	}
	parsed := gjson.Parse(sub)
	code := parsed.Get("corrected_code")
	if !code.Exists() {
		return ReviewResult{}, false
	}
	result := ReviewResult{CorrectedCode: code.String()}
	for _, issue := range parsed.Get("issues").Array() {
		result.Issues = append(result.Issues, issue.String())
	}
	return result, true
}

// firstBraceBalancedSubstring scans s for the first top-level balanced
// {...} span, treating braces inside double-quoted strings as inert.
func firstBraceBalancedSubstring(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
