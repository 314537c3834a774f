// Package langspec holds the per-language data tables — reserved words,
// operator tables, type-keyword sets — that drive the shared lexer
// (internal/lexer) and inform each parser's type-keyword disambiguation.
// Tables are data, not code, so adding a dialect
// variant never touches the lexer itself.
package langspec

import (
	"embed"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// Language tags a source or target language.
type Language string

const (
	PY  Language = "scripting"
	C   Language = "c-family"
	CPP Language = "cpp-family"
	JV  Language = "class-based"
)

// rawSpec mirrors the YAML table shape.
type rawSpec struct {
	Name               string   `yaml:"name"`
	Indentation        bool     `yaml:"indentation"`
	HasPreprocessor    bool     `yaml:"hasPreprocessor"`
	LineComment        string   `yaml:"lineComment"`
	BlockCommentOpen   string   `yaml:"blockCommentOpen"`
	BlockCommentClose  string   `yaml:"blockCommentClose"`
	StringInterpPrefix string   `yaml:"stringInterpPrefix"`
	Keywords           []string `yaml:"keywords"`
	TypeKeywords       []string `yaml:"typeKeywords"`
	Operators          []string `yaml:"operators"`
}

// Spec is the resolved, query-ready form of a language's lexical table.
type Spec struct {
	Language           Language
	Indentation        bool
	HasPreprocessor    bool
	LineComment        string
	BlockCommentOpen   string
	BlockCommentClose  string
	StringInterpPrefix string

	keywords     map[string]bool
	typeKeywords map[string]bool
	// operators, longest-match-first: multi-character
	// operators are preferred over single-character punctuation.
	operators []string
}

// IsKeyword reports whether literal is a reserved word in this language.
func (s *Spec) IsKeyword(literal string) bool { return s.keywords[literal] }

// IsTypeKeyword reports whether literal introduces a declaration type.
func (s *Spec) IsTypeKeyword(literal string) bool { return s.typeKeywords[literal] }

// Operators returns the multi-character operator table, longest first.
func (s *Spec) Operators() []string { return s.operators }

var cache = map[Language]*Spec{}

// Load returns the Spec for lang, parsing and caching its embedded YAML
// table on first use.
func Load(lang Language) (*Spec, error) {
	if s, ok := cache[lang]; ok {
		return s, nil
	}

	file, ok := tableFile(lang)
	if !ok {
		return nil, fmt.Errorf("langspec: unknown language %q", lang)
	}

	data, err := tablesFS.ReadFile("tables/" + file)
	if err != nil {
		return nil, fmt.Errorf("langspec: reading table for %q: %w", lang, err)
	}

	var raw rawSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("langspec: parsing table for %q: %w", lang, err)
	}

	spec := &Spec{
		Language:           lang,
		Indentation:        raw.Indentation,
		HasPreprocessor:    raw.HasPreprocessor,
		LineComment:        raw.LineComment,
		BlockCommentOpen:   raw.BlockCommentOpen,
		BlockCommentClose:  raw.BlockCommentClose,
		StringInterpPrefix: raw.StringInterpPrefix,
		keywords:           toSet(raw.Keywords),
		typeKeywords:       toSet(raw.TypeKeywords),
		operators:          sortedByLengthDesc(raw.Operators),
	}

	cache[lang] = spec
	return spec, nil
}

// MustLoad is Load but panics on error; used for package-level var init
// in front-ends where the embedded table is known-good at build time.
func MustLoad(lang Language) *Spec {
	s, err := Load(lang)
	if err != nil {
		panic(err)
	}
	return s
}

func tableFile(lang Language) (string, bool) {
	switch lang {
	case PY:
		return "py.yaml", true
	case C:
		return "c.yaml", true
	case CPP:
		return "cpp.yaml", true
	case JV:
		return "jv.yaml", true
	default:
		return "", false
	}
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func sortedByLengthDesc(ops []string) []string {
	out := append([]string(nil), ops...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}
