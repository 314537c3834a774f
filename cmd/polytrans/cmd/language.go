package cmd

import (
	"fmt"

	"github.com/cwbudde/polytrans/internal/langspec"
)

// languageAliases accepts both the descriptive family tags (scripting,
// c-family, cpp-family, class-based) and the shorter names used
// throughout this codebase's packages (py, c, cpp, jv) on the command
// line.
var languageAliases = map[string]langspec.Language{
	"py":          langspec.PY,
	"scripting":   langspec.PY,
	"c":           langspec.C,
	"c-family":    langspec.C,
	"cpp":         langspec.CPP,
	"cpp-family":  langspec.CPP,
	"jv":          langspec.JV,
	"class-based": langspec.JV,
}

func resolveLanguage(tag string) (langspec.Language, error) {
	lang, ok := languageAliases[tag]
	if !ok {
		return "", fmt.Errorf("unknown language %q (want one of py, c, cpp, jv)", tag)
	}
	return lang, nil
}
