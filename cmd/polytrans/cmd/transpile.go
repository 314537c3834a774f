package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/internal/parser/cfamily"
	"github.com/cwbudde/polytrans/internal/parser/jv"
	"github.com/cwbudde/polytrans/internal/parser/py"
	"github.com/cwbudde/polytrans/pkg/emit/c"
	"github.com/cwbudde/polytrans/pkg/emit/cpp"
	emitjv "github.com/cwbudde/polytrans/pkg/emit/jv"
	emitpy "github.com/cwbudde/polytrans/pkg/emit/py"
	"github.com/cwbudde/polytrans/pkg/transpiler"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	transpileFrom      string
	transpileTo        []string
	transpileSelfCheck bool
	transpileNoColor   bool
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [file]",
	Short: "Translate a program to the other three target languages",
	Long: `Parse a PY/C/CPP/JV program and emit it in the other three target
languages via the shared IR.

By default all three other targets are emitted; --to narrows the set.
If no file is provided, reads from stdin.

Examples:
  polytrans transpile --from py script.py
  polytrans transpile --from c --to cpp,jv program.c
  polytrans transpile --from py --self-check script.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspile,
}

func init() {
	rootCmd.AddCommand(transpileCmd)

	transpileCmd.Flags().StringVar(&transpileFrom, "from", "", "source language: py, c, cpp, or jv (required)")
	transpileCmd.Flags().StringSliceVar(&transpileTo, "to", nil, "comma-separated target languages (default: the other three)")
	transpileCmd.Flags().BoolVar(&transpileSelfCheck, "self-check", false, "round-trip the source language's own emitter and warn on structural drift")
	transpileCmd.Flags().BoolVar(&transpileNoColor, "no-color", false, "disable colorized panel output even on a TTY")
	transpileCmd.MarkFlagRequired("from")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	input, err := readSource(args)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(transpileFrom)
	if err != nil {
		return err
	}

	targets, err := resolveTargets(transpileTo, lang)
	if err != nil {
		return err
	}

	result := transpiler.New().Transpile(input, lang)

	if transpileSelfCheck {
		if warning := selfCheckWarning(input, lang); warning != "" {
			fmt.Fprintln(os.Stderr, warning)
		}
	}

	useColor := !transpileNoColor && isatty.IsTerminal(os.Stdout.Fd())
	printPanels(result, targets, useColor)

	if len(result.Errors) > 0 {
		errHeader := "errors:"
		if useColor {
			errHeader = color.New(color.FgRed, color.Bold).Sprint(errHeader)
		}
		fmt.Fprintln(os.Stderr, errHeader)
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, "  "+e)
		}
	}
	if !result.Success {
		return fmt.Errorf("transpile completed with %d error(s)", len(result.Errors))
	}
	return nil
}

// resolveTargets validates --to against the three languages other than
// lang, defaulting to all three when --to is empty.
func resolveTargets(raw []string, lang langspec.Language) ([]langspec.Language, error) {
	all := []langspec.Language{langspec.PY, langspec.C, langspec.CPP, langspec.JV}
	if len(raw) == 0 {
		var out []langspec.Language
		for _, l := range all {
			if l != lang {
				out = append(out, l)
			}
		}
		return out, nil
	}
	out := make([]langspec.Language, 0, len(raw))
	for _, tag := range raw {
		l, err := resolveLanguage(strings.TrimSpace(tag))
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// printPanels writes one panel per requested target, colorizing the
// header when useColor is set.
func printPanels(result *transpiler.TranspileResult, targets []langspec.Language, useColor bool) {
	header := color.New(color.FgCyan, color.Bold)
	for _, t := range targets {
		text, name := panelFor(result, t)
		title := fmt.Sprintf("=== %s ===", name)
		if useColor {
			title = header.Sprint(title)
		}
		fmt.Println(title)
		fmt.Println(text)
	}
}

func panelFor(result *transpiler.TranspileResult, lang langspec.Language) (text, name string) {
	switch lang {
	case langspec.PY:
		return result.PY, "PY"
	case langspec.C:
		return result.C, "C"
	case langspec.CPP:
		return result.CPP, "CPP"
	case langspec.JV:
		return result.JV, "JV"
	default:
		return "", string(lang)
	}
}

// selfCheckWarning parses the source once, emits it with its own
// language's back-end, re-parses the result, and compares shapes by
// statement count rather than a full deep-equal, which is sufficient to
// flag gross structural drift without duplicating the IR's equality
// rules.
func selfCheckWarning(source string, lang langspec.Language) string {
	firstCount, err := statementCount(source, lang)
	if err != nil {
		return ""
	}
	emitted := emitSelf(source, lang)
	if emitted == "" {
		return ""
	}
	secondCount, err := statementCount(emitted, lang)
	if err != nil {
		return fmt.Sprintf("self-check warning: re-parsing the emitted %s output failed: %v", lang, err)
	}
	if firstCount != secondCount {
		return fmt.Sprintf("self-check warning: round-trip statement count drifted (%d -> %d)", firstCount, secondCount)
	}
	return ""
}

func statementCount(source string, lang langspec.Language) (int, error) {
	switch lang {
	case langspec.PY:
		prog, _ := py.New(source).Parse()
		return len(prog.Body), nil
	case langspec.C:
		prog, _ := cfamily.New(source, cfamily.C).Parse()
		return len(prog.Body), nil
	case langspec.CPP:
		prog, _ := cfamily.New(source, cfamily.CPP).Parse()
		return len(prog.Body), nil
	case langspec.JV:
		prog, _ := jv.New(source).Parse()
		return len(prog.Body), nil
	default:
		return 0, fmt.Errorf("unknown language %q", lang)
	}
}

func emitSelf(source string, lang langspec.Language) string {
	switch lang {
	case langspec.PY:
		prog, _ := py.New(source).Parse()
		return emitpy.Emit(prog)
	case langspec.C:
		prog, _ := cfamily.New(source, cfamily.C).Parse()
		return c.Emit(prog)
	case langspec.CPP:
		prog, _ := cfamily.New(source, cfamily.CPP).Parse()
		return cpp.Emit(prog)
	case langspec.JV:
		prog, _ := jv.New(source).Parse()
		return emitjv.Emit(prog)
	default:
		return ""
	}
}
