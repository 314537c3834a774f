package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/polytrans/internal/langspec"
	"github.com/cwbudde/polytrans/internal/lexer"
	"github.com/cwbudde/polytrans/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexFrom     string
	lexShowPos  bool
	lexOnlyKind string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `Tokenize (lex) a PY/C/CPP/JV program and print the resulting tokens.

This command is useful for debugging a front-end's lexer pipeline stage
independently of parsing.

If no file is provided, reads from stdin.

Examples:
  polytrans lex --from py script.py
  polytrans lex --from jv --show-pos Main.java
  cat script.c | polytrans lex --from c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVar(&lexFrom, "from", "", "source language: py, c, cpp, or jv (required)")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().StringVar(&lexOnlyKind, "only-kind", "", "show only tokens of the given kind name (e.g. KEYWORD)")
	lexCmd.MarkFlagRequired("from")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, err := readSource(args)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(lexFrom)
	if err != nil {
		return err
	}

	spec := langspec.MustLoad(lang)
	l := lexer.New(input, spec)

	count := 0
	for {
		tok := l.NextToken()
		if lexOnlyKind == "" || tok.Kind.String() == lexOnlyKind {
			printToken(tok)
			count++
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "%d token(s)\n", count)
	}
	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-12s] %q", tok.Kind, tok.Literal)
	if lexShowPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	if tok.Indent != 0 {
		output += fmt.Sprintf(" indent=%d", tok.Indent)
	}
	fmt.Println(output)
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
