package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "polytrans",
	Short: "Source-to-source translator across four imperative languages",
	Long: `polytrans translates small programs among four imperative source
languages on a shared intermediate representation: an indentation-based
scripting language (PY), a C-family low-level language (C), a C++-family
object-capable language (CPP), and a class-based managed language (JV).

Given one input and its source language, it parses to IR once and emits
all three other targets (plus the source language itself, which serves
as a canonicalizer and self-check).`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
