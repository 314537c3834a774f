// Command polytrans is the CLI front end for the translator core: it
// tokenizes, parses, and transpiles PY/C/CPP/JV source through the
// shared intermediate representation in pkg/transpiler.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/polytrans/cmd/polytrans/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
