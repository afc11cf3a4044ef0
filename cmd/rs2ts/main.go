// Command rs2ts transpiles a subset of Rust to TypeScript.
//
// Usage:
//
//	rs2ts [flags] <command>
//
// Examples:
//
//	rs2ts arg 'const FOUR: u8 = 4;'          # Transpile a snippet
//	rs2ts file lib.rs                        # Transpile a file to stdout
//	rs2ts file -o lib.ts lib.rs              # Transpile a file to a file
//	rs2ts tokens lib.rs                      # Dump the lexemes of a file
//	rs2ts --wrapper-types config --yaml      # Print the effective configuration
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opinionated/rs2ts"
)

const rs2tsVersion = "0.1.0-dev"

func main() {
	if err := newRootCmd(os.LookupEnv).Execute(); err != nil {
		var terr *rs2ts.Error
		if errors.As(err, &terr) {
			fmt.Fprintln(os.Stderr, strings.TrimSuffix(terr.FormatWithContext(), "\n"))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
