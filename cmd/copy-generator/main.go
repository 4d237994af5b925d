// Package main provides the CLI entrypoint for copy-generator.
//
// copy-generator synthesizes member-copying methods for C# types described
// in YAML manifests:
//   - gen writes one "<Namespace>.<Name>.g.cs" file per annotated type
//   - check reports generated files that are out of date
//   - plan prints the resolved method plans for review
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		if !errors.Is(err, errDrift) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}
