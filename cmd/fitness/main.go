// ABOUTME: Entry point for the fitness CLI.
// ABOUTME: Invokes the root Cobra command and reports errors on stderr.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
