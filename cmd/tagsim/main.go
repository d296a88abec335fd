package main

// ============================================================================
// Responsibilities:
// 1. CLI application entry point
// 2. Build and execute the CLI commands
// 3. Handle top-level errors
// ============================================================================

import (
	"fmt"
	"os"

	"github.com/jahyunlee00299/tagsim/internal/cli"
)

func main() {
	rootCmd := cli.BuildCLI()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
