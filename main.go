// =============================================================================
// Tabular File Splitter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the tabsplit CLI application. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   tabsplit split         - Split all CSV/XLSX files in the input directory
//   tabsplit version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//
// =============================================================================

package main

import (
	"github.com/tabkit/tabsplit/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
