// =============================================================================
// Tabular File Splitter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'split', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tabsplit)
//   ├── splitCmd (tabsplit split)
//   └── versionCmd (tabsplit version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Delegating configuration loading to the individual commands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "tabsplit",

	// Short is a short description shown in the 'help' output.
	Short: "Tabular File Splitter - Split large CSV/XLSX files into row-bounded parts",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `Tabular File Splitter is a CLI tool that splits large tabular data files
(CSV and XLSX) into smaller, sequentially numbered parts bounded by a
configurable row limit.

Key Features:
  - Streamed, bounded-memory reads for CSV sources
  - Full-load slicing for XLSX sources with identical partitioning semantics
  - CSV and/or XLSX output per part, selected by configuration
  - Concurrent processing of multiple input files with per-file error isolation
  - Per-run timestamped log file recording every write and failure

Example Usage:
  tabsplit split                       # Split all files in the input directory
  tabsplit split --config ./my.yaml    # Use a custom configuration file
  tabsplit split --max-rows 500        # Override the configured row limit`,

	// Run is the function that will be executed when the root command is called
	// without any subcommands. In this case, we just print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags shared by all subcommands.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "config.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
