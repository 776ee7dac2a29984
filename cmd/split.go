// =============================================================================
// Tabular File Splitter - Split Command
// =============================================================================
//
// This file defines the 'split' command, which is the main command of the
// application. It orchestrates the whole splitting pipeline.
//
// COMMAND USAGE:
//   tabsplit split [flags]
//
// FLAGS:
//   --input       : Override the configured input directory
//   --output      : Override the configured output directory
//   --max-rows    : Override the configured row limit
//   --workers     : Override the worker pool size
//   --dry-run     : List the files that would be split without writing parts
//
// PROCESSING PIPELINE:
//   1. Load configuration and apply flag overrides
//   2. Set up the per-run log file
//   3. Discover eligible files in the input directory
//   4. For each file (concurrently, on a bounded pool):
//      a. Read the file as a sequence of row-bounded batches
//      b. Write each batch as part files in the enabled formats
//   5. Generate summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabkit/tabsplit/internal/config"
	"github.com/tabkit/tabsplit/internal/dispatcher"
	"github.com/tabkit/tabsplit/internal/logging"
	"github.com/tabkit/tabsplit/internal/splitter"
	"github.com/tabkit/tabsplit/internal/writer"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputDir overrides the configured input directory.
var inputDir string

// outputDir overrides the configured output directory.
var outputDir string

// maxRows overrides the configured row limit.
var maxRows int

// workers overrides the configured worker pool size.
var workers int

// dryRun lists the eligible files without splitting them.
var dryRun bool

// =============================================================================
// SPLIT COMMAND DEFINITION
// =============================================================================

// splitCmd represents the 'split' command.
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split all CSV/XLSX files in the input directory into row-bounded parts",
	Long: `The split command scans the input directory for CSV and XLSX files and
splits each of them into sequentially numbered parts of at most the
configured number of rows, named {base}_part_{n}.csv / .xlsx.

Files are processed concurrently on a bounded worker pool. Each file is
processed independently, and errors in one file do not affect the
processing of others.

On success:
  - Every part is placed in the output directory with its headers intact
  - An info event is logged for every part file written

On error:
  - An error event identifying the file is logged
  - Parts already written for that file remain in the output directory
  - Processing continues for other files`,

	// RunE is like Run but returns an error. This is preferred for commands
	// that can fail, as it allows Cobra to handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSplit()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the split command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(splitCmd)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================
	// Local flags are only available to this command.

	splitCmd.Flags().StringVar(
		&inputDir,
		"input",
		"",
		"Override the configured input directory",
	)

	splitCmd.Flags().StringVar(
		&outputDir,
		"output",
		"",
		"Override the configured output directory",
	)

	splitCmd.Flags().IntVar(
		&maxRows,
		"max-rows",
		0,
		"Override the configured maximum number of rows per part",
	)

	splitCmd.Flags().IntVar(
		&workers,
		"workers",
		0,
		"Override the worker pool size (0 = host parallelism)",
	)

	splitCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"List the files that would be split without writing parts",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runSplit is the main function that orchestrates the splitting pipeline.
func runSplit() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Tabular File Splitter ===")
	fmt.Println("Loading configuration...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: SET UP LOGGING
	// =========================================================================
	// One log file per invocation, named after the process start time. The
	// logger instance is injected into every component below; nothing logs
	// through a global.

	log, closer := logging.New(cfg.LogDir, verbose)
	defer closer.Close()

	// =========================================================================
	// STEP 3: BUILD THE PIPELINE
	// =========================================================================

	pw := &writer.PartWriter{
		CSV:   cfg.CSVOutput,
		Excel: cfg.ExcelOutput,
		Log:   log,
	}

	disp := &dispatcher.Dispatcher{
		Processor: &splitter.FileProcessor{
			Splitter: splitter.New(cfg.MaxRows, cfg.OutputDir, pw, log),
		},
		Workers: cfg.MaxWorkers,
		Log:     log,
	}

	// =========================================================================
	// STEP 4: DISCOVER AND PROCESS FILES
	// =========================================================================

	fmt.Println("Discovering input files...")

	if dryRun {
		return runDryRun(disp, cfg.InputDir)
	}

	summary, err := disp.Run(cfg.InputDir)
	if err != nil {
		return err
	}

	if summary.Total == 0 {
		fmt.Println("No CSV or XLSX files found in the input directory.")
		return nil
	}

	for _, result := range summary.Results {
		if result.Success {
			fmt.Printf("  ✓ %s -> %d part(s), %d row(s)\n",
				filepath.Base(result.FilePath), result.Parts, result.Rows)
		} else {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Err)
		}
	}

	// =========================================================================
	// STEP 5: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.Total)
	fmt.Printf("Successful:      %d\n", summary.Succeeded)
	fmt.Printf("Errors:          %d\n", summary.Failed)
	fmt.Printf("Parts written:   %d\n", summary.Parts)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if summary.Failed > 0 {
		fmt.Println("\nFailures have been logged to the log directory.")
	}

	// Per-file failures are reported via the log and the summary. Only a
	// run with failures and not a single success is surfaced as a command
	// error.
	if summary.Failed > 0 && summary.Succeeded == 0 {
		return fmt.Errorf("all %d file(s) failed; see the log for details", summary.Failed)
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the configuration file and applies flag overrides. A
// missing config file at the default location is not an error: all options
// have defaults and can be supplied via flags.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config

	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// Flag overrides take precedence over the file.
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if maxRows > 0 {
		cfg.MaxRows = maxRows
	}
	if workers > 0 {
		cfg.MaxWorkers = workers
	}

	// Re-validate after overrides (also creates any missing directories).
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// runDryRun lists the eligible files without processing them.
func runDryRun(disp *dispatcher.Dispatcher, dir string) error {
	files, err := disp.Scan(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Println("No CSV or XLSX files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process (dry run, nothing written):\n", len(files))
	for _, file := range files {
		fmt.Printf("  - %s\n", filepath.Base(file))
	}

	return nil
}
