// =============================================================================
// Tabular File Splitter - Dispatcher
// =============================================================================
//
// This package enumerates eligible input files and runs the file processor
// for each of them concurrently.
//
// CONCURRENCY MODEL:
//   All matching files are submitted to a bounded worker pool and run with
//   no ordering guarantee between files. Each worker handles exactly one
//   file end-to-end (all batches read, all parts written), so there is no
//   cross-file shared mutable state and no locking. The pool size defaults
//   to the host's parallelism rather than one goroutine per file, bounding
//   resource usage under large input directories. Run blocks until every
//   submitted file has completed, success or logged failure.
//
// =============================================================================

package dispatcher

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tabkit/tabsplit/internal/types"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Processor handles one input file and reports its outcome. Errors never
// propagate out of a Processor; they are contained and logged inside it.
type Processor interface {
	Process(path string) types.Result
}

// Dispatcher fans the eligible files of a directory out to a worker pool.
type Dispatcher struct {
	// Processor handles each file.
	Processor Processor

	// Workers bounds the pool. Values <= 0 select runtime.GOMAXPROCS(0).
	Workers int

	// Log receives debug events for skipped entries.
	Log *logrus.Entry
}

// Summary aggregates the outcomes of one dispatch pass.
type Summary struct {
	// Total is the number of eligible files found.
	Total int

	// Succeeded is the number of files processed completely.
	Succeeded int

	// Failed is the number of files that stopped on an error.
	Failed int

	// Parts is the total number of part files' worth of batches produced
	// across all files.
	Parts int

	// Results holds the per-file outcomes, in completion order.
	Results []types.Result
}

// =============================================================================
// DISPATCH
// =============================================================================

// Scan lists the input directory non-recursively and returns the paths of
// the files whose extension matches a recognized format, in directory
// order. Subdirectories and unrecognized extensions are skipped.
func (d *Dispatcher) Scan(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := types.DetectFormat(entry.Name()); !ok {
			d.Log.WithField("file", entry.Name()).Debug("skipping unrecognized extension")
			continue
		}
		files = append(files, filepath.Join(inputDir, entry.Name()))
	}

	return files, nil
}

// Run processes every eligible file in the input directory on the worker
// pool and blocks until all of them have finished. Per-file failures are
// reflected in the summary and the log, never in the returned error; only
// a failure to list the directory is returned.
func (d *Dispatcher) Run(inputDir string) (*Summary, error) {
	files, err := d.Scan(inputDir)
	if err != nil {
		return nil, err
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffered so no worker blocks on result delivery.
	results := make(chan types.Result, len(files))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			// Acquire a pool slot for the duration of this file.
			sem <- struct{}{}
			defer func() { <-sem }()

			results <- d.Processor.Process(path)
		}(file)
	}

	// Close the results channel when all workers are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &Summary{Total: len(files)}
	for result := range results {
		if result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Parts += result.Parts
		summary.Results = append(summary.Results, result)
	}

	return summary, nil
}
