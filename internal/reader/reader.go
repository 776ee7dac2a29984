// =============================================================================
// Tabular File Splitter - Tabular Reader
// =============================================================================
//
// This package abstracts reading a source file as an ordered, lazy sequence
// of row batches. Two reading strategies sit behind one contract:
//
//   - CSV  : streamed chunk reads; memory use is bounded to one batch
//   - XLSX : full in-memory load, then logical slicing into windows
//            (the format lacks a chunked read primitive)
//
// Both strategies produce identical partitioning semantics: for a given row
// limit, batch i always contains source rows [(i-1)*limit, i*limit),
// 0-indexed, with the last batch possibly shorter.
//
// The sequence is finite, forward-only, and non-restartable: a reader makes
// a single pass over its file.
//
// =============================================================================

package reader

import (
	"github.com/tabkit/tabsplit/internal/types"
)

// =============================================================================
// READER CONTRACT
// =============================================================================

// TabularReader produces the ordered batch sequence for one input file.
// Each batch contains at most the configured row limit of records, in file
// order. Next returns io.EOF when the sequence is exhausted; a file with no
// data rows yields io.EOF on the first call.
type TabularReader interface {
	// Columns returns the stable column order from the source header.
	// It is empty for a file with no header row.
	Columns() []string

	// Next returns the next batch, or io.EOF when the file is exhausted.
	// Any other error is a *types.ReadError.
	Next() (*types.RowBatch, error)

	// Close releases the underlying file handle. Safe to call after an
	// error from Next.
	Close() error
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// Open selects the reading strategy for the file based on its extension and
// returns a reader producing batches of at most rowLimit records.
//
// ERRORS:
//   - *types.UnsupportedFormatError if the extension is neither .csv nor .xlsx
//   - *types.ReadError if the file is missing, corrupt, or unparsable
func Open(path string, rowLimit int) (TabularReader, error) {
	format, ok := types.DetectFormat(path)
	if !ok {
		return nil, &types.UnsupportedFormatError{Path: path}
	}

	switch format {
	case types.FormatCSV:
		return openCSV(path, rowLimit)
	default:
		return openXLSX(path, rowLimit)
	}
}

// pad maps one raw record onto the column set. Short records pad missing
// columns with ""; values beyond the header width are dropped.
func pad(columns []string, record []string) map[string]string {
	row := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
