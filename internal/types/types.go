// =============================================================================
// Tabular File Splitter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - reader
//   - writer
//   - splitter
//   - dispatcher
//
// It also defines the error taxonomy for the splitter:
//   - UnsupportedFormatError : file extension is neither .csv nor .xlsx
//   - ReadError              : source file missing, corrupt, or unparsable
//   - WriteError             : destination unwritable or serialization failed
//
// =============================================================================

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// =============================================================================
// FORMAT TAGS
// =============================================================================

// Format identifies the tabular format of an input or output file.
type Format string

const (
	// FormatCSV is the streamed format, read in bounded-memory chunks.
	FormatCSV Format = "csv"

	// FormatXLSX is the full-load spreadsheet format, read entirely into
	// memory before slicing.
	FormatXLSX Format = "xlsx"
)

// DetectFormat returns the format for a file path based on its extension.
// The second return value is false if the extension is not recognized.
// Extension matching is case-insensitive.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	default:
		return "", false
	}
}

// BaseName returns the base filename of a path with the directory and
// extension stripped. It is the naming prefix shared by all parts produced
// from one input file.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// ROW BATCH
// =============================================================================

// RowBatch is an ordered sequence of records produced by a reader for one
// output part. All batches from one file share the same column set and order,
// derived from the source file's header row.
type RowBatch struct {
	// Columns is the stable column order from the source header.
	Columns []string

	// Rows contains the data records as maps of column name -> value.
	Rows []map[string]string
}

// Len returns the number of records in the batch.
func (b *RowBatch) Len() int {
	return len(b.Rows)
}

// =============================================================================
// PART DESCRIPTOR
// =============================================================================

// PartDescriptor identifies one output part of a split file. It determines
// the output path(s) for the part: {base}_part_{number}.csv / .xlsx.
type PartDescriptor struct {
	// Base is the source filename without directory or extension.
	Base string

	// Number is the 1-indexed part number, assigned in batch production order.
	Number int

	// OutputDir is the directory the part files are written into.
	OutputDir string
}

// CSVPath returns the output path for the CSV rendition of the part.
func (d PartDescriptor) CSVPath() string {
	return filepath.Join(d.OutputDir, fmt.Sprintf("%s_part_%d.csv", d.Base, d.Number))
}

// XLSXPath returns the output path for the XLSX rendition of the part.
func (d PartDescriptor) XLSXPath() string {
	return filepath.Join(d.OutputDir, fmt.Sprintf("%s_part_%d.xlsx", d.Base, d.Number))
}

// =============================================================================
// PROCESSING RESULT
// =============================================================================

// Result holds the outcome of processing a single input file.
// Results are collected by the dispatcher to build the run summary.
type Result struct {
	// FilePath is the path to the input file.
	FilePath string

	// Parts is the number of parts produced before processing stopped.
	// Parts written before a failure remain on disk.
	Parts int

	// Rows is the number of source rows carried into those parts.
	Rows int

	// Success indicates whether the file was processed completely.
	Success bool

	// Err is the failure cause when Success is false.
	Err error
}

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// UnsupportedFormatError indicates a file whose extension is neither
// recognized tabular format.
type UnsupportedFormatError struct {
	// Path is the offending file.
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Path)
}

// ReadError indicates the source file is missing, corrupt, or unparsable.
// Extension-based dispatch and content-based parse failure are distinct:
// a recognized extension over malformed content is a ReadError, never an
// UnsupportedFormatError.
type ReadError struct {
	// Path is the offending file.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError indicates the output destination is unwritable or the target
// format serializer failed.
type WriteError struct {
	// Path is the output file that could not be written.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *WriteError) Unwrap() error {
	return e.Err
}
