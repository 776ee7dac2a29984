// =============================================================================
// Tabular File Splitter - CSV Reader (Streamed Format)
// =============================================================================
//
// Streamed reading strategy for CSV sources. The file is consumed record by
// record through encoding/csv; each call to Next accumulates at most one
// batch of records, so memory use is bounded to a single batch regardless of
// the size of the source file.
//
// The reader is tolerant of real-world CSV exports:
//   - Variable field counts per record (short rows pad, long rows truncate)
//   - Lazy quotes (quotes that don't follow strict CSV rules)
//   - Leading whitespace in fields
//
// =============================================================================

package reader

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"

	"github.com/tabkit/tabsplit/internal/types"
)

// csvReader streams one CSV file as a sequence of row batches.
type csvReader struct {
	path    string
	file    *os.File
	csv     *csv.Reader
	columns []string
	limit   int
	done    bool
}

// openCSV opens the file and reads the header row. A zero-byte file is
// treated as having no rows, not as corrupt.
func openCSV(path string, rowLimit int) (*csvReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &types.ReadError{Path: path, Err: err}
	}

	// Buffered reader for better performance on large files.
	cr := csv.NewReader(bufio.NewReader(file))

	// Allow variable numbers of fields per record; ragged rows are
	// reconciled against the header when batches are built.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	r := &csvReader{
		path:  path,
		file:  file,
		csv:   cr,
		limit: rowLimit,
	}

	// The first record is the header; it defines the column order for
	// every batch of this file.
	header, err := cr.Read()
	if err == io.EOF {
		r.done = true
		return r, nil
	}
	if err != nil {
		file.Close()
		return nil, &types.ReadError{Path: path, Err: err}
	}
	r.columns = header

	return r, nil
}

// Columns returns the header columns in file order.
func (r *csvReader) Columns() []string {
	return r.columns
}

// Next reads up to one batch of records from the stream.
func (r *csvReader) Next() (*types.RowBatch, error) {
	if r.done {
		return nil, io.EOF
	}

	batch := &types.RowBatch{Columns: r.columns}
	for len(batch.Rows) < r.limit {
		record, err := r.csv.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		if err != nil {
			return nil, &types.ReadError{Path: r.path, Err: err}
		}
		batch.Rows = append(batch.Rows, pad(r.columns, record))
	}

	// A header with no remaining data rows ends the sequence cleanly.
	if batch.Len() == 0 {
		return nil, io.EOF
	}

	return batch, nil
}

// Close releases the underlying file handle.
func (r *csvReader) Close() error {
	return r.file.Close()
}
