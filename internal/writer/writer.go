// =============================================================================
// Tabular File Splitter - Part Writer
// =============================================================================
//
// This package writes one row batch to one or more output formats with the
// deterministic naming scheme {base}_part_{number}.csv / .xlsx. Which
// formats are emitted is controlled by the CSV/Excel flags; with neither
// set, writing is a no-op, not an error.
//
// GUARANTEES:
//   - Column headers are written in every output file
//   - No row index or ordinal column is ever persisted
//   - Re-invoking with the same descriptor overwrites prior output
//     (last write wins); no partial-file guarantee is made when a write
//     fails mid-stream
//   - One info-level log event per successfully written file, carrying the
//     output path and format
//
// =============================================================================

package writer

import (
	"encoding/csv"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/tabkit/tabsplit/internal/types"
)

// =============================================================================
// PART WRITER
// =============================================================================

// PartWriter writes row batches as part files in the enabled formats.
type PartWriter struct {
	// CSV emits a .csv file for every part when true.
	CSV bool

	// Excel emits a .xlsx file for every part when true.
	Excel bool

	// Log receives one info event per written file.
	Log *logrus.Entry
}

// WritePart writes the batch in every enabled format. With no format
// enabled it does nothing and returns nil.
//
// ERRORS:
//   - *types.WriteError if the output directory is not writable or a
//     format serializer fails. Remaining formats are not attempted.
func (w *PartWriter) WritePart(batch *types.RowBatch, desc types.PartDescriptor) error {
	if w.CSV {
		if err := w.writeCSV(batch, desc); err != nil {
			return err
		}
	}
	if w.Excel {
		if err := w.writeXLSX(batch, desc); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// CSV OUTPUT
// =============================================================================

// writeCSV writes the batch as {base}_part_{n}.csv: the header row followed
// by the records in column order.
func (w *PartWriter) writeCSV(batch *types.RowBatch, desc types.PartDescriptor) error {
	path := desc.CSVPath()

	file, err := os.Create(path)
	if err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(batch.Columns); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}

	record := make([]string, len(batch.Columns))
	for _, row := range batch.Rows {
		for i, col := range batch.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return &types.WriteError{Path: path, Err: err}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}

	w.Log.WithFields(logrus.Fields{
		"path":   path,
		"format": string(types.FormatCSV),
		"rows":   batch.Len(),
	}).Info("saved part")

	return nil
}

// =============================================================================
// XLSX OUTPUT
// =============================================================================

// writeXLSX writes the batch as {base}_part_{n}.xlsx on the workbook's
// default sheet: the header row followed by the records in column order.
func (w *PartWriter) writeXLSX(batch *types.RowBatch, desc types.PartDescriptor) error {
	path := desc.XLSXPath()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := setRow(f, sheet, 1, batch.Columns); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}

	record := make([]string, len(batch.Columns))
	for i, row := range batch.Rows {
		for j, col := range batch.Columns {
			record[j] = row[col]
		}
		// Data starts on sheet row 2, below the header.
		if err := setRow(f, sheet, i+2, record); err != nil {
			return &types.WriteError{Path: path, Err: err}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}

	w.Log.WithFields(logrus.Fields{
		"path":   path,
		"format": string(types.FormatXLSX),
		"rows":   batch.Len(),
	}).Info("saved part")

	return nil
}

// setRow writes one sheet row starting at column A.
func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cell, &row)
}
