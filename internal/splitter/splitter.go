// =============================================================================
// Tabular File Splitter - Splitter and File Processor
// =============================================================================
//
// This package drives the reader and writer for one input file. The Splitter
// obtains the ordered batch sequence, assigns part numbers (1, 2, 3, ... in
// production order), and invokes the part writer for each batch. Part
// numbering restarts at 1 for every input file; no part-number state is
// shared between files.
//
// FAILURE SEMANTICS:
//   Any read or write error for a file is logged (error event carrying the
//   file path and detail) and processing of that file stops at the point of
//   failure. Parts already written remain on disk; there is no rollback and
//   no retry. FileProcessor is the error boundary: nothing propagates past
//   Process, so one failing file never aborts the others. Split itself
//   returns the error to its caller after logging it; the boundary lives in
//   exactly one place.
//
// =============================================================================

package splitter

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tabkit/tabsplit/internal/reader"
	"github.com/tabkit/tabsplit/internal/types"
)

// =============================================================================
// SPLITTER
// =============================================================================

// Splitter partitions one input file into row-bounded parts.
type Splitter struct {
	// RowLimit is the maximum number of rows per part.
	RowLimit int

	// OutputDir is the directory receiving the part files.
	OutputDir string

	// Writer emits each batch in the enabled output formats.
	Writer PartWriter

	// Log receives one error event per failed file.
	Log *logrus.Entry
}

// PartWriter is the writing side of the split: it persists one batch under
// one part descriptor. Satisfied by *writer.PartWriter; tests substitute a
// capturing implementation.
type PartWriter interface {
	WritePart(batch *types.RowBatch, desc types.PartDescriptor) error
}

// New builds a Splitter writing parts of at most rowLimit rows into
// outputDir through pw.
func New(rowLimit int, outputDir string, pw PartWriter, log *logrus.Entry) *Splitter {
	return &Splitter{
		RowLimit:  rowLimit,
		OutputDir: outputDir,
		Writer:    pw,
		Log:       log,
	}
}

// Split partitions the file at path into sequentially numbered parts. It
// returns the number of parts produced and the number of source rows they
// carry. The boundary is purely row-count based: part i contains source
// rows [(i-1)*limit, i*limit), with the final part possibly shorter. An
// empty file (no data rows) produces zero parts and no error.
//
// On failure the error is logged and returned; parts written before the
// failure remain on disk.
func (s *Splitter) Split(path string) (parts int, rows int, err error) {
	r, err := reader.Open(path, s.RowLimit)
	if err != nil {
		s.logError(path, err)
		return 0, 0, err
	}
	defer r.Close()

	base := types.BaseName(path)

	for number := 1; ; number++ {
		batch, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logError(path, err)
			return parts, rows, err
		}

		desc := types.PartDescriptor{
			Base:      base,
			Number:    number,
			OutputDir: s.OutputDir,
		}
		if err := s.Writer.WritePart(batch, desc); err != nil {
			s.logError(path, err)
			return parts, rows, err
		}

		parts++
		rows += batch.Len()
	}

	return parts, rows, nil
}

// logError emits the per-file error event.
func (s *Splitter) logError(path string, err error) {
	s.Log.WithFields(logrus.Fields{
		"file":  path,
		"error": err.Error(),
	}).Error("failed to process file")
}

// =============================================================================
// FILE PROCESSOR
// =============================================================================

// FileProcessor is the supervisory wrapper around the Splitter: it
// guarantees that no error escapes to the caller. Every outcome, success or
// failure, is shaped into a Result keyed by the file path. This is the
// single error boundary for a file's processing.
type FileProcessor struct {
	Splitter *Splitter
}

// Process splits one file and returns its outcome. It never returns an
// error and never panics on reader or writer failures; failed files are
// reported through the Result and the log.
func (p *FileProcessor) Process(path string) types.Result {
	parts, rows, err := p.Splitter.Split(path)
	return types.Result{
		FilePath: path,
		Parts:    parts,
		Rows:     rows,
		Success:  err == nil,
		Err:      err,
	}
}
