package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tabkit/tabsplit/internal/types"
)

// =============================================================================
// FIXTURE HELPERS
// =============================================================================

// testBatch builds a batch of n sequential rows over an id/name column set.
func testBatch(n int) *types.RowBatch {
	batch := &types.RowBatch{Columns: []string{"id", "name"}}
	for i := 1; i <= n; i++ {
		batch.Rows = append(batch.Rows, map[string]string{
			"id":   fmt.Sprintf("%d", i),
			"name": fmt.Sprintf("row-%d", i),
		})
	}
	return batch
}

// newTestWriter builds a PartWriter with a capturing logger.
func newTestWriter(csvOut, excelOut bool) (*PartWriter, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	return &PartWriter{
		CSV:   csvOut,
		Excel: excelOut,
		Log:   logrus.NewEntry(logger),
	}, hook
}

// readCSVFile reads back a written CSV part.
func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

// readXLSXFile reads back a written XLSX part.
func readXLSXFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

// =============================================================================
// FORMAT FLAG MATRIX
// =============================================================================

func TestWritePart(t *testing.T) {
	t.Run("NoFlagsIsNoOp", func(t *testing.T) {
		dir := t.TempDir()
		w, hook := newTestWriter(false, false)
		desc := types.PartDescriptor{Base: "data", Number: 1, OutputDir: dir}

		require.NoError(t, w.WritePart(testBatch(5), desc))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Empty(t, hook.Entries)
	})

	t.Run("CSVOnly", func(t *testing.T) {
		dir := t.TempDir()
		w, hook := newTestWriter(true, false)
		desc := types.PartDescriptor{Base: "data", Number: 2, OutputDir: dir}

		require.NoError(t, w.WritePart(testBatch(3), desc))

		records := readCSVFile(t, filepath.Join(dir, "data_part_2.csv"))
		require.Len(t, records, 4) // header + 3 rows
		assert.Equal(t, []string{"id", "name"}, records[0])
		assert.Equal(t, []string{"1", "row-1"}, records[1])
		assert.Equal(t, []string{"3", "row-3"}, records[3])

		_, err := os.Stat(filepath.Join(dir, "data_part_2.xlsx"))
		assert.True(t, os.IsNotExist(err))

		// One info event carrying path and format.
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, logrus.InfoLevel, hook.Entries[0].Level)
		assert.Equal(t, filepath.Join(dir, "data_part_2.csv"), hook.Entries[0].Data["path"])
		assert.Equal(t, "csv", hook.Entries[0].Data["format"])
	})

	t.Run("ExcelOnly", func(t *testing.T) {
		dir := t.TempDir()
		w, hook := newTestWriter(false, true)
		desc := types.PartDescriptor{Base: "data", Number: 1, OutputDir: dir}

		require.NoError(t, w.WritePart(testBatch(2), desc))

		rows := readXLSXFile(t, filepath.Join(dir, "data_part_1.xlsx"))
		require.Len(t, rows, 3) // header + 2 rows
		assert.Equal(t, []string{"id", "name"}, rows[0])
		assert.Equal(t, []string{"2", "row-2"}, rows[2])

		_, err := os.Stat(filepath.Join(dir, "data_part_1.csv"))
		assert.True(t, os.IsNotExist(err))

		require.Len(t, hook.Entries, 1)
		assert.Equal(t, "xlsx", hook.Entries[0].Data["format"])
	})

	t.Run("BothFormats", func(t *testing.T) {
		dir := t.TempDir()
		w, hook := newTestWriter(true, true)
		desc := types.PartDescriptor{Base: "data", Number: 1, OutputDir: dir}

		require.NoError(t, w.WritePart(testBatch(1), desc))

		assert.FileExists(t, filepath.Join(dir, "data_part_1.csv"))
		assert.FileExists(t, filepath.Join(dir, "data_part_1.xlsx"))
		assert.Len(t, hook.Entries, 2)
	})
}

// =============================================================================
// OVERWRITE AND FAILURE BEHAVIOR
// =============================================================================

func TestWritePartOverwrites(t *testing.T) {
	// Re-invoking with the same descriptor overwrites: last write wins.
	dir := t.TempDir()
	w, _ := newTestWriter(true, true)
	desc := types.PartDescriptor{Base: "data", Number: 1, OutputDir: dir}

	require.NoError(t, w.WritePart(testBatch(5), desc))
	require.NoError(t, w.WritePart(testBatch(2), desc))

	records := readCSVFile(t, filepath.Join(dir, "data_part_1.csv"))
	assert.Len(t, records, 3) // header + 2 rows

	rows := readXLSXFile(t, filepath.Join(dir, "data_part_1.xlsx"))
	assert.Len(t, rows, 3)
}

func TestWritePartUnwritableDirectory(t *testing.T) {
	w, _ := newTestWriter(true, false)
	desc := types.PartDescriptor{
		Base:      "data",
		Number:    1,
		OutputDir: filepath.Join(t.TempDir(), "does", "not", "exist"),
	}

	err := w.WritePart(testBatch(1), desc)
	var we *types.WriteError
	require.ErrorAs(t, err, &we)
}

func TestWritePartEmptyColumns(t *testing.T) {
	// A batch with no columns still writes a structurally valid (if bare)
	// part; the writer does not invent content.
	dir := t.TempDir()
	w, _ := newTestWriter(false, true)
	desc := types.PartDescriptor{Base: "bare", Number: 1, OutputDir: dir}

	batch := &types.RowBatch{}
	require.NoError(t, w.WritePart(batch, desc))
	assert.FileExists(t, filepath.Join(dir, "bare_part_1.xlsx"))
}
