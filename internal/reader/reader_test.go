package reader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tabkit/tabsplit/internal/types"
)

// =============================================================================
// FIXTURE HELPERS
// =============================================================================

// writeCSVFixture writes a CSV file with an id/name/amount header and n
// sequential data rows, and returns its path.
func writeCSVFixture(t *testing.T, dir, name string, n int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("id,name,amount\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "%d,row-%d,%d.50\n", i, i, i*10)
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))
	return path
}

// writeXLSXFixture writes an XLSX workbook with the same layout as
// writeCSVFixture and returns its path.
func writeXLSXFixture(t *testing.T, dir, name string, n int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "name", "amount"}))
	for i := 1; i <= n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := []interface{}{fmt.Sprintf("%d", i), fmt.Sprintf("row-%d", i), fmt.Sprintf("%d.50", i*10)}
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// drain collects every batch of a reader until io.EOF.
func drain(t *testing.T, r TabularReader) []*types.RowBatch {
	t.Helper()

	var batches []*types.RowBatch
	for {
		batch, err := r.Next()
		if err == io.EOF {
			return batches
		}
		require.NoError(t, err)
		batches = append(batches, batch)
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestOpenDispatch(t *testing.T) {
	t.Run("UnsupportedExtension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

		_, err := Open(path, 10)
		var ufe *types.UnsupportedFormatError
		require.ErrorAs(t, err, &ufe)
		assert.Equal(t, path, ufe.Path)
	})

	t.Run("MissingCSV", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.csv"), 10)
		var re *types.ReadError
		require.ErrorAs(t, err, &re)
	})

	t.Run("MissingXLSX", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), 10)
		var re *types.ReadError
		require.ErrorAs(t, err, &re)
	})

	t.Run("CorruptXLSX", func(t *testing.T) {
		// A recognized extension over malformed content must surface as a
		// ReadError, not an UnsupportedFormatError.
		path := filepath.Join(t.TempDir(), "corrupt.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0644))

		_, err := Open(path, 10)
		var re *types.ReadError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, path, re.Path)
	})
}

// =============================================================================
// PARTITIONING
// =============================================================================

func TestPartitioning(t *testing.T) {
	// Both formats must produce identical partitioning: for row limit L,
	// batch i carries source rows [(i-1)*L, i*L).
	cases := []struct {
		name  string
		write func(t *testing.T, dir, name string, n int) string
		file  string
	}{
		{"CSV", writeCSVFixture, "data.csv"},
		{"XLSX", writeXLSXFixture, "data.xlsx"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := tc.write(t, t.TempDir(), tc.file, 250)

			r, err := Open(path, 100)
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, []string{"id", "name", "amount"}, r.Columns())

			batches := drain(t, r)
			require.Len(t, batches, 3)
			assert.Equal(t, 100, batches[0].Len())
			assert.Equal(t, 100, batches[1].Len())
			assert.Equal(t, 50, batches[2].Len())

			// Batch boundaries hold the expected source rows.
			assert.Equal(t, "1", batches[0].Rows[0]["id"])
			assert.Equal(t, "100", batches[0].Rows[99]["id"])
			assert.Equal(t, "101", batches[1].Rows[0]["id"])
			assert.Equal(t, "250", batches[2].Rows[49]["id"])

			// Concatenating the batches reconstructs the source exactly.
			var ids []string
			for _, b := range batches {
				assert.Equal(t, []string{"id", "name", "amount"}, b.Columns)
				for _, row := range b.Rows {
					ids = append(ids, row["id"])
				}
			}
			require.Len(t, ids, 250)
			for i, id := range ids {
				assert.Equal(t, fmt.Sprintf("%d", i+1), id)
			}

			// The sequence is exhausted and stays exhausted.
			_, err = r.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestPartitionCount(t *testing.T) {
	// ceil(N / limit) batches for every N and limit combination.
	dir := t.TempDir()
	cases := []struct {
		rows, limit, parts int
	}{
		{10, 3, 4},
		{10, 5, 2},
		{10, 10, 1},
		{10, 100, 1},
		{1, 1, 1},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("rows=%d_limit=%d", tc.rows, tc.limit), func(t *testing.T) {
			path := writeCSVFixture(t, dir, fmt.Sprintf("n%d_l%d.csv", tc.rows, tc.limit), tc.rows)

			r, err := Open(path, tc.limit)
			require.NoError(t, err)
			defer r.Close()

			batches := drain(t, r)
			assert.Len(t, batches, tc.parts)
		})
	}
}

// =============================================================================
// EMPTY AND RAGGED SOURCES
// =============================================================================

func TestEmptySources(t *testing.T) {
	t.Run("CSVHeaderOnly", func(t *testing.T) {
		path := writeCSVFixture(t, t.TempDir(), "empty.csv", 0)

		r, err := Open(path, 100)
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []string{"id", "name", "amount"}, r.Columns())
		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("CSVZeroBytes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "zero.csv")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		r, err := Open(path, 100)
		require.NoError(t, err)
		defer r.Close()

		assert.Empty(t, r.Columns())
		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("XLSXHeaderOnly", func(t *testing.T) {
		path := writeXLSXFixture(t, t.TempDir(), "empty.xlsx", 0)

		r, err := Open(path, 100)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})
}

func TestRaggedCSV(t *testing.T) {
	// Short rows pad missing columns with ""; overflow cells are dropped.
	content := "a,b,c\n1,2\nx,y,z,extra\n"
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := Open(path, 10)
	require.NoError(t, err)
	defer r.Close()

	batches := drain(t, r)
	require.Len(t, batches, 1)
	require.Equal(t, 2, batches[0].Len())

	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": ""}, batches[0].Rows[0])
	assert.Equal(t, map[string]string{"a": "x", "b": "y", "c": "z"}, batches[0].Rows[1])
}
