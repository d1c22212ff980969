package excel

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"demoqual/domain/core"
	"demoqual/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTableReader_CSV(t *testing.T) {
	path := writeFile(t, "census.csv", "Age,Male,Female\n0,10,12\n1,11,9\n\n2,8,\n")

	table, err := NewTableReader(path, "", nil).LoadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.TableID("census.csv"), table.ID)
	assert.Equal(t, []float64{0, 1, 2}, table.Ages)
	assert.Equal(t, []float64{10, 11, 8}, table.Male)
	assert.Equal(t, []float64{12, 9, 0}, table.Female)
}

func TestTableReader_FrenchHeadersSemicolon(t *testing.T) {
	path := writeFile(t, "recensement.csv", "Âge;Hommes;Femmes\n0;1 204;1 180\n1;1 001,5;998\n")

	table, err := NewTableReader(path, "", nil).LoadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []float64{1204, 1001.5}, table.Male)
	assert.Equal(t, []float64{1180, 998}, table.Female)
}

func TestTableReader_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Age", "Hommes", "Femmes"},
		{0, 100, 95},
		{1, 98, 97},
		{2, 96, 99},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewTableReader(path, DefaultSheet, nil).LoadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, table.Ages)
	assert.Equal(t, []float64{100, 98, 96}, table.Male)
	assert.Equal(t, []float64{95, 97, 99}, table.Female)

	_, err = NewTableReader(path, "Missing", nil).LoadTable(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestTableReader_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewTableReader(filepath.Join(t.TempDir(), "absent.csv"), "", nil).LoadTable(ctx)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	tests := []struct {
		name    string
		content string
	}{
		{"header only", "Age,Male,Female\n"},
		{"missing column", "Age,Male\n0,1\n"},
		{"bad number", "Age,Male,Female\n0,x,1\n"},
		{"missing age", "Age,Male,Female\n,1,1\n"},
		{"unordered ages", "Age,Male,Female\n1,1,1\n0,1,1\n"},
		{"negative count", "Age,Male,Female\n0,-1,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := NewTableReader(path, "", nil).LoadTable(ctx)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}

	path := writeFile(t, "bad.csv", "Age,Male,Female\n1,1,1\n0,1,1\n")
	_, err = NewTableReader(path, "", nil).LoadTable(ctx)
	assert.True(t, stderrors.Is(err, core.ErrUnorderedAges))
}

func TestTableReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTableReader("whatever.csv", "", nil).LoadTable(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTableReader_XLSXFormattedCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatted.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Age", "Male", "Female"},
		{0, 2637, 2552},
		{1, 2258, 2136},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	grouped, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "C3", grouped))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewTableReader(path, DefaultSheet, nil).LoadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{2637, 2258}, table.Male)
	assert.Equal(t, []float64{2552, 2136}, table.Female)
}

func TestTableReader_CSVThousandsSeparator(t *testing.T) {
	path := writeFile(t, "grouped.csv", "Age,Male,Female\n0,\"1,234\",\"2,500\"\n1,\"1,204,000\",17\n")

	table, err := NewTableReader(path, "", nil).LoadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{1234, 1204000}, table.Male)
	assert.Equal(t, []float64{2500, 17}, table.Female)
}

func TestNormalizeNumber(t *testing.T) {
	tests := map[string]string{
		"2,637":       "2637",
		"1,204,000.5": "1204000.5",
		"1001,5":      "1001.5",
		"0,25":        "0.25",
		"1 204":       "1204",
		" 42 ":        "42",
		"3.5":         "3.5",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeNumber(in), in)
	}
}
