package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"demoqual/internal/analysis/quality"
	"demoqual/internal/testkit"
)

func referenceReport(t *testing.T) *quality.Report {
	t.Helper()
	report, err := quality.NewAnalyzer().Analyze(testkit.ReferenceTable(), quality.DefaultParams())
	require.NoError(t, err)
	return report
}

func TestReportWriter_Sheets(t *testing.T) {
	var buf bytes.Buffer
	w := NewReportWriter(nil)
	require.NoError(t, w.Export(context.Background(), &buf, referenceReport(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, ReportSheets, f.GetSheetList())

	rows, err := f.GetRows(SheetData)
	require.NoError(t, err)
	require.Len(t, rows, 109)
	assert.Equal(t, []string{"Age", "Male", "Female", "Total", "Sex ratio", "Male MA2", "Female MA2", "Total MA2"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "2637", rows[1][1])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, "Quality score", summary[11][0])
	assert.Equal(t, "2/7", summary[11][1])

	digits, err := f.GetRows(SheetDigits)
	require.NoError(t, err)
	assert.Len(t, digits, 11)

	formulas, err := f.GetRows(SheetFormulas)
	require.NoError(t, err)
	assert.Equal(t, "Whipple", formulas[1][0])
}

func TestReportWriter_UndefinedCellsEmpty(t *testing.T) {
	report, err := quality.NewAnalyzer().Analyze(testkit.ConstantTable(99, 0), quality.DefaultParams())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReportWriter(nil).Export(context.Background(), &buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SheetSummary, "B16")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestReportWriter_NilReport(t *testing.T) {
	err := NewReportWriter(nil).Export(context.Background(), &bytes.Buffer{}, nil)
	assert.Error(t, err)
}
