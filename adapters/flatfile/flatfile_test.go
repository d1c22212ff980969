package flatfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoqual/internal/analysis/quality"
	"demoqual/internal/testkit"
	"demoqual/ports"
)

var (
	_ ports.ReportExporter = (*CSVExporter)(nil)
	_ ports.ReportExporter = (*JSONExporter)(nil)
)

func referenceReport(t *testing.T) *quality.Report {
	t.Helper()
	report, err := quality.NewAnalyzer().Analyze(testkit.ReferenceTable(), quality.DefaultParams())
	require.NoError(t, err)
	return report
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Export(context.Background(), &buf, referenceReport(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 109)
	assert.Equal(t, []string{"Age", "Male", "Female", "Total"}, records[0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "2637", records[1][1])
	assert.Equal(t, "110", records[108][0])
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONExporter(true).Export(context.Background(), &buf, referenceReport(t)))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 108)

	male, female := 0.0, 0.0
	for _, r := range rows {
		male += r.Male
		female += r.Female
		assert.Equal(t, r.Male+r.Female, r.Total)
	}
	assert.Equal(t, 105042.0, male)
	assert.Equal(t, 102505.0, female)
	assert.Contains(t, buf.String(), `"Age": 0`)
}

func TestExporters_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewCSVExporter().Export(ctx, &bytes.Buffer{}, referenceReport(t)), context.Canceled)
	assert.Error(t, NewJSONExporter(false).Export(context.Background(), &bytes.Buffer{}, nil))
}
