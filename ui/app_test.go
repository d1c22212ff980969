package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"demoqual/adapters/excel"
	"demoqual/adapters/flatfile"
	"demoqual/app"
	"demoqual/internal"
	"demoqual/internal/analysis/quality"
	"demoqual/internal/dataset"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError, true)
	svc := app.NewQualityService(dataset.NewReferenceProvider(), logger,
		excel.NewReportWriter(logger), flatfile.NewCSVExporter(), flatfile.NewJSONExporter(false))
	return NewApp(Config{Defaults: quality.DefaultParams()}, svc, dataset.ReferenceTable(), logger)
}

func get(t *testing.T, a *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleReport(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		ID    string `json:"id"`
		Score struct {
			Total int    `json:"total"`
			Label string `json:"label"`
		} `json:"score"`
		Groups []struct {
			Group   string `json:"group"`
			Whipple struct {
				Value float64 `json:"value"`
			} `json:"whipple"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, 2, body.Score.Total)
	assert.Equal(t, "Acceptable", body.Score.Label)
	require.Len(t, body.Groups, 3)
	assert.InDelta(t, 28.748580909964193, body.Groups[2].Whipple.Value, 1e-6)
}

func TestHandleReport_QueryOverrides(t *testing.T) {
	a := newTestApp(t)

	rec := get(t, a, "/api/report?whipple_min_age=25&pyramid_width=10")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Params struct {
			WhippleMinAge float64 `json:"whipple_min_age"`
		} `json:"params"`
		Pyramid []json.RawMessage `json:"pyramid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 25.0, body.Params.WhippleMinAge)
	assert.Len(t, body.Pyramid, 10)
}

func TestHandleReport_BadParams(t *testing.T) {
	a := newTestApp(t)

	for _, target := range []string{
		"/api/report?whipple_min_age=abc",
		"/api/report?pyramid_width=3",
		"/api/report?benford_alpha=0.5",
		"/api/report?ratio_window=x",
		"/api/benford?whipple_max_age=90",
	} {
		rec := get(t, a, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"code"`, target)
	}
}

func TestHandleBenford(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/benford?benford_alpha=0.01")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Benford struct {
			N      int     `json:"n"`
			PValue float64 `json:"p_value"`
		} `json:"benford"`
		Label string  `json:"label"`
		Alpha float64 `json:"alpha"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 320, body.Benford.N)
	assert.Equal(t, "Non-conformant", body.Label)
	assert.Equal(t, 0.01, body.Alpha)
}

func TestHandleReportWorkbook(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/report.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "demoqual-report.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, excel.ReportSheets, f.GetSheetList())
}

func TestHandleExport(t *testing.T) {
	a := newTestApp(t)

	rec := get(t, a, "/api/export/csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Age,Male,Female,Total\n0,2637,")

	rec = get(t, a, "/api/export/pdf")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFormulasAndHealth(t *testing.T) {
	a := newTestApp(t)

	rec := get(t, a, "/formulas")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h2")
	assert.Contains(t, rec.Body.String(), "Whipple index")

	rec = get(t, a, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleGroupReport(t *testing.T) {
	a := newTestApp(t)

	rec := get(t, a, "/api/report/groups/female")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Group string `json:"group"`
		Myers struct {
			Value float64 `json:"value"`
			Label string  `json:"label"`
		} `json:"myers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "female", body.Group)
	assert.InDelta(t, 11.384655464374106, body.Myers.Value, 1e-6)
	assert.Equal(t, "Poor", body.Myers.Label)

	rec = get(t, a, "/api/report/groups/children")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
