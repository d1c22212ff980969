package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"demoqual/domain/demography"
	"demoqual/internal/analysis/quality"
	"demoqual/internal/errors"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ages":   a.table.Len(),
	})
}

// report recomputes the report with any query overrides applied
func (a *App) report(r *http.Request) (*quality.Report, error) {
	params, err := paramsFromQuery(a.defaults, r.URL.Query())
	if err != nil {
		return nil, err
	}
	return a.service.AnalyzeTable(a.table, params)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.report(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *App) handleGroupReport(w http.ResponseWriter, r *http.Request) {
	group, err := demography.ParseGroup(chi.URLParam(r, "group"))
	if err != nil {
		a.writeError(w, errors.WithCode(errors.CodeNotFound, err, "unknown group"))
		return
	}
	report, err := a.report(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	gr, err := report.Group(group)
	if err != nil {
		a.writeError(w, errors.WithCode(errors.CodeNotFound, err, "group missing from report"))
		return
	}
	writeJSON(w, http.StatusOK, gr)
}

func (a *App) handleBenford(w http.ResponseWriter, r *http.Request) {
	report, err := a.report(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"benford": report.Benford,
		"label":   report.BenfordLabel,
		"alpha":   report.Params.Thresholds.BenfordAlpha,
	})
}

func (a *App) handleReportWorkbook(w http.ResponseWriter, r *http.Request) {
	a.export(w, r, "xlsx")
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	a.export(w, r, chi.URLParam(r, "format"))
}

func (a *App) export(w http.ResponseWriter, r *http.Request, format string) {
	exporter, err := a.service.Exporter(format)
	if err != nil {
		a.writeError(w, errors.Wrap(err, "unsupported format"))
		return
	}
	report, err := a.report(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	// Buffer so a failed export still gets a proper error response.
	var buf bytes.Buffer
	if err := a.service.Export(r.Context(), &buf, format, report); err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "demoqual-report."+format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *App) handleFormulas(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.formulas)
}
