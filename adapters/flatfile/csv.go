// Package flatfile exports the raw table behind a report as csv or json.
package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"demoqual/internal/analysis/quality"
	"demoqual/internal/errors"
)

var rawHeader = []string{"Age", "Male", "Female", "Total"}

// CSVExporter writes Age,Male,Female,Total rows
type CSVExporter struct{}

// NewCSVExporter creates a new csv exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Format() string      { return "csv" }
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export writes the raw table
func (e *CSVExporter) Export(ctx context.Context, w io.Writer, report *quality.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil {
		return errors.ExportFailed(e.Format(), fmt.Errorf("nil report"))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return errors.ExportFailed(e.Format(), err)
	}
	for i, age := range report.Ages {
		record := []string{
			formatNumber(age),
			formatNumber(report.Male[i]),
			formatNumber(report.Female[i]),
			formatNumber(report.Total[i]),
		}
		if err := cw.Write(record); err != nil {
			return errors.ExportFailed(e.Format(), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.ExportFailed(e.Format(), err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
