package flatfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"demoqual/internal/analysis/quality"
	"demoqual/internal/errors"
)

// Row is one age of the raw table
type Row struct {
	Age    float64 `json:"Age"`
	Male   float64 `json:"Male"`
	Female float64 `json:"Female"`
	Total  float64 `json:"Total"`
}

// JSONExporter writes the raw table as an array of rows
type JSONExporter struct {
	Indent bool
}

// NewJSONExporter creates a new json exporter
func NewJSONExporter(indent bool) *JSONExporter {
	return &JSONExporter{Indent: indent}
}

func (e *JSONExporter) Format() string      { return "json" }
func (e *JSONExporter) ContentType() string { return "application/json" }

// Export writes the raw table
func (e *JSONExporter) Export(ctx context.Context, w io.Writer, report *quality.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil {
		return errors.ExportFailed(e.Format(), fmt.Errorf("nil report"))
	}

	rows := Rows(report)
	enc := json.NewEncoder(w)
	if e.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rows); err != nil {
		return errors.ExportFailed(e.Format(), err)
	}
	return nil
}

// Rows flattens the report columns
func Rows(report *quality.Report) []Row {
	rows := make([]Row, len(report.Ages))
	for i, age := range report.Ages {
		rows[i] = Row{Age: age, Male: report.Male[i], Female: report.Female[i], Total: report.Total[i]}
	}
	return rows
}
