package excel

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"demoqual/domain/demography"
	qualitydomain "demoqual/domain/quality"
	"demoqual/internal"
	"demoqual/internal/analysis/quality"
	"demoqual/internal/docs"
	"demoqual/internal/errors"
)

// Report sheet names in workbook order
const (
	SheetSummary  = "Summary"
	SheetData     = "Data"
	SheetIndices  = "Indices"
	SheetTests    = "Tests"
	SheetDigits   = "Terminal digits"
	SheetFormulas = "Formulas"
)

// ReportSheets lists the sheets the writer produces
var ReportSheets = []string{SheetSummary, SheetData, SheetIndices, SheetTests, SheetDigits, SheetFormulas}

// ReportWriter renders a report as an xlsx workbook
type ReportWriter struct {
	logger *internal.Logger
}

// NewReportWriter creates a new workbook writer
func NewReportWriter(logger *internal.Logger) *ReportWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportWriter{logger: logger}
}

// Format names the export format
func (w *ReportWriter) Format() string { return "xlsx" }

// ContentType is the MIME type of the workbook
func (w *ReportWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes the six-sheet workbook to out
func (w *ReportWriter) Export(ctx context.Context, out io.Writer, report *quality.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil {
		return errors.ExportFailed(w.Format(), fmt.Errorf("nil report"))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.ExportFailed(w.Format(), err)
	}
	for _, sheet := range ReportSheets[1:] {
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.ExportFailed(w.Format(), err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.ExportFailed(w.Format(), err)
	}

	sw := &sheetWriter{f: f, bold: bold}
	sw.summary(report)
	sw.data(report)
	sw.indices(report)
	sw.tests(report)
	sw.digits(report)
	sw.formulas()
	if sw.err != nil {
		return errors.ExportFailed(w.Format(), sw.err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(out); err != nil {
		return errors.ExportFailed(w.Format(), err)
	}
	w.logger.Debug("[ReportWriter] wrote workbook for report %s", report.ID)
	return nil
}

// sheetWriter keeps the first error so the sheet builders stay linear
type sheetWriter struct {
	f    *excelize.File
	bold int
	err  error
}

func (s *sheetWriter) row(sheet string, rowIdx int, values ...interface{}) {
	if s.err != nil {
		return
	}
	for i, v := range values {
		values[i] = cellValue(v)
	}
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(sheet, cell, &values)
}

func (s *sheetWriter) header(sheet string, rowIdx int, values ...interface{}) {
	s.row(sheet, rowIdx, values...)
	if s.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, rowIdx)
	last, _ := excelize.CoordinatesToCellName(len(values), rowIdx)
	s.err = s.f.SetCellStyle(sheet, first, last, s.bold)
}

func (s *sheetWriter) width(sheet, startCol, endCol string, width float64) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetColWidth(sheet, startCol, endCol, width)
}

func (s *sheetWriter) summary(r *quality.Report) {
	sh := SheetSummary
	s.header(sh, 1, "Item", "Value")
	s.row(sh, 2, "Report ID", r.ID.String())
	s.row(sh, 3, "Generated at", r.GeneratedAt.String())
	s.row(sh, 4, "Fingerprint", r.Fingerprint.String())
	s.row(sh, 5, "Total population", r.TotalPopulation)
	s.row(sh, 6, "Male population", r.MalePopulation)
	s.row(sh, 7, "Female population", r.FemalePopulation)
	s.row(sh, 8, "Male %", r.MalePercent)
	s.row(sh, 9, "Female %", r.FemalePercent)
	s.row(sh, 10, "Global sex ratio", r.SexRatio.Global)
	s.row(sh, 11, "Benford", string(r.BenfordLabel))
	s.row(sh, 12, "Quality score", fmt.Sprintf("%d/%d", r.Score.Total, r.Score.Max))
	s.row(sh, 13, "Quality", string(r.Score.Label))

	rowIdx := 15
	s.header(sh, rowIdx, "Group", "Whipple", "Myers", "Bachi", "UN index")
	for _, g := range r.Groups {
		rowIdx++
		s.row(sh, rowIdx, string(g.Group), g.Whipple.Value, g.Myers.Value, g.Bachi.Value, g.UN.Value)
	}
	s.width(sh, "A", "A", 22)
	s.width(sh, "B", "E", 16)
}

func (s *sheetWriter) data(r *quality.Report) {
	sh := SheetData
	s.header(sh, 1, "Age", "Male", "Female", "Total", "Sex ratio",
		"Male MA2", "Female MA2", "Total MA2")

	male, _ := r.Group(demography.GroupMale)
	female, _ := r.Group(demography.GroupFemale)
	total, _ := r.Group(demography.GroupTotal)
	for i, age := range r.Ages {
		ratio := math.NaN()
		if i < len(r.PerAgeRatio) {
			ratio = r.PerAgeRatio[i]
		}
		s.row(sh, i+2, age, r.Male[i], r.Female[i], r.Total[i], ratio,
			at(male, i), at(female, i), at(total, i))
	}
}

func at(g *quality.GroupReport, i int) float64 {
	if g == nil || i >= len(g.MovingAverage) {
		return math.NaN()
	}
	return g.MovingAverage[i]
}

func (s *sheetWriter) indices(r *quality.Report) {
	sh := SheetIndices
	s.header(sh, 1, "Group", "Index", "Value", "Sample size", "Quality")
	rowIdx := 1
	for _, g := range r.Groups {
		for _, idx := range []qualitydomain.QualityIndex{g.Whipple, g.Myers, g.Bachi, g.UN} {
			rowIdx++
			s.row(sh, rowIdx, string(g.Group), string(idx.Kind), idx.Value, idx.SampleSize, string(idx.Label))
		}
	}
	s.width(sh, "A", "E", 18)
}

func (s *sheetWriter) tests(r *quality.Report) {
	sh := SheetTests
	s.header(sh, 1, "Test", "Group", "Statistic", "p-value", "N", "Method", "Result")

	b := r.Benford
	s.row(sh, 2, "Benford chi-square", "all", b.ChiSquare, b.PValue, b.N, fmt.Sprintf("%d df", b.DegreesOfFreedom), string(r.BenfordLabel))

	rowIdx := 2
	for _, g := range r.Groups {
		rowIdx++
		t := g.Smoothing
		result := string(t.Reason)
		if t.IsDefined() {
			result = "not significant"
			if t.Significant {
				result = "significant"
			}
		}
		s.row(sh, rowIdx, "Wilcoxon signed-rank (raw vs MA2)", string(g.Group), t.Statistic, t.PValue, t.N, string(t.Method), result)
	}

	rowIdx += 2
	s.header(sh, rowIdx, "Leading digit", "Observed", "Expected", "Observed %", "Benford %")
	freq := b.ObservedFrequencies()
	for d := 1; d <= 9; d++ {
		rowIdx++
		s.row(sh, rowIdx, d, b.Observed[d-1], b.Expected[d-1], freq[d-1]*100, quality.BenfordProbability(d)*100)
	}
	s.width(sh, "A", "A", 34)
	s.width(sh, "B", "G", 14)
}

func (s *sheetWriter) digits(r *quality.Report) {
	sh := SheetDigits
	header := []interface{}{"Digit"}
	for _, g := range r.Groups {
		header = append(header, string(g.Group), string(g.Group)+" %")
	}
	s.header(sh, 1, header...)

	for d := 0; d < 10; d++ {
		row := []interface{}{d}
		for _, g := range r.Groups {
			row = append(row, g.TerminalDigits[d], g.DigitPercent[d])
		}
		s.row(sh, d+2, row...)
	}
}

func (s *sheetWriter) formulas() {
	sh := SheetFormulas
	s.header(sh, 1, "Indicator", "Formula", "Age band", "Interpretation")
	for i, f := range docs.Formulas {
		s.row(sh, i+2, f.Indicator, f.Expression, f.AgeBand, f.Interpretation)
	}
	s.width(sh, "A", "A", 16)
	s.width(sh, "B", "B", 60)
	s.width(sh, "C", "D", 36)
}

// cellValue leaves undefined numbers as empty cells
func cellValue(v interface{}) interface{} {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return ""
	}
	return v
}
