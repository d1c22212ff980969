package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"demoqual/domain/core"
	"demoqual/domain/demography"
	"demoqual/internal"
	"demoqual/internal/analysis/quality"
	"demoqual/internal/config"
	"demoqual/internal/errors"
	"demoqual/ports"
)

// QualityService loads a table, runs the analyzer and hands the report to exporters
type QualityService struct {
	provider  ports.TableProvider
	analyzer  *quality.Analyzer
	exporters map[string]ports.ReportExporter
	logger    *internal.Logger
	now       func() time.Time
}

// NewQualityService wires a provider and the available exporters
func NewQualityService(provider ports.TableProvider, logger *internal.Logger, exporters ...ports.ReportExporter) *QualityService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &QualityService{
		provider:  provider,
		analyzer:  quality.NewAnalyzer(),
		exporters: make(map[string]ports.ReportExporter, len(exporters)),
		logger:    logger,
		now:       time.Now,
	}
	for _, e := range exporters {
		s.exporters[e.Format()] = e
	}
	return s
}

// LoadTable reads the table from the configured provider
func (s *QualityService) LoadTable(ctx context.Context) (*demography.Table, error) {
	start := time.Now()
	table, err := s.provider.LoadTable(ctx)
	if err != nil {
		s.logger.Error("failed to load table from %s: %v", s.provider.Name(), err)
		return nil, errors.Wrapf(err, "failed to load table from %s", s.provider.Name())
	}
	s.logger.Info("loaded %d ages from %s in %s", table.Len(), s.provider.Name(), time.Since(start).Round(time.Microsecond))
	return table, nil
}

// Analyze loads the table and computes its report
func (s *QualityService) Analyze(ctx context.Context, params quality.Params) (*quality.Report, error) {
	table, err := s.LoadTable(ctx)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeTable(table, params)
}

// AnalyzeTable computes the report for an already loaded table and stamps
// it with a fresh ID and generation time
func (s *QualityService) AnalyzeTable(table *demography.Table, params quality.Params) (*quality.Report, error) {
	if err := config.ValidateParams(params); err != nil {
		return nil, err
	}

	report, err := s.analyzer.Analyze(table, params)
	switch {
	case err == nil:
	case core.IsNotFoundError(err):
		return nil, errors.WithCode(errors.CodeNotFound, err, "no table to analyze")
	case core.IsValidationError(err):
		return nil, errors.WithCode(errors.CodeInvalidInput, err, "analysis rejected the table")
	default:
		return nil, errors.Wrap(err, "analysis failed")
	}

	report.ID = core.NewReportID()
	report.GeneratedAt = core.NewTimestamp(s.now())
	s.logger.Debug("report %s fingerprint=%s score=%d/%d", report.ID, report.Fingerprint.Short(), report.Score.Total, report.Score.Max)
	return report, nil
}

// Exporter returns the exporter registered for format
func (s *QualityService) Exporter(format string) (ports.ReportExporter, error) {
	e, ok := s.exporters[format]
	if !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown export format %q (available: %v)", format, s.Formats()))
	}
	return e, nil
}

// Formats lists the registered export formats
func (s *QualityService) Formats() []string {
	formats := make([]string, 0, len(s.exporters))
	for f := range s.exporters {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Export renders report in the given format
func (s *QualityService) Export(ctx context.Context, w io.Writer, format string, report *quality.Report) error {
	e, err := s.Exporter(format)
	if err != nil {
		return err
	}
	if err := e.Export(ctx, w, report); err != nil {
		s.logger.Error("%s export of report %s failed: %v", format, report.ID, err)
		return err
	}
	s.logger.Info("exported report %s as %s", report.ID, format)
	return nil
}
