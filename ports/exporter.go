package ports

import (
	"context"
	"io"

	"demoqual/internal/analysis/quality"
)

// ReportExporter renders a computed report into one output format
type ReportExporter interface {
	Export(ctx context.Context, w io.Writer, report *quality.Report) error
	Format() string
	ContentType() string
}
