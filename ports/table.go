package ports

import (
	"context"

	"demoqual/domain/demography"
)

// TableProvider supplies the age-by-sex table to analyze
type TableProvider interface {
	LoadTable(ctx context.Context) (*demography.Table, error)
	Name() string
}
