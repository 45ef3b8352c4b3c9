package out

import (
	"context"

	"ridelog/internal/modules/report/domain"
)

// IntervalSource supplies the current log snapshot. A fresh data dir with no
// session yet is reported as an empty slice, not an error.
type IntervalSource interface {
	Intervals(ctx context.Context) ([]domain.Interval, error)
}
