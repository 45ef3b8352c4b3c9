package out

import (
	"context"

	"ridelog/internal/modules/export/domain"
)

// IntervalSource supplies the log snapshot to serialize.
type IntervalSource interface {
	Intervals(ctx context.Context) ([]domain.Interval, error)
}

// Deliverer moves a finished artifact to its destination.
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, artifact domain.Artifact) (domain.Receipt, error)
}

// DelivererResolver maps a --via name to a concrete deliverer.
type DelivererResolver interface {
	Resolve(name string) (Deliverer, error)
}
