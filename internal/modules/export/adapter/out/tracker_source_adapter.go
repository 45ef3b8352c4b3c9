package out

import (
	"context"
	"errors"

	"ridelog/internal/modules/export/domain"
	exportout "ridelog/internal/modules/export/port/out"
	trackerin "ridelog/internal/modules/tracker/port/in"
	apperrors "ridelog/internal/platform/errors"
)

// TrackerIntervalSource adapts the tracker's in-port into the export
// module's interval source. A fresh data dir exports as header-only CSV.
type TrackerIntervalSource struct {
	tracker trackerin.Usecase
}

func NewTrackerIntervalSource(tracker trackerin.Usecase) exportout.IntervalSource {
	return &TrackerIntervalSource{tracker: tracker}
}

func (a *TrackerIntervalSource) Intervals(ctx context.Context) ([]domain.Interval, error) {
	entries, err := a.tracker.Entries(ctx)
	if errors.Is(err, apperrors.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Interval, 0, len(entries))
	for _, e := range entries {
		interval := domain.Interval{Activity: e.Activity, StartedAt: e.StartedAt}
		if !e.Open {
			ended := e.EndedAt
			interval.EndedAt = &ended
		}
		out = append(out, interval)
	}
	return out, nil
}
