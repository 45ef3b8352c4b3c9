package service

import (
	"context"

	"ridelog/internal/modules/report/domain"
	"ridelog/internal/modules/report/dto"
	reportout "ridelog/internal/modules/report/port/out"
	"ridelog/internal/platform/clock"
	"ridelog/internal/platform/timefmt"
)

// ReportService is a pure read-side view over the session log: it never
// mutates anything, only recomputes from the current snapshot.
type ReportService struct {
	clock  clock.Clock
	source reportout.IntervalSource
}

func NewReportService(clock clock.Clock, source reportout.IntervalSource) *ReportService {
	return &ReportService{clock: clock, source: source}
}

func (s *ReportService) Shares(ctx context.Context) (dto.SharesOutput, error) {
	intervals, err := s.source.Intervals(ctx)
	if err != nil {
		return dto.SharesOutput{}, err
	}
	shares := domain.ComputeShares(intervals, s.clock.Now())
	out := dto.SharesOutput{
		TotalMS: shares.Total.Milliseconds(),
		Total:   timefmt.Stopwatch(shares.Total),
	}
	for _, item := range shares.Items {
		out.Items = append(out.Items, dto.ShareOutput{
			Activity:   item.Activity,
			DurationMS: item.Duration.Milliseconds(),
			Duration:   timefmt.Stopwatch(item.Duration),
			Percent:    item.Percent,
		})
	}
	return out, nil
}

func (s *ReportService) Clock(ctx context.Context) (dto.ClockOutput, error) {
	intervals, err := s.source.Intervals(ctx)
	if err != nil {
		return dto.ClockOutput{}, err
	}
	clock := domain.LiveClock(intervals, s.clock.Now())
	return dto.ClockOutput{Display: clock.Display, Activity: clock.Activity, Running: clock.Running}, nil
}
