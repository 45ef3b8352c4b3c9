package domain_test

import (
	"math"
	"testing"
	"time"

	"ridelog/internal/modules/report/domain"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func at(ms int64) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func closed(activity string, startMS, endMS int64) domain.Interval {
	end := at(endMS)
	return domain.Interval{Activity: activity, StartedAt: at(startMS), EndedAt: &end}
}

func TestComputeSharesBusRideScenario(t *testing.T) {
	t.Parallel()
	intervals := []domain.Interval{
		closed("moving", 0, 60_000),
		closed("traffic", 60_000, 90_000),
	}
	shares := domain.ComputeShares(intervals, at(90_000))

	want := map[string]float64{"moving": 66.7, "traffic": 33.3, "dwelling": 0.0}
	for _, item := range shares.Items {
		if item.Percent != want[item.Activity] {
			t.Fatalf("%s = %.1f%%, want %.1f%%", item.Activity, item.Percent, want[item.Activity])
		}
	}
	if shares.Total != 90*time.Second {
		t.Fatalf("total = %v", shares.Total)
	}
}

func TestComputeSharesEmptyLogYieldsZeroesNotError(t *testing.T) {
	t.Parallel()
	shares := domain.ComputeShares(nil, at(0))
	if len(shares.Items) != 3 {
		t.Fatalf("expected three activities, got %d", len(shares.Items))
	}
	for _, item := range shares.Items {
		if item.Percent != 0 || item.Duration != 0 {
			t.Fatalf("expected all-zero shares, got %+v", item)
		}
		if math.IsNaN(item.Percent) {
			t.Fatalf("NaN leaked from zero-total aggregation")
		}
	}
}

func TestComputeSharesOpenIntervalMeasuredUpToNow(t *testing.T) {
	t.Parallel()
	intervals := []domain.Interval{
		closed("dwelling", 0, 30_000),
		{Activity: "moving", StartedAt: at(30_000)},
	}
	shares := domain.ComputeShares(intervals, at(120_000))
	if shares.Total != 2*time.Minute {
		t.Fatalf("total = %v", shares.Total)
	}
	for _, item := range shares.Items {
		switch item.Activity {
		case "moving":
			if item.Percent != 75.0 {
				t.Fatalf("moving = %.1f%%", item.Percent)
			}
		case "dwelling":
			if item.Percent != 25.0 {
				t.Fatalf("dwelling = %.1f%%", item.Percent)
			}
		}
	}
}

func TestComputeSharesSumCloseToHundred(t *testing.T) {
	t.Parallel()
	intervals := []domain.Interval{
		closed("moving", 0, 10_000),
		closed("traffic", 10_000, 20_001),
		closed("dwelling", 20_001, 30_003),
	}
	shares := domain.ComputeShares(intervals, at(30_003))
	var sum float64
	for _, item := range shares.Items {
		sum += item.Percent
	}
	if math.Abs(sum-100.0) > 0.15 {
		t.Fatalf("shares sum to %.2f", sum)
	}
}

func TestLiveClockTracksOpenInterval(t *testing.T) {
	t.Parallel()
	intervals := []domain.Interval{{Activity: "traffic", StartedAt: at(0)}}
	clock := domain.LiveClock(intervals, at(187_045))
	if !clock.Running || clock.Activity != "traffic" {
		t.Fatalf("unexpected clock: %+v", clock)
	}
	if clock.Display != "03:07.045" {
		t.Fatalf("display = %q", clock.Display)
	}
}

func TestLiveClockIdleIsPinnedToZero(t *testing.T) {
	t.Parallel()
	if clock := domain.LiveClock(nil, at(0)); clock.Display != "00:00.000" || clock.Running {
		t.Fatalf("unexpected idle clock: %+v", clock)
	}
	intervals := []domain.Interval{closed("moving", 0, 5_000)}
	if clock := domain.LiveClock(intervals, at(9_000)); clock.Display != "00:00.000" || clock.Running {
		t.Fatalf("closed log must show zero clock: %+v", clock)
	}
}
