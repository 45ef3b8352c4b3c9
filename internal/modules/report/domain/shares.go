package domain

import (
	"math"
	"time"

	"ridelog/internal/platform/timefmt"
)

// Interval is the read-side view of one logged span. EndedAt is nil while
// the span is still running.
type Interval struct {
	Activity  string
	StartedAt time.Time
	EndedAt   *time.Time
}

func (iv Interval) duration(now time.Time) time.Duration {
	end := now
	if iv.EndedAt != nil {
		end = *iv.EndedAt
	}
	d := end.Sub(iv.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// activities is the fixed display order of the three tracked states.
var activities = []string{"moving", "traffic", "dwelling"}

type Share struct {
	Activity string
	Duration time.Duration
	Percent  float64
}

type Shares struct {
	Items []Share
	Total time.Duration
}

// ComputeShares sums effective durations per activity and expresses each as
// a percentage of the total, rounded to one decimal place. An open interval
// is measured up to now. A zero total yields 0.0 for every activity instead
// of dividing by zero.
func ComputeShares(intervals []Interval, now time.Time) Shares {
	totals := map[string]time.Duration{}
	var total time.Duration
	for _, iv := range intervals {
		d := iv.duration(now)
		totals[iv.Activity] += d
		total += d
	}

	out := Shares{Total: total}
	for _, a := range activities {
		share := Share{Activity: a, Duration: totals[a]}
		if total > 0 {
			share.Percent = math.Round(float64(totals[a])/float64(total)*1000) / 10
		}
		out.Items = append(out.Items, share)
	}
	return out
}

// Clock is the live elapsed-time projection for the open interval.
type Clock struct {
	Display  string
	Activity string
	Running  bool
}

// LiveClock renders the elapsed time of the open interval at now. With no
// open interval the display is pinned at zero.
func LiveClock(intervals []Interval, now time.Time) Clock {
	if len(intervals) == 0 {
		return Clock{Display: timefmt.ZeroElapsed}
	}
	last := intervals[len(intervals)-1]
	if last.EndedAt != nil {
		return Clock{Display: timefmt.ZeroElapsed}
	}
	return Clock{
		Display:  timefmt.Elapsed(now.Sub(last.StartedAt)),
		Activity: last.Activity,
		Running:  true,
	}
}
