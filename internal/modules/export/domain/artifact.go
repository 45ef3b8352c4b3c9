package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"ridelog/internal/platform/timefmt"
)

// MIMEType of the export artifact.
const MIMEType = "text/csv"

var (
	ErrDelivererUnknown = errors.New("unknown deliverer")
	ErrDeliveryFailed   = errors.New("delivery failed")
)

// Interval is the export-side view of one logged span.
type Interval struct {
	Activity  string
	StartedAt time.Time
	EndedAt   *time.Time
}

// Artifact is the finished export: the core's contract ends here, delivery
// only moves these bytes. A failed delivery never consumes or mutates the
// artifact, so the same value can be re-handed to another deliverer.
type Artifact struct {
	Filename string
	MIME     string
	Content  []byte
}

// Build serializes the log to CSV. Wall-clock times use the fixed 12-hour
// layout; the open interval's end column uses now. An empty log yields the
// header row only.
func Build(intervals []Interval, now time.Time) (Artifact, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"activity_type", "start_time", "end_time", "duration"}); err != nil {
		return Artifact{}, fmt.Errorf("write csv header: %w", err)
	}
	for _, iv := range intervals {
		end := now
		if iv.EndedAt != nil {
			end = *iv.EndedAt
		}
		duration := end.Sub(iv.StartedAt)
		row := []string{
			iv.Activity,
			timefmt.WallClock(iv.StartedAt),
			timefmt.WallClock(end),
			timefmt.Stopwatch(duration),
		}
		if err := w.Write(row); err != nil {
			return Artifact{}, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, fmt.Errorf("flush csv: %w", err)
	}

	return Artifact{
		Filename: Filename(now),
		MIME:     MIMEType,
		Content:  buf.Bytes(),
	}, nil
}

// Filename embeds the current calendar date, e.g. bus-timing-2026-03-14.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("bus-timing-%s.csv", now.Format("2006-01-02"))
}

// Receipt describes where a deliverer put the artifact.
type Receipt struct {
	Deliverer string
	Target    string
	Message   string
}
