package domain_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"ridelog/internal/modules/export/domain"
	"ridelog/internal/platform/timefmt"
)

var t0 = time.Date(2026, 3, 14, 14, 5, 31, 0, time.UTC)

func closed(activity string, start time.Time, d time.Duration) domain.Interval {
	end := start.Add(d)
	return domain.Interval{Activity: activity, StartedAt: start, EndedAt: &end}
}

func TestBuildEmptyLogYieldsHeaderOnly(t *testing.T) {
	t.Parallel()
	artifact, err := domain.Build(nil, t0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if string(artifact.Content) != "activity_type,start_time,end_time,duration\n" {
		t.Fatalf("unexpected content: %q", artifact.Content)
	}
	if artifact.MIME != "text/csv" {
		t.Fatalf("mime = %q", artifact.MIME)
	}
}

func TestFilenameEmbedsCalendarDate(t *testing.T) {
	t.Parallel()
	artifact, err := domain.Build(nil, t0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if artifact.Filename != "bus-timing-2026-03-14.csv" {
		t.Fatalf("filename = %q", artifact.Filename)
	}
}

func TestBuildFormatsRowsAndUsesNowForOpenInterval(t *testing.T) {
	t.Parallel()
	intervals := []domain.Interval{
		closed("moving", t0, 3*time.Minute+7*time.Second+45*time.Millisecond),
		{Activity: "traffic", StartedAt: t0.Add(3*time.Minute + 7*time.Second + 45*time.Millisecond)},
	}
	now := t0.Add(4 * time.Minute)
	artifact, err := domain.Build(intervals, now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(artifact.Content)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "moving" || records[1][1] != "2:05:31 PM" || records[1][2] != "2:08:38 PM" {
		t.Fatalf("unexpected moving row: %v", records[1])
	}
	if records[1][3] != "3:07.045" {
		t.Fatalf("moving duration = %q", records[1][3])
	}
	// Open interval: end column and duration are measured at now.
	if records[2][2] != "2:09:31 PM" || records[2][3] != "0:52.955" {
		t.Fatalf("unexpected open row: %v", records[2])
	}
}

func TestBuildRoundTripsDurationsToMillisecondPrecision(t *testing.T) {
	t.Parallel()
	spans := []time.Duration{
		987 * time.Millisecond,
		time.Minute + 30*time.Second,
		42*time.Minute + 59*time.Second + 999*time.Millisecond,
	}
	intervals := make([]domain.Interval, 0, len(spans))
	cursor := t0
	for i, span := range spans {
		activity := []string{"moving", "traffic", "dwelling"}[i]
		intervals = append(intervals, closed(activity, cursor, span))
		cursor = cursor.Add(span)
	}

	artifact, err := domain.Build(intervals, cursor)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(artifact.Content)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	for i, span := range spans {
		row := records[i+1]
		if row[0] != string(intervals[i].Activity) {
			t.Fatalf("row %d activity = %q", i, row[0])
		}
		parsed, err := timefmt.ParseStopwatch(row[3])
		if err != nil {
			t.Fatalf("row %d duration: %v", i, err)
		}
		if parsed != span {
			t.Fatalf("row %d duration %v != %v", i, parsed, span)
		}
	}
}
