package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	trackerout "ridelog/internal/modules/tracker/adapter/out"
	"ridelog/internal/modules/tracker/domain"
	"ridelog/internal/modules/tracker/dto"
	trackerin "ridelog/internal/modules/tracker/port/in"
	"ridelog/internal/modules/tracker/service"
	"ridelog/internal/modules/tracker/usecase"
	apperrors "ridelog/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "sess-" + string(rune('0'+s.n))
}

func newTracker(t *testing.T, clk *fakeClock) trackerin.Usecase {
	t.Helper()
	base := t.TempDir()
	projector, err := trackerout.NewSQLiteEntryProjector(filepath.Join(base, ".ridelog", "ridelog.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	svc := service.NewTrackerService(
		clk,
		&seqID{},
		trackerout.NewFileSessionStore(filepath.Join(base, ".ridelog", "session.json")),
		projector,
		trackerout.NewMarkdownArchiveStore(filepath.Join(base, "sessions")),
	)
	return usecase.NewInteractor(svc)
}

func instants(ms ...int64) []time.Time {
	t0 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	out := make([]time.Time, len(ms))
	for i, m := range ms {
		out[i] = t0.Add(time.Duration(m) * time.Millisecond)
	}
	return out
}

func TestSelectTogglesAndPersistsAcrossInvocations(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: instants(0, 60_000, 90_000, 90_000)}
	uc := newTracker(t, clk)
	ctx := context.Background()

	first, err := uc.Select(ctx, dto.SelectInput{Activity: "moving"})
	if err != nil {
		t.Fatalf("select moving: %v", err)
	}
	if first.Action != "started" || first.Current != "moving" {
		t.Fatalf("unexpected first transition: %+v", first)
	}

	second, err := uc.Select(ctx, dto.SelectInput{Activity: "traffic"})
	if err != nil {
		t.Fatalf("select traffic: %v", err)
	}
	if second.Action != "switched" || second.Entries != 2 {
		t.Fatalf("unexpected switch: %+v", second)
	}

	third, err := uc.Select(ctx, dto.SelectInput{Activity: "traffic"})
	if err != nil {
		t.Fatalf("select traffic again: %v", err)
	}
	if third.Action != "stopped" || third.Current != "" {
		t.Fatalf("unexpected stop: %+v", third)
	}

	entries, err := uc.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if !entries[0].EndedAt.Equal(entries[1].StartedAt) {
		t.Fatalf("zero-gap handoff broken: %v vs %v", entries[0].EndedAt, entries[1].StartedAt)
	}
	if entries[0].DurationMS != 60_000 || entries[1].DurationMS != 30_000 {
		t.Fatalf("unexpected durations: %d, %d", entries[0].DurationMS, entries[1].DurationMS)
	}
}

func TestSelectRejectsUnknownActivity(t *testing.T) {
	t.Parallel()
	uc := newTracker(t, &fakeClock{values: instants(0)})
	if _, err := uc.Select(context.Background(), dto.SelectInput{Activity: "flying"}); !errors.Is(err, apperrors.ErrUnknownActivity) {
		t.Fatalf("expected ErrUnknownActivity, got %v", err)
	}
	if _, err := uc.Status(context.Background()); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("rejected input must not create a session, got %v", err)
	}
}

func TestStatusReportsElapsedOfOpenEntry(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: instants(0, 187_045)}
	uc := newTracker(t, clk)
	ctx := context.Background()

	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "dwelling"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	status, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Current != "dwelling" || status.EntryCount != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Elapsed != "03:07.045" {
		t.Fatalf("elapsed = %q", status.Elapsed)
	}
}

func TestLogReadsFromProjectionAndReindexRebuildsIt(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	dbPath := filepath.Join(base, ".ridelog", "ridelog.db")
	projector, err := trackerout.NewSQLiteEntryProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	clk := &fakeClock{values: instants(0, 10_000, 20_000)}
	svc := service.NewTrackerService(clk, &seqID{},
		trackerout.NewFileSessionStore(filepath.Join(base, ".ridelog", "session.json")), projector,
		trackerout.NewMarkdownArchiveStore(filepath.Join(base, "sessions")))
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "moving"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "moving"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	logged, err := uc.Log(ctx)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(logged) != 1 || logged[0].Activity != "moving" || logged[0].Open {
		t.Fatalf("unexpected projection rows: %+v", logged)
	}

	// Drop the projection, then rebuild it from the state file.
	if err := projector.Reset(ctx); err != nil {
		t.Fatalf("reset projection: %v", err)
	}
	if rows, _ := uc.Log(ctx); len(rows) != 0 {
		t.Fatalf("expected empty projection after reset")
	}
	if err := uc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	logged, err = uc.Log(ctx)
	if err != nil {
		t.Fatalf("log after reindex: %v", err)
	}
	if len(logged) != 1 || logged[0].DurationMS != 10_000 {
		t.Fatalf("unexpected rebuilt rows: %+v", logged)
	}
}

func TestStartNewArchivesFinishedSessionWithTotals(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: instants(0, 60_000, 90_000, 90_000)}
	uc := newTracker(t, clk)
	ctx := context.Background()

	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "moving"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "traffic"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	// The open traffic entry is closed at reset time before archiving.
	out, err := uc.StartNew(ctx, dto.StartNewInput{Label: "Route 42"})
	if err != nil {
		t.Fatalf("start new: %v", err)
	}
	if !out.Archived || out.ArchivePath == "" {
		t.Fatalf("expected archive note, got %+v", out)
	}
	raw, err := os.ReadFile(out.ArchivePath)
	if err != nil {
		t.Fatalf("read archive note: %v", err)
	}
	note := string(raw)
	if !strings.Contains(note, "moving_ms: 60000") || !strings.Contains(note, "traffic_ms: 30000") {
		t.Fatalf("archive note missing totals: %s", note)
	}
	if !strings.Contains(note, "entry_count: 2") {
		t.Fatalf("archive note missing entry count: %s", note)
	}

	status, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("status of fresh session: %v", err)
	}
	if status.EntryCount != 0 || status.Current != "" || status.Label != "Route 42" {
		t.Fatalf("fresh session not empty: %+v", status)
	}
}

type failingArchive struct{ err error }

func (f failingArchive) Save(context.Context, domain.Session) (string, error) {
	return "", f.err
}

func TestStartNewKeepsOldSessionWhenArchiveFails(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	projector, err := trackerout.NewSQLiteEntryProjector(filepath.Join(base, ".ridelog", "ridelog.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	clk := &fakeClock{values: instants(0, 60_000, 90_000)}
	svc := service.NewTrackerService(clk, &seqID{},
		trackerout.NewFileSessionStore(filepath.Join(base, ".ridelog", "session.json")), projector,
		failingArchive{err: errors.New("disk full")})
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "moving"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.Select(ctx, dto.SelectInput{Activity: "moving"}); err != nil {
		t.Fatalf("select: %v", err)
	}

	if _, err := uc.StartNew(ctx, dto.StartNewInput{Label: "next"}); err == nil {
		t.Fatalf("expected archive failure to abort the reset")
	} else if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("archive failure not surfaced: %v", err)
	}

	// The state file must still hold the old log.
	status, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("status after failed reset: %v", err)
	}
	if status.EntryCount != 1 || status.Label == "next" {
		t.Fatalf("old session lost after failed archive: %+v", status)
	}
}

func TestStartNewWithoutExistingSessionSkipsArchive(t *testing.T) {
	t.Parallel()
	uc := newTracker(t, &fakeClock{values: instants(0)})
	out, err := uc.StartNew(context.Background(), dto.StartNewInput{})
	if err != nil {
		t.Fatalf("start new: %v", err)
	}
	if out.Archived {
		t.Fatalf("nothing to archive for a fresh data dir")
	}
}
