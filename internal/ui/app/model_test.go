package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	exportdto "ridelog/internal/modules/export/dto"
	reportdto "ridelog/internal/modules/report/dto"
	trackerdto "ridelog/internal/modules/tracker/dto"
	"ridelog/internal/ui/app"
	entriesview "ridelog/internal/ui/views/entries"
)

type stubTracker struct{ entries []trackerdto.EntryOutput }

func (s stubTracker) Select(context.Context, string) (trackerdto.SelectOutput, error) {
	return trackerdto.SelectOutput{}, nil
}

func (s stubTracker) Status(context.Context) (trackerdto.StatusOutput, error) {
	return trackerdto.StatusOutput{}, nil
}

func (s stubTracker) Entries(context.Context) ([]trackerdto.EntryOutput, error) {
	return s.entries, nil
}

func (s stubTracker) StartNew(context.Context, string) (trackerdto.StartNewOutput, error) {
	return trackerdto.StartNewOutput{}, nil
}

func (s stubTracker) Reindex(context.Context) error { return nil }

type stubReport struct{}

func (stubReport) Shares(context.Context) (reportdto.SharesOutput, error) {
	return reportdto.SharesOutput{}, nil
}

func (stubReport) Clock(context.Context) (reportdto.ClockOutput, error) {
	return reportdto.ClockOutput{Display: "00:00.000"}, nil
}

type stubExport struct{}

func (stubExport) Export(context.Context, []string) (exportdto.ExportOutput, error) {
	return exportdto.ExportOutput{}, nil
}

func TestEntriesTabShowsEntriesLoadedWhileHidden(t *testing.T) {
	t.Parallel()
	m := app.NewModel(stubTracker{}, stubReport{}, stubExport{}, time.Millisecond)

	step := func(msg tea.Msg) {
		updated, _ := m.Update(msg)
		m = updated.(app.Model)
	}
	step(tea.WindowSizeMsg{Width: 80, Height: 24})

	// The log reloads while the Tracker tab is still active.
	started := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	step(entriesview.LoadedMsg{Entries: []trackerdto.EntryOutput{
		{Activity: "moving", StartedAt: started, Open: true, DurationMS: 1_500},
	}})
	step(tea.KeyMsg{Type: tea.KeyTab})

	if view := m.View(); !strings.Contains(view, "moving") {
		t.Fatalf("entries tab missing the entry loaded before the tab switch:\n%s", view)
	}
}
