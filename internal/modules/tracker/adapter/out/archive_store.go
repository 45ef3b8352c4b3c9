package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ridelog/internal/modules/tracker/domain"
	trackerout "ridelog/internal/modules/tracker/port/out"
	"ridelog/internal/platform/markdown"
	"ridelog/internal/platform/slug"
	"ridelog/internal/platform/timefmt"
)

// MarkdownArchiveStore writes the summary note of a finished session. The
// note is an export artifact only; the tool never reads it back.
type MarkdownArchiveStore struct {
	dir string
}

func NewMarkdownArchiveStore(archiveDir string) trackerout.ArchiveStore {
	return &MarkdownArchiveStore{dir: archiveDir}
}

func (s *MarkdownArchiveStore) Save(_ context.Context, session domain.Session) (string, error) {
	date := session.StartedAt
	dir := filepath.Join(s.dir, date.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	label := session.Label
	if label == "" {
		label = "session"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(label)))

	endedAt := session.StartedAt
	if n := len(session.Entries); n > 0 && session.Entries[n-1].EndedAt != nil {
		endedAt = *session.Entries[n-1].EndedAt
	}
	totals := session.Totals(endedAt)

	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             session.ID,
		"label":          session.Label,
		"started_at":     session.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		"ended_at":       endedAt.Format("2006-01-02T15:04:05Z07:00"),
		"entry_count":    len(session.Entries),
		"moving_ms":      totals[domain.ActivityMoving].Milliseconds(),
		"traffic_ms":     totals[domain.ActivityTraffic].Milliseconds(),
		"dwelling_ms":    totals[domain.ActivityDwelling].Milliseconds(),
	}
	body := fmt.Sprintf(
		"# Ride %s\n\n- Entries: %d\n- Moving: %s\n- Traffic: %s\n- Dwelling: %s\n",
		session.ID,
		len(session.Entries),
		timefmt.Stopwatch(totals[domain.ActivityMoving]),
		timefmt.Stopwatch(totals[domain.ActivityTraffic]),
		timefmt.Stopwatch(totals[domain.ActivityDwelling]),
	)
	rendered, err := markdown.RenderNote(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write archive note: %w", err)
	}
	return path, nil
}
