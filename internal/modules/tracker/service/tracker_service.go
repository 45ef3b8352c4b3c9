package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ridelog/internal/modules/tracker/domain"
	trackerout "ridelog/internal/modules/tracker/port/out"
	"ridelog/internal/platform/clock"
	apperrors "ridelog/internal/platform/errors"
	"ridelog/internal/platform/id"
)

// TrackerService owns every mutation of the session log. The mutex keeps
// mutate+persist atomic for concurrent in-process callers; readers always
// get a snapshot copy.
type TrackerService struct {
	mu        sync.Mutex
	clock     clock.Clock
	idGen     id.Generator
	store     trackerout.SessionStore
	projector trackerout.EntryProjector
	archive   trackerout.ArchiveStore
}

func NewTrackerService(clock clock.Clock, idGen id.Generator, store trackerout.SessionStore, projector trackerout.EntryProjector, archive trackerout.ArchiveStore) *TrackerService {
	return &TrackerService{clock: clock, idGen: idGen, store: store, projector: projector, archive: archive}
}

// Select applies one activity press. The instant is sampled exactly once and
// used for both the close and the open side of a switch. A session is created
// lazily on the first press.
func (s *TrackerService) Select(ctx context.Context, activity domain.Activity) (domain.Session, domain.Action, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	session, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNoSession) {
		session = domain.Session{ID: s.idGen.New(), StartedAt: now}
		err = nil
	}
	if err != nil {
		return domain.Session{}, "", time.Time{}, err
	}

	action, err := session.Select(activity, now)
	if err != nil {
		return domain.Session{}, "", time.Time{}, err
	}
	if err := s.persist(ctx, session); err != nil {
		return domain.Session{}, "", time.Time{}, err
	}
	return session, action, now, nil
}

// Snapshot returns a copy of the current session for read-side consumers.
func (s *TrackerService) Snapshot(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.store.Load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	entries := make([]domain.Entry, len(session.Entries))
	copy(entries, session.Entries)
	session.Entries = entries
	return session, nil
}

// StartNew replaces the current session with a fresh empty one. A dangling
// open entry of the old session is closed at now, and the old log is archived
// BEFORE the state file is replaced: a failed archive aborts the reset and
// leaves the old session untouched on disk.
func (s *TrackerService) StartNew(ctx context.Context, label string) (fresh domain.Session, archivePath string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.store.Load(ctx)
	hadOld := true
	if errors.Is(err, apperrors.ErrNoSession) {
		hadOld = false
		err = nil
	}
	if err != nil {
		return domain.Session{}, "", err
	}

	now := s.clock.Now()
	if hadOld {
		old.CloseOpen(now)
		if len(old.Entries) > 0 && s.archive != nil {
			archivePath, err = s.archive.Save(ctx, old)
			if err != nil {
				return domain.Session{}, "", fmt.Errorf("archive session: %w", err)
			}
		}
	}
	fresh = domain.Session{ID: s.idGen.New(), Label: label, StartedAt: now}
	if err := s.persist(ctx, fresh); err != nil {
		return domain.Session{}, "", err
	}
	return fresh, archivePath, nil
}

// Reindex rebuilds the projection from the state file, recovering from a
// deleted or corrupt projection database.
func (s *TrackerService) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNoSession) {
		return s.projector.Reset(ctx)
	}
	if err != nil {
		return err
	}
	return s.projector.Replace(ctx, session)
}

// Log lists entries from the projection.
func (s *TrackerService) Log(ctx context.Context) ([]domain.Entry, error) {
	return s.projector.List(ctx)
}

func (s *TrackerService) Now() time.Time {
	return s.clock.Now()
}

func (s *TrackerService) persist(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("session invariant broken: %w", err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return err
	}
	return s.projector.Replace(ctx, session)
}
