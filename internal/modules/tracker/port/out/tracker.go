package out

import (
	"context"

	"ridelog/internal/modules/tracker/domain"
)

// SessionStore holds the current session as the log of record.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

// EntryProjector maintains the derived, queryable copy of the log.
// It is rebuildable at any time from the session store.
type EntryProjector interface {
	Replace(ctx context.Context, session domain.Session) error
	List(ctx context.Context) ([]domain.Entry, error)
	Reset(ctx context.Context) error
}

// ArchiveStore writes the summary note of a finished session.
type ArchiveStore interface {
	Save(ctx context.Context, session domain.Session) (string, error)
}
