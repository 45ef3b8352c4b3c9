package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ridelog/internal/modules/tracker/domain"
	trackerout "ridelog/internal/modules/tracker/port/out"
	apperrors "ridelog/internal/platform/errors"
)

// FileSessionStore keeps the current session as a JSON state file. It is the
// log of record; the SQLite projection is derived from it.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(statePath string) trackerout.SessionStore {
	return &FileSessionStore{path: statePath}
}

func (s *FileSessionStore) Load(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session state: %w", err)
	}
	session := domain.Session{}
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session state: %w", err)
	}
	if session.ID == "" {
		return domain.Session{}, apperrors.ErrNoSession
	}
	return session, nil
}

func (s *FileSessionStore) Save(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
