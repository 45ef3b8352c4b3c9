package domain

import (
	"fmt"
	"time"

	apperrors "ridelog/internal/platform/errors"
)

const SchemaVersion = 1

// Activity is one of the three mutually exclusive states being timed.
// The zero value means "none" and never appears inside an entry.
type Activity string

const (
	ActivityNone     Activity = ""
	ActivityMoving   Activity = "moving"
	ActivityTraffic  Activity = "traffic"
	ActivityDwelling Activity = "dwelling"
)

// Activities lists the valid activities in display order.
var Activities = []Activity{ActivityMoving, ActivityTraffic, ActivityDwelling}

// ParseActivity validates raw input at the boundary. Anything outside the
// three-value vocabulary is rejected and never reaches the log.
func ParseActivity(raw string) (Activity, error) {
	switch Activity(raw) {
	case ActivityMoving, ActivityTraffic, ActivityDwelling:
		return Activity(raw), nil
	default:
		return ActivityNone, fmt.Errorf("%w: %q", apperrors.ErrUnknownActivity, raw)
	}
}

// Entry is one contiguous span of a single activity. EndedAt is nil while
// the interval is still open; it is set exactly once and never mutated again.
type Entry struct {
	Activity  Activity   `json:"activity"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

func (e Entry) Open() bool {
	return e.EndedAt == nil
}

// Duration is the effective span length; an open entry is measured up to now,
// so live totals are well-defined before the entry closes.
func (e Entry) Duration(now time.Time) time.Duration {
	end := now
	if e.EndedAt != nil {
		end = *e.EndedAt
	}
	d := end.Sub(e.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Action describes what a Select transition did.
type Action string

const (
	ActionStarted  Action = "started"
	ActionStopped  Action = "stopped"
	ActionSwitched Action = "switched"
)

// Session is the append-only log of one observation run. At most one entry
// is open at any moment, and that entry is always the last one.
type Session struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Entries   []Entry   `json:"entries"`
}

// Current derives the active activity from the log tail. It is never stored
// separately, so it cannot diverge from the entries.
func (s *Session) Current() Activity {
	if open, ok := s.OpenEntry(); ok {
		return open.Activity
	}
	return ActivityNone
}

// OpenEntry returns the open tail entry, if any.
func (s *Session) OpenEntry() (Entry, bool) {
	if len(s.Entries) == 0 {
		return Entry{}, false
	}
	last := s.Entries[len(s.Entries)-1]
	if !last.Open() {
		return Entry{}, false
	}
	return last, true
}

// Select applies one press of an activity button at instant now:
// idle -> open a new entry; same activity -> close it; different activity ->
// close the open entry and open the next one at the same instant, so
// consecutive entries share a timestamp with zero gap and zero overlap.
func (s *Session) Select(activity Activity, now time.Time) (Action, error) {
	if _, err := ParseActivity(string(activity)); err != nil {
		return "", err
	}

	open, hasOpen := s.OpenEntry()
	if !hasOpen {
		s.Entries = append(s.Entries, Entry{Activity: activity, StartedAt: now})
		return ActionStarted, nil
	}

	at := now
	s.Entries[len(s.Entries)-1].EndedAt = &at
	if open.Activity == activity {
		return ActionStopped, nil
	}
	s.Entries = append(s.Entries, Entry{Activity: activity, StartedAt: now})
	return ActionSwitched, nil
}

// CloseOpen seals a dangling open entry, used when a session is archived.
func (s *Session) CloseOpen(now time.Time) bool {
	if _, ok := s.OpenEntry(); !ok {
		return false
	}
	at := now
	s.Entries[len(s.Entries)-1].EndedAt = &at
	return true
}

// Totals sums effective durations per activity; the open entry counts up to now.
func (s *Session) Totals(now time.Time) map[Activity]time.Duration {
	totals := map[Activity]time.Duration{
		ActivityMoving:   0,
		ActivityTraffic:  0,
		ActivityDwelling: 0,
	}
	for _, e := range s.Entries {
		totals[e.Activity] += e.Duration(now)
	}
	return totals
}

// Validate checks the log invariants: entries ordered by start, closed
// entries never overlap their successor, and only the tail may be open.
func (s *Session) Validate() error {
	openCount := 0
	for i, e := range s.Entries {
		if _, err := ParseActivity(string(e.Activity)); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Open() {
			openCount++
			if i != len(s.Entries)-1 {
				return fmt.Errorf("entry %d is open but not last", i)
			}
		} else if e.EndedAt.Before(e.StartedAt) {
			return fmt.Errorf("entry %d ends before it starts", i)
		}
		if i > 0 {
			prev := s.Entries[i-1]
			if prev.EndedAt == nil || e.StartedAt.Before(*prev.EndedAt) {
				return fmt.Errorf("entry %d overlaps its predecessor", i)
			}
		}
	}
	if openCount > 1 {
		return fmt.Errorf("%d entries are open, at most one allowed", openCount)
	}
	return nil
}
