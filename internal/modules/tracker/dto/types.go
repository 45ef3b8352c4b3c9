package dto

import "time"

type SelectInput struct {
	Activity string
}

type SelectOutput struct {
	SessionID string
	Activity  string
	Action    string
	At        time.Time
	Current   string
	Entries   int
}

type StatusOutput struct {
	SessionID  string
	Label      string
	StartedAt  time.Time
	Current    string
	OpenSince  time.Time
	Elapsed    string
	EntryCount int
}

type EntryOutput struct {
	Activity   string
	StartedAt  time.Time
	EndedAt    time.Time
	Open       bool
	DurationMS int64
}

type StartNewInput struct {
	Label string
}

type StartNewOutput struct {
	SessionID   string
	Label       string
	StartedAt   time.Time
	ArchivePath string
	Archived    bool
}
