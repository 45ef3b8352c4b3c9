package usecase

import (
	"context"
	"time"

	"ridelog/internal/modules/tracker/domain"
	"ridelog/internal/modules/tracker/dto"
	trackerin "ridelog/internal/modules/tracker/port/in"
	"ridelog/internal/modules/tracker/service"
	"ridelog/internal/platform/timefmt"
)

type Interactor struct {
	svc *service.TrackerService
}

func NewInteractor(svc *service.TrackerService) trackerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Select(ctx context.Context, input dto.SelectInput) (dto.SelectOutput, error) {
	activity, err := domain.ParseActivity(input.Activity)
	if err != nil {
		return dto.SelectOutput{}, err
	}
	session, action, at, err := i.svc.Select(ctx, activity)
	if err != nil {
		return dto.SelectOutput{}, err
	}
	return dto.SelectOutput{
		SessionID: session.ID,
		Activity:  string(activity),
		Action:    string(action),
		At:        at,
		Current:   string(session.Current()),
		Entries:   len(session.Entries),
	}, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	session, err := i.svc.Snapshot(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	out := dto.StatusOutput{
		SessionID:  session.ID,
		Label:      session.Label,
		StartedAt:  session.StartedAt,
		Current:    string(session.Current()),
		Elapsed:    timefmt.ZeroElapsed,
		EntryCount: len(session.Entries),
	}
	if open, ok := session.OpenEntry(); ok {
		out.OpenSince = open.StartedAt
		out.Elapsed = timefmt.Elapsed(i.svc.Now().Sub(open.StartedAt))
	}
	return out, nil
}

func (i *Interactor) Entries(ctx context.Context) ([]dto.EntryOutput, error) {
	session, err := i.svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toEntryOutputs(session.Entries, i.svc.Now()), nil
}

func (i *Interactor) Log(ctx context.Context) ([]dto.EntryOutput, error) {
	entries, err := i.svc.Log(ctx)
	if err != nil {
		return nil, err
	}
	return toEntryOutputs(entries, i.svc.Now()), nil
}

func (i *Interactor) StartNew(ctx context.Context, input dto.StartNewInput) (dto.StartNewOutput, error) {
	fresh, archivePath, err := i.svc.StartNew(ctx, input.Label)
	if err != nil {
		return dto.StartNewOutput{}, err
	}
	return dto.StartNewOutput{
		SessionID:   fresh.ID,
		Label:       fresh.Label,
		StartedAt:   fresh.StartedAt,
		ArchivePath: archivePath,
		Archived:    archivePath != "",
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toEntryOutputs(entries []domain.Entry, now time.Time) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		item := dto.EntryOutput{
			Activity:   string(e.Activity),
			StartedAt:  e.StartedAt,
			Open:       e.Open(),
			DurationMS: e.Duration(now).Milliseconds(),
		}
		if e.EndedAt != nil {
			item.EndedAt = *e.EndedAt
		}
		out = append(out, item)
	}
	return out
}
