package in

import (
	"context"

	trackerdto "ridelog/internal/modules/tracker/dto"
	trackerin "ridelog/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Select(ctx context.Context, activity string) (trackerdto.SelectOutput, error) {
	return h.usecase.Select(ctx, trackerdto.SelectInput{Activity: activity})
}

func (h CLIHandler) Status(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Entries(ctx context.Context) ([]trackerdto.EntryOutput, error) {
	return h.usecase.Entries(ctx)
}

func (h CLIHandler) Log(ctx context.Context) ([]trackerdto.EntryOutput, error) {
	return h.usecase.Log(ctx)
}

func (h CLIHandler) StartNew(ctx context.Context, label string) (trackerdto.StartNewOutput, error) {
	return h.usecase.StartNew(ctx, trackerdto.StartNewInput{Label: label})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
