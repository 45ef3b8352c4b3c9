package in

import (
	"context"

	"ridelog/internal/modules/tracker/dto"
)

type Usecase interface {
	Select(ctx context.Context, input dto.SelectInput) (dto.SelectOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Entries(ctx context.Context) ([]dto.EntryOutput, error)
	Log(ctx context.Context) ([]dto.EntryOutput, error)
	StartNew(ctx context.Context, input dto.StartNewInput) (dto.StartNewOutput, error)
	Reindex(ctx context.Context) error
}
