package in

import (
	"context"

	"ridelog/internal/modules/report/dto"
)

type Usecase interface {
	Shares(ctx context.Context) (dto.SharesOutput, error)
	Clock(ctx context.Context) (dto.ClockOutput, error)
}
