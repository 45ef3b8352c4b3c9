package in

import (
	"context"

	"ridelog/internal/modules/delivery/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.DelivererInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error)
}
