package in

import (
	"context"

	"ridelog/internal/modules/delivery/dto"
	deliveryin "ridelog/internal/modules/delivery/port/in"
)

type CLIHandler struct {
	usecase deliveryin.Usecase
}

func NewCLIHandler(usecase deliveryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.DelivererInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error) {
	return h.usecase.Deliver(ctx, input)
}
