package usecase

import (
	"context"

	"ridelog/internal/modules/delivery/dto"
	deliveryin "ridelog/internal/modules/delivery/port/in"
	"ridelog/internal/modules/delivery/service"
)

type Interactor struct {
	svc *service.DeliveryService
}

func NewInteractor(svc *service.DeliveryService) deliveryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.DelivererInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error) {
	return i.svc.Deliver(ctx, input)
}
