package usecase

import (
	"context"

	"ridelog/internal/modules/report/dto"
	reportin "ridelog/internal/modules/report/port/in"
	"ridelog/internal/modules/report/service"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Shares(ctx context.Context) (dto.SharesOutput, error) {
	return i.svc.Shares(ctx)
}

func (i *Interactor) Clock(ctx context.Context) (dto.ClockOutput, error) {
	return i.svc.Clock(ctx)
}
