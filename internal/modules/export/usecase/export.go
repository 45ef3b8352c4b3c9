package usecase

import (
	"context"

	"ridelog/internal/modules/export/dto"
	exportin "ridelog/internal/modules/export/port/in"
	"ridelog/internal/modules/export/service"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) exportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return i.svc.Export(ctx, input)
}
