package in

import (
	"context"

	reportdto "ridelog/internal/modules/report/dto"
	reportin "ridelog/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Shares(ctx context.Context) (reportdto.SharesOutput, error) {
	return h.usecase.Shares(ctx)
}

func (h CLIHandler) Clock(ctx context.Context) (reportdto.ClockOutput, error) {
	return h.usecase.Clock(ctx)
}
