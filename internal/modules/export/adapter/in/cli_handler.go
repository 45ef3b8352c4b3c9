package in

import (
	"context"

	exportdto "ridelog/internal/modules/export/dto"
	exportin "ridelog/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, via []string) (exportdto.ExportOutput, error) {
	return h.usecase.Export(ctx, exportdto.ExportInput{Via: via})
}
