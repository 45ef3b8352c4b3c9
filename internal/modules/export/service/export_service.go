package service

import (
	"context"
	"fmt"
	"strings"

	"ridelog/internal/modules/export/domain"
	"ridelog/internal/modules/export/dto"
	exportout "ridelog/internal/modules/export/port/out"
	"ridelog/internal/platform/clock"
)

// ExportService builds the CSV artifact once and walks the deliverer chain
// until one succeeds. Failed attempts are recorded, never fatal to the
// session: the artifact is re-handed unchanged to the next deliverer.
type ExportService struct {
	clock      clock.Clock
	source     exportout.IntervalSource
	resolver   exportout.DelivererResolver
	defaultVia []string
}

func NewExportService(clock clock.Clock, source exportout.IntervalSource, resolver exportout.DelivererResolver, defaultVia []string) *ExportService {
	return &ExportService{clock: clock, source: source, resolver: resolver, defaultVia: defaultVia}
}

func (s *ExportService) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	intervals, err := s.source.Intervals(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	artifact, err := domain.Build(intervals, s.clock.Now())
	if err != nil {
		return dto.ExportOutput{}, err
	}

	via := input.Via
	if len(via) == 0 {
		via = s.defaultVia
	}

	out := dto.ExportOutput{
		Filename: artifact.Filename,
		MIME:     artifact.MIME,
		Size:     len(artifact.Content),
	}
	for _, name := range via {
		deliverer, err := s.resolver.Resolve(name)
		if err != nil {
			out.Attempts = append(out.Attempts, dto.AttemptOutput{Deliverer: name, Error: err.Error()})
			continue
		}
		receipt, err := deliverer.Deliver(ctx, artifact)
		if err != nil {
			out.Attempts = append(out.Attempts, dto.AttemptOutput{Deliverer: name, Error: err.Error()})
			continue
		}
		out.Deliverer = receipt.Deliverer
		out.Target = receipt.Target
		out.Message = receipt.Message
		return out, nil
	}

	reasons := make([]string, 0, len(out.Attempts))
	for _, attempt := range out.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s: %s", attempt.Deliverer, attempt.Error))
	}
	return dto.ExportOutput{}, fmt.Errorf("%w: %s", domain.ErrDeliveryFailed, strings.Join(reasons, "; "))
}
