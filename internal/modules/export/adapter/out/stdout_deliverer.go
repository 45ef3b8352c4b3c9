package out

import (
	"context"
	"fmt"
	"io"
	"os"

	"ridelog/internal/modules/export/domain"
	exportout "ridelog/internal/modules/export/port/out"
)

// StdoutDeliverer streams the artifact bytes to a writer. It is the final
// fallback of the chain and cannot fail short of a broken pipe.
type StdoutDeliverer struct {
	w io.Writer
}

func NewStdoutDeliverer() exportout.Deliverer {
	return &StdoutDeliverer{w: os.Stdout}
}

func NewWriterDeliverer(w io.Writer) exportout.Deliverer {
	return &StdoutDeliverer{w: w}
}

func (d *StdoutDeliverer) Name() string { return "stdout" }

func (d *StdoutDeliverer) Deliver(_ context.Context, artifact domain.Artifact) (domain.Receipt, error) {
	if _, err := d.w.Write(artifact.Content); err != nil {
		return domain.Receipt{}, fmt.Errorf("write artifact to stdout: %w", err)
	}
	return domain.Receipt{Deliverer: d.Name(), Target: artifact.Filename, Message: "streamed to stdout"}, nil
}
