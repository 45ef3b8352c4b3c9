package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ridelog/internal/modules/export/domain"
	exportout "ridelog/internal/modules/export/port/out"
)

// DirDeliverer writes the artifact into the configured export directory,
// the local analog of a browser download.
type DirDeliverer struct {
	dir string
}

func NewDirDeliverer(dir string) exportout.Deliverer {
	return &DirDeliverer{dir: dir}
}

func (d *DirDeliverer) Name() string { return "dir" }

func (d *DirDeliverer) Deliver(_ context.Context, artifact domain.Artifact) (domain.Receipt, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return domain.Receipt{}, fmt.Errorf("create export dir: %w", err)
	}
	target := filepath.Join(d.dir, artifact.Filename)
	if err := os.WriteFile(target, artifact.Content, 0o644); err != nil {
		return domain.Receipt{}, fmt.Errorf("write export file: %w", err)
	}
	return domain.Receipt{Deliverer: d.Name(), Target: target}, nil
}
