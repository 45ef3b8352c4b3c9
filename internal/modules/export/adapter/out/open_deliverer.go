package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"ridelog/internal/modules/export/domain"
	exportout "ridelog/internal/modules/export/port/out"
)

// OpenDeliverer writes the artifact and hands it to the OS opener, the
// local analog of a share sheet.
type OpenDeliverer struct {
	dir string
}

func NewOpenDeliverer(dir string) exportout.Deliverer {
	return &OpenDeliverer{dir: dir}
}

func (d *OpenDeliverer) Name() string { return "open" }

func (d *OpenDeliverer) Deliver(_ context.Context, artifact domain.Artifact) (domain.Receipt, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return domain.Receipt{}, fmt.Errorf("create export dir: %w", err)
	}
	target := filepath.Join(d.dir, artifact.Filename)
	if err := os.WriteFile(target, artifact.Content, 0o644); err != nil {
		return domain.Receipt{}, fmt.Errorf("write export file: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	default:
		return domain.Receipt{}, fmt.Errorf("open is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return domain.Receipt{}, fmt.Errorf("open export file: %w", err)
	}
	return domain.Receipt{Deliverer: d.Name(), Target: target, Message: "handed to OS opener"}, nil
}
