package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridelog/internal/platform/config"
	apperrors "ridelog/internal/platform/errors"
)

func TestLoadAppliesDefaultsWithoutConfigFile(t *testing.T) {
	base := t.TempDir()

	cfg, err := config.Load(base)
	require.NoError(t, err)

	assert.Equal(t, base, cfg.BasePath)
	assert.Equal(t, filepath.Join(base, "exports"), cfg.Export.Dir)
	assert.Equal(t, []string{"dir"}, cfg.Export.Via)
	assert.Equal(t, config.DefaultTickMS, cfg.UI.TickMS)
	assert.Equal(t, filepath.Join(base, ".ridelog", "session.json"), cfg.StatePath())
	assert.Equal(t, filepath.Join(base, ".ridelog", "ridelog.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join(base, "deliverers.json"), cfg.ManifestPath())
}

func TestLoadReadsConfigFileFromBaseDir(t *testing.T) {
	base := t.TempDir()
	raw := `
export:
  dir: /tmp/ridelog-exports
  via: [stdout, dir]
ui:
  tick_ms: 50
delivery:
  manifest: /etc/ridelog/deliverers.json
`
	require.NoError(t, os.WriteFile(filepath.Join(base, ".ridelog.yaml"), []byte(raw), 0o644))

	cfg, err := config.Load(base)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ridelog-exports", cfg.Export.Dir)
	assert.Equal(t, []string{"stdout", "dir"}, cfg.Export.Via)
	assert.Equal(t, 50, cfg.UI.TickMS)
	assert.Equal(t, "/etc/ridelog/deliverers.json", cfg.ManifestPath())
}

func TestLoadRejectsNonPositiveTick(t *testing.T) {
	base := t.TempDir()
	raw := "ui:\n  tick_ms: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(base, ".ridelog.yaml"), []byte(raw), 0o644))

	_, err := config.Load(base)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "tick_ms")
}

func TestLoadEnvOverridesFileAndDefaults(t *testing.T) {
	base := t.TempDir()
	t.Setenv("RIDELOG_UI_TICK_MS", "25")

	cfg, err := config.Load(base)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.UI.TickMS)
}

func TestLoadRequiresBasePath(t *testing.T) {
	_, err := config.Load("")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
