package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "ridelog/internal/platform/errors"
)

// configName is the config file name without extension.
const configName = ".ridelog"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for ridelog settings.
const envPrefix = "RIDELOG"

const (
	DefaultTickMS           = 10
	DefaultExportVia        = "dir"
	DefaultDeliveryManifest = "deliverers.json"
)

// Config carries the resolved settings plus the derived data-dir paths.
type Config struct {
	BasePath string

	Export struct {
		Dir string   `mapstructure:"dir"`
		Via []string `mapstructure:"via"`
	} `mapstructure:"export"`

	UI struct {
		TickMS int `mapstructure:"tick_ms"`
	} `mapstructure:"ui"`

	Delivery struct {
		Manifest string `mapstructure:"manifest"`
	} `mapstructure:"delivery"`
}

// StatePath is the JSON state file holding the current session (the log of record).
func (c Config) StatePath() string {
	return filepath.Join(c.BasePath, ".ridelog", "session.json")
}

// DBPath is the SQLite projection rebuilt from the state file.
func (c Config) DBPath() string {
	return filepath.Join(c.BasePath, ".ridelog", "ridelog.db")
}

// ArchiveDir holds summary notes of finished sessions.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.BasePath, "sessions")
}

// ManifestPath resolves the delivery-plugin manifest relative to the base dir.
func (c Config) ManifestPath() string {
	if filepath.IsAbs(c.Delivery.Manifest) {
		return c.Delivery.Manifest
	}
	return filepath.Join(c.BasePath, c.Delivery.Manifest)
}

// Load reads configuration from file, env vars, and defaults. The config file
// is searched in the base dir and $HOME; a missing file is not an error.
func Load(basePath string) (Config, error) {
	if basePath == "" {
		return Config{}, fmt.Errorf("%w: base path is required", apperrors.ErrInvalidInput)
	}

	v := viper.New()
	applyDefaults(v, basePath)

	v.SetConfigType(configType)
	v.SetConfigName(configName)
	v.AddConfigPath(basePath)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{BasePath: basePath}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.BasePath = basePath
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper, basePath string) {
	v.SetDefault("export.dir", filepath.Join(basePath, "exports"))
	v.SetDefault("export.via", []string{DefaultExportVia})
	v.SetDefault("ui.tick_ms", DefaultTickMS)
	v.SetDefault("delivery.manifest", DefaultDeliveryManifest)
}

func (c Config) validate() error {
	if c.UI.TickMS <= 0 {
		return fmt.Errorf("%w: ui.tick_ms must be positive, got %d", apperrors.ErrInvalidInput, c.UI.TickMS)
	}
	if len(c.Export.Via) == 0 {
		return fmt.Errorf("%w: export.via must name at least one deliverer", apperrors.ErrInvalidInput)
	}
	return nil
}
