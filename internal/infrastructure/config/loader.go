package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/pkg/filesystem"
	"github.com/doeshing/ganpi-go/internal/ports"
)

const currentFormatVersion = "1"

// FileLoader loads YAML configuration from ~/.ganpi/config.yaml (overridable via GANPI_CONFIG).
type FileLoader struct {
	overridePath string
	legacyPath   string
	getenv       func(string) string
}

// NewFileLoader builds a new loader. An empty path uses GANPI_CONFIG or the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{
		overridePath: path,
		legacyPath:   filepath.Join(filesystem.UserHomeDir(), LegacyFileName),
		getenv:       os.Getenv,
	}
}

// WithLegacyPath points the loader at a different KEY=VALUE file.
func (l *FileLoader) WithLegacyPath(path string) *FileLoader {
	l.legacyPath = path
	return l
}

// WithEnv replaces os.Getenv, mostly for tests.
func (l *FileLoader) WithEnv(getenv func(string) string) *FileLoader {
	l.getenv = getenv
	return l
}

// Load implements ports.ConfigProvider.
//
// Precedence, lowest first: built-in defaults, the YAML file, the legacy
// KEY=VALUE file (only when the YAML has no key), environment variables.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	var cfg domain.Config
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if err := writeConfig(path, cfg); err != nil {
			return domain.Config{}, err
		}
	case err != nil:
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg = hydrateDefaults(cfg)
	if !cfg.HasAPIKey() {
		if legacy, err := ReadLegacyFile(l.legacyPath); err == nil {
			cfg = legacy.Apply(cfg)
		}
	}
	return l.applyEnv(cfg), nil
}

// Save writes cfg to the resolved path with owner-only permissions.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return writeConfig(path, cfg)
}

// Backup copies the current file to <path>.bak. A missing file is not an error.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Path returns the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := l.getenv("GANPI_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func (l *FileLoader) applyEnv(cfg domain.Config) domain.Config {
	for _, name := range []string{"GANPI_API_KEY", "GEMINI_API_KEY"} {
		if key := l.getenv(name); key != "" {
			cfg.APIKey = key
			break
		}
	}
	if model := l.getenv("GANPI_MODEL"); model != "" {
		cfg.Model = model
	}
	return cfg
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig is what a first run writes to disk.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: currentFormatVersion,
		Model:               domain.DefaultModel,
		Endpoint:            domain.DefaultEndpoint,
		Dialect:             "auto",
		HTTPTimeoutSeconds:  int(domain.DefaultHTTPClientTimeout.Seconds()),
		Generation: domain.GenerationSettings{
			Temperature:     domain.DefaultTemperature,
			MaxOutputTokens: domain.DefaultMaxOutputTokens,
		},
		Summary: domain.GenerationSettings{
			Temperature:     domain.DefaultSummaryTemperature,
			MaxOutputTokens: domain.DefaultSummaryMaxTokens,
		},
		Context: domain.ContextSettings{
			ListingLimit: domain.DefaultListingLimit,
			TreeLimit:    domain.DefaultTreeLimit,
			FilesLimit:   domain.DefaultFilesLimit,
			MentionLimit: domain.DefaultMentionLimit,
		},
		Security: domain.SecuritySettings{
			RulesFile: filepath.Join(filesystem.AppDir(), "rules.yaml"),
		},
		History: domain.HistorySettings{
			Enabled:       true,
			RetentionDays: domain.DefaultHistoryRetainDays,
		},
		Cache: domain.CacheSettings{
			Enabled:    false,
			TTL:        domain.DefaultCacheTTL.String(),
			MaxEntries: domain.DefaultMaxCacheEntries,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = currentFormatVersion
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = domain.DefaultEndpoint
	}
	if cfg.Dialect == "" {
		cfg.Dialect = "auto"
	}
	if cfg.Security.RulesFile == "" {
		cfg.Security.RulesFile = filepath.Join(filesystem.AppDir(), "rules.yaml")
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
