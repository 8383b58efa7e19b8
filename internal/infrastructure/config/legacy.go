package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
)

// LegacyFileName is the pre-YAML config file kept in the home directory.
const LegacyFileName = ".ganpi.config"

// LegacyConfig holds the two keys the KEY=VALUE format knows about.
type LegacyConfig struct {
	APIKey string
	Model  string
}

// ReadLegacyFile parses path; a missing file is an error the caller may ignore.
func ReadLegacyFile(path string) (LegacyConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return LegacyConfig{}, err
	}
	defer f.Close()
	return ParseLegacy(f)
}

// ParseLegacy reads GEMINI_API_KEY and MODEL lines. Blank lines, # comments and
// unknown keys are skipped.
func ParseLegacy(r io.Reader) (LegacyConfig, error) {
	var cfg LegacyConfig
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "GEMINI_API_KEY":
			cfg.APIKey = value
		case "MODEL":
			cfg.Model = value
		}
	}
	if err := scanner.Err(); err != nil {
		return LegacyConfig{}, fmt.Errorf("read legacy config: %w", err)
	}
	return cfg, nil
}

// Apply copies the non-empty legacy values over cfg.
func (l LegacyConfig) Apply(cfg domain.Config) domain.Config {
	if l.APIKey != "" {
		cfg.APIKey = l.APIKey
	}
	if l.Model != "" {
		cfg.Model = l.Model
	}
	return cfg
}
