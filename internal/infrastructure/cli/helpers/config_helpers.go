package helpers

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/ganpi-go/internal/application/config"
	"github.com/doeshing/ganpi-go/internal/domain"
)

// ConfigStore is the subset of the config loader the CLI writes through.
type ConfigStore interface {
	Save(domain.Config) error
	Backup() (string, error)
	Path() string
}

// SaveConfigWithValidation validates and saves configuration with automatic backup
func SaveConfigWithValidation(store ConfigStore, cfg domain.Config) error {
	if store == nil {
		return fmt.Errorf("config loader unavailable")
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := store.Backup(); err != nil {
		return fmt.Errorf("failed to create configuration backup: %w", err)
	}
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// RedactConfig masks the API key for display.
func RedactConfig(cfg domain.Config) domain.Config {
	if key := cfg.APIKey; key != "" {
		if len(key) > 4 {
			cfg.APIKey = "***" + key[len(key)-4:]
		} else {
			cfg.APIKey = "***"
		}
	}
	return cfg
}

// GetConfigValue looks up a dotted yaml key path, e.g. "cache.ttl".
func GetConfigValue(cfg domain.Config, keyPath string) (interface{}, error) {
	root, err := configToMap(cfg)
	if err != nil {
		return nil, err
	}
	value, found := TraverseNestedMap(root, strings.Split(keyPath, "."))
	if !found {
		return nil, fmt.Errorf("key %s not found in configuration", keyPath)
	}
	return value, nil
}

// SetConfigValue returns cfg with keyPath set to raw (parsed as YAML).
// Unknown keys are rejected.
func SetConfigValue(cfg domain.Config, keyPath, raw string) (domain.Config, error) {
	root, err := configToMap(cfg)
	if err != nil {
		return domain.Config{}, err
	}
	keys := strings.Split(keyPath, ".")
	if _, found := TraverseNestedMap(root, keys); !found {
		return domain.Config{}, fmt.Errorf("unknown configuration key %s", keyPath)
	}
	if !SetNestedMapValue(root, keys, ParseYAMLValue(raw)) {
		return domain.Config{}, fmt.Errorf("unable to set key %s", keyPath)
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to marshal updated map: %w", err)
	}
	var updated domain.Config
	if err := yaml.Unmarshal(data, &updated); err != nil {
		return domain.Config{}, fmt.Errorf("invalid value for %s: %w", keyPath, err)
	}
	return updated, nil
}

func configToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var root map[string]interface{}
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}
	return root, nil
}

// ParseYAMLValue parses a string value as YAML, falling back to literal string
func ParseYAMLValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil || parsed == nil {
		return input
	}
	return parsed
}

// SetNestedMapValue sets a value in a nested map using a key path
// Returns true if successful, false otherwise
func SetNestedMapValue(root map[string]interface{}, keyPath []string, value interface{}) bool {
	if len(keyPath) == 0 {
		return false
	}

	current := root
	for i := 0; i < len(keyPath)-1; i++ {
		key := keyPath[i]
		next, exists := current[key]

		if !exists {
			newChild := map[string]interface{}{}
			current[key] = newChild
			current = newChild
			continue
		}

		child, isMap := next.(map[string]interface{})
		if !isMap {
			child = map[string]interface{}{}
			current[key] = child
		}
		current = child
	}

	current[keyPath[len(keyPath)-1]] = value
	return true
}

// TraverseNestedMap retrieves a value from a nested map using a key path
// Returns the value and true if found, nil and false otherwise
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	switch node := data.(type) {
	case map[string]interface{}:
		next, exists := node[keyPath[0]]
		if !exists {
			return nil, false
		}
		return TraverseNestedMap(next, keyPath[1:])
	default:
		return nil, false
	}
}
