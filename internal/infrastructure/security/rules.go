package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
	"github.com/doeshing/ganpi-go/internal/pkg/filesystem"
)

// RulesFile is the YAML schema root of ~/.ganpi/rules.yaml.
type RulesFile struct {
	Rules struct {
		POSIX   domain.RuleTables `yaml:"posix"`
		Windows domain.RuleTables `yaml:"windows"`
	} `yaml:"rules"`
}

// LoadTables reads the rules file for the given dialect.
// A missing file, or an empty list inside it, falls back to the dialect defaults.
func LoadTables(path string, d dialect.Dialect) (domain.RuleTables, error) {
	defaults := d.DefaultRules()
	path = filesystem.ExpandPath(path)
	if path == "" {
		return defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults, nil
		}
		return domain.RuleTables{}, fmt.Errorf("read rules file: %w", err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.RuleTables{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	section := file.Rules.POSIX
	if d.Name() == domain.DialectWindows {
		section = file.Rules.Windows
	}
	return mergeTables(section, defaults), nil
}

// NewClassifierFromFile is LoadTables followed by NewClassifier.
func NewClassifierFromFile(path string, d dialect.Dialect) (*Classifier, error) {
	tables, err := LoadTables(path, d)
	if err != nil {
		return nil, err
	}
	return NewClassifier(tables), nil
}

// DefaultRulesYAML renders the built-in tables for both dialects, as a starting rules file.
func DefaultRulesYAML() ([]byte, error) {
	var file RulesFile
	file.Rules.POSIX = dialect.POSIX().DefaultRules()
	file.Rules.Windows = dialect.Windows().DefaultRules()
	return yaml.Marshal(file)
}

func mergeTables(section, defaults domain.RuleTables) domain.RuleTables {
	if len(section.Forbidden) == 0 {
		section.Forbidden = defaults.Forbidden
	}
	if len(section.Dangerous) == 0 {
		section.Dangerous = defaults.Dangerous
	}
	if section.QuietFlag == "" && len(section.QuietDowngrade) == 0 {
		section.QuietFlag = defaults.QuietFlag
		section.QuietDowngrade = defaults.QuietDowngrade
	}
	return section
}
