package domain

import "strings"

// RiskTier is the classifier's verdict for a command.
type RiskTier int

const (
	// TierSafe may run after a confirmation that defaults to yes.
	TierSafe RiskTier = iota
	// TierDangerous needs an explicit yes.
	TierDangerous
	// TierForbidden never runs.
	TierForbidden
)

func (t RiskTier) String() string {
	switch t {
	case TierSafe:
		return "safe"
	case TierDangerous:
		return "dangerous"
	case TierForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// RiskAssessment aggregates classifier data for display and history.
type RiskAssessment struct {
	Command    string
	Tier       RiskTier
	Matched    []string
	Downgraded []string
}

// RuleTables are the ordered pattern lists a classifier matches against.
// Patterns are lower-case substrings; a leading or trailing space anchors at a word boundary.
type RuleTables struct {
	Forbidden      []string `yaml:"forbidden"`
	Dangerous      []string `yaml:"dangerous"`
	QuietFlag      string   `yaml:"quiet_flag,omitempty"`
	QuietDowngrade []string `yaml:"quiet_downgrade,omitempty"`
}

// Empty reports whether no pattern is configured.
func (r RuleTables) Empty() bool {
	return len(r.Forbidden) == 0 && len(r.Dangerous) == 0
}

// NormalizeCommand trims whitespace and strips a leading shell-prompt marker.
func NormalizeCommand(command string) string {
	command = strings.TrimSpace(command)
	for strings.HasPrefix(command, "$") {
		command = strings.TrimSpace(command[1:])
	}
	return command
}
