package security

import (
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Classifier implements ports.Classifier with ordered substring tables.
//
// The normalized command is lower-cased and padded with one space on each side
// before matching, so a pattern that starts or ends with a space only matches at
// a word boundary.
type Classifier struct {
	tables    domain.RuleTables
	downgrade map[string]bool
}

// NewClassifier copies and lower-cases the tables.
func NewClassifier(tables domain.RuleTables) *Classifier {
	c := &Classifier{
		tables: domain.RuleTables{
			Forbidden:      lowerAll(tables.Forbidden),
			Dangerous:      lowerAll(tables.Dangerous),
			QuietFlag:      strings.ToLower(tables.QuietFlag),
			QuietDowngrade: lowerAll(tables.QuietDowngrade),
		},
		downgrade: map[string]bool{},
	}
	for _, pattern := range c.tables.QuietDowngrade {
		c.downgrade[pattern] = true
	}
	return c
}

// Classify returns only the tier.
func (c *Classifier) Classify(command string) domain.RiskTier {
	return c.Evaluate(command).Tier
}

// Evaluate implements ports.Classifier.
func (c *Classifier) Evaluate(command string) domain.RiskAssessment {
	normalized := domain.NormalizeCommand(command)
	assessment := domain.RiskAssessment{Command: normalized, Tier: domain.TierSafe}
	if normalized == "" {
		return assessment
	}
	subject := " " + strings.ToLower(normalized) + " "

	for _, pattern := range c.tables.Forbidden {
		if pattern != "" && strings.Contains(subject, pattern) {
			assessment.Matched = append(assessment.Matched, pattern)
		}
	}
	if len(assessment.Matched) > 0 {
		assessment.Tier = domain.TierForbidden
		return assessment
	}

	quiet := c.tables.QuietFlag != "" && strings.Contains(subject, c.tables.QuietFlag)
	for _, pattern := range c.tables.Dangerous {
		if pattern == "" || !strings.Contains(subject, pattern) {
			continue
		}
		if quiet && c.downgrade[pattern] {
			assessment.Downgraded = append(assessment.Downgraded, pattern)
			continue
		}
		assessment.Matched = append(assessment.Matched, pattern)
	}
	if len(assessment.Matched) > 0 {
		assessment.Tier = domain.TierDangerous
	}
	return assessment
}

// Tables returns the normalized tables in use.
func (c *Classifier) Tables() domain.RuleTables {
	return c.tables
}

func lowerAll(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		out = append(out, strings.ToLower(pattern))
	}
	return out
}

var _ ports.Classifier = (*Classifier)(nil)
