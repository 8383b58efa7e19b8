package domain

import (
	"fmt"
	"strings"
	"time"
)

// Accessors below apply defaults so callers never see zero values.

// HasAPIKey reports whether a Gemini API key is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// GetModel returns the configured model or the default one.
func (c *Config) GetModel() string {
	if strings.TrimSpace(c.Model) == "" {
		return DefaultModel
	}
	return strings.TrimSpace(c.Model)
}

// GetEndpoint returns the API base URL without a trailing slash.
func (c *Config) GetEndpoint() string {
	endpoint := strings.TrimSpace(c.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return strings.TrimRight(endpoint, "/")
}

// GetDialect returns the configured dialect name, "auto" when unset.
func (c *Config) GetDialect() string {
	name := strings.ToLower(strings.TrimSpace(c.Dialect))
	if name == "" {
		return "auto"
	}
	return name
}

// GetHTTPTimeout returns the gateway HTTP timeout.
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// GetGeneration returns generation parameters for command interpretation.
func (c *Config) GetGeneration() GenerationSettings {
	return c.Generation.withDefaults(DefaultTemperature, DefaultMaxOutputTokens)
}

// GetSummaryGeneration returns generation parameters for file summaries.
func (c *Config) GetSummaryGeneration() GenerationSettings {
	return c.Summary.withDefaults(DefaultSummaryTemperature, DefaultSummaryMaxTokens)
}

func (g GenerationSettings) withDefaults(temperature float64, maxTokens int) GenerationSettings {
	if g.Temperature <= 0 {
		g.Temperature = temperature
	}
	if g.MaxOutputTokens <= 0 {
		g.MaxOutputTokens = maxTokens
	}
	return g
}

// GetContextLimits returns the context caps with defaults applied.
func (c *Config) GetContextLimits() ContextSettings {
	limits := c.Context
	if limits.ListingLimit <= 0 {
		limits.ListingLimit = DefaultListingLimit
	}
	if limits.TreeLimit <= 0 {
		limits.TreeLimit = DefaultTreeLimit
	}
	if limits.FilesLimit <= 0 {
		limits.FilesLimit = DefaultFilesLimit
	}
	if limits.MentionLimit <= 0 {
		limits.MentionLimit = DefaultMentionLimit
	}
	return limits
}

// GetHistoryRetentionDays returns the number of days to retain history
func (c *Config) GetHistoryRetentionDays() int {
	if c.History.RetentionDays <= 0 {
		return DefaultHistoryRetainDays
	}
	return c.History.RetentionDays
}

// GetCacheTTL parses the cache TTL, falling back to the default on bad input.
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || ttl <= 0 {
		return DefaultCacheTTL
	}
	return ttl
}

// GetCacheMaxEntries returns the maximum number of cache entries
func (c *Config) GetCacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return c.Cache.MaxEntries
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	switch c.GetDialect() {
	case "auto", string(DialectPOSIX), string(DialectWindows):
	default:
		return fmt.Errorf("dialect must be auto|posix|windows, got %s", c.Dialect)
	}
	if c.Generation.Temperature < 0 || c.Summary.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0")
	}
	if c.History.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl invalid: %w", err)
		}
	}
	return nil
}
