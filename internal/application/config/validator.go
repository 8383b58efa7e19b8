package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validateEndpoint(cfg.GetEndpoint()); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.GetModel()) == "" || strings.ContainsAny(cfg.GetModel(), " /?") {
		return fmt.Errorf("model name %q is invalid", cfg.Model)
	}
	if err := validateGeneration("generation", cfg.Generation); err != nil {
		return err
	}
	if err := validateGeneration("summary", cfg.Summary); err != nil {
		return err
	}
	if err := validateContext(cfg.Context); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	if cfg.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("http_timeout_seconds must be >= 0")
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("endpoint invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be http or https, got %q", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint has no host: %q", endpoint)
	}
	return nil
}

func validateGeneration(section string, gen domain.GenerationSettings) error {
	if gen.Temperature > 2 {
		return fmt.Errorf("%s.temperature must be between 0 and 2", section)
	}
	if gen.MaxOutputTokens < 0 {
		return fmt.Errorf("%s.max_output_tokens must be >= 0", section)
	}
	return nil
}

func validateContext(ctx domain.ContextSettings) error {
	limits := []struct {
		name  string
		value int
	}{
		{"context.listing_limit", ctx.ListingLimit},
		{"context.tree_limit", ctx.TreeLimit},
		{"context.files_limit", ctx.FilesLimit},
		{"context.mention_limit", ctx.MentionLimit},
	}
	for _, limit := range limits {
		if limit.value < 0 {
			return fmt.Errorf("%s must be >= 0", limit.name)
		}
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	if cache.TTL != "" {
		ttl, err := time.ParseDuration(cache.TTL)
		if err != nil {
			return fmt.Errorf("cache.ttl invalid: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("cache.ttl must be positive")
		}
	}
	if cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	return nil
}
