package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
)

// TestConfig_Defaults tests that accessors fill zero values
func TestConfig_Defaults(t *testing.T) {
	var cfg domain.Config

	if got := cfg.GetModel(); got != domain.DefaultModel {
		t.Errorf("GetModel() = %s, want %s", got, domain.DefaultModel)
	}
	if got := cfg.GetEndpoint(); got != domain.DefaultEndpoint {
		t.Errorf("GetEndpoint() = %s, want %s", got, domain.DefaultEndpoint)
	}
	if got := cfg.GetDialect(); got != "auto" {
		t.Errorf("GetDialect() = %s, want auto", got)
	}
	if got := cfg.GetHTTPTimeout(); got != domain.DefaultHTTPClientTimeout {
		t.Errorf("GetHTTPTimeout() = %v, want %v", got, domain.DefaultHTTPClientTimeout)
	}
	gen := cfg.GetGeneration()
	if gen.Temperature != domain.DefaultTemperature || gen.MaxOutputTokens != domain.DefaultMaxOutputTokens {
		t.Errorf("GetGeneration() = %+v", gen)
	}
	summary := cfg.GetSummaryGeneration()
	if summary.Temperature != domain.DefaultSummaryTemperature || summary.MaxOutputTokens != domain.DefaultSummaryMaxTokens {
		t.Errorf("GetSummaryGeneration() = %+v", summary)
	}
	limits := cfg.GetContextLimits()
	if limits.TreeLimit != domain.DefaultTreeLimit || limits.ListingLimit != domain.DefaultListingLimit {
		t.Errorf("GetContextLimits() = %+v", limits)
	}
	if cfg.HasAPIKey() {
		t.Error("HasAPIKey() = true for empty config")
	}
}

// TestConfig_GetEndpoint tests trailing slash handling
func TestConfig_GetEndpoint(t *testing.T) {
	cfg := domain.Config{Endpoint: "http://127.0.0.1:8080/v1beta/"}
	if got := cfg.GetEndpoint(); got != "http://127.0.0.1:8080/v1beta" {
		t.Errorf("GetEndpoint() = %s", got)
	}
}

// TestConfig_GetCacheTTL tests TTL parsing with fallback
func TestConfig_GetCacheTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{name: "empty uses default", ttl: "", want: domain.DefaultCacheTTL},
		{name: "valid duration", ttl: "15m", want: 15 * time.Minute},
		{name: "invalid falls back", ttl: "soon", want: domain.DefaultCacheTTL},
		{name: "negative falls back", ttl: "-1h", want: domain.DefaultCacheTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{Cache: domain.CacheSettings{TTL: tt.ttl}}
			if got := cfg.GetCacheTTL(); got != tt.want {
				t.Errorf("GetCacheTTL() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestConfig_ValidateConsistency tests configuration consistency validation
func TestConfig_ValidateConsistency(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
	}{
		{name: "empty config is valid", config: domain.Config{}},
		{name: "windows dialect", config: domain.Config{Dialect: "Windows"}},
		{name: "unknown dialect", config: domain.Config{Dialect: "fish"}, wantError: true},
		{name: "negative retention", config: domain.Config{History: domain.HistorySettings{RetentionDays: -1}}, wantError: true},
		{name: "bad ttl", config: domain.Config{Cache: domain.CacheSettings{TTL: "forever"}}, wantError: true},
		{name: "negative temperature", config: domain.Config{Generation: domain.GenerationSettings{Temperature: -0.5}}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateConsistency()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeCommand(t *testing.T) {
	tests := map[string]string{
		"  ls -la  ":   "ls -la",
		"$ ls -la":     "ls -la",
		"$   git log":  "git log",
		"$$ echo hi":   "echo hi",
		"\tpwd\n":      "pwd",
		"echo $HOME":   "echo $HOME",
		"":             "",
		"$":            "",
	}
	for in, want := range tests {
		if got := domain.NormalizeCommand(in); got != want {
			t.Errorf("NormalizeCommand(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContextRender(t *testing.T) {
	var ctx domain.Context
	ctx.Add("Current directory", "/work")
	ctx.Add("Files", "a.txt\nb.txt\n")

	want := "Current directory:\n/work\n\nFiles:\na.txt\nb.txt\n"
	if got := ctx.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if _, ok := ctx.Block("Files"); !ok {
		t.Error("Block(Files) not found")
	}
}

func TestOutcomeErr(t *testing.T) {
	failed := domain.NewExecutionOutcome(2, "boom")
	ok := domain.NewExecutionOutcome(0, "")

	tests := []struct {
		name    string
		outcome domain.Outcome
		want    error
	}{
		{name: "cancelled", outcome: domain.Outcome{Kind: domain.OutcomeCancelled}, want: domain.ErrUserCancelled},
		{name: "void", outcome: domain.Outcome{Kind: domain.OutcomeClassifierVoid}, want: domain.ErrClassifierVoid},
		{name: "parse", outcome: domain.Outcome{Kind: domain.OutcomeParseFailed}, want: domain.ErrNoSafeCommand},
		{name: "success", outcome: domain.Outcome{Kind: domain.OutcomeExecuted, Execution: &ok}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Err(); !errors.Is(got, tt.want) {
				t.Errorf("Err() = %v, want %v", got, tt.want)
			}
		})
	}

	err := domain.Outcome{Kind: domain.OutcomeExecuted, Execution: &failed}.Err()
	var execErr *domain.ExecutionFailedError
	if !errors.As(err, &execErr) || execErr.ExitStatus != 2 {
		t.Fatalf("expected ExecutionFailedError with status 2, got %v", err)
	}
	if failed.Success || !ok.Success {
		t.Fatalf("success flag inconsistent: %+v %+v", failed, ok)
	}
}
