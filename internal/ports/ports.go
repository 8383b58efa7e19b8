// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The pipeline in application/query only ever talks to
// these interfaces, so the Gemini transport, the OS process and the terminal can
// each be replaced by a stub in tests.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Gateway, ProcessRunner)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
)

// ConfigProvider loads the configuration from persistent storage.
// Implementations typically read from ~/.ganpi/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ContextGatherer snapshots the working directory for one instruction.
// Listing failures degrade to notes inside the returned context; gathering never fails.
type ContextGatherer interface {
	Gather(ctx context.Context, instruction string) domain.Context
}

// PromptBuilder renders instruction and context into the model prompt.
// Implementations must be pure: equal inputs yield equal prompts.
type PromptBuilder interface {
	Build(instruction string, c domain.Context) string
}

// RequestFactory knows the Gemini wire format: where to send and what to send.
type RequestFactory interface {
	GenerateRequest(prompt string) (url string, payload []byte, err error)
	ModelsURL() string
}

// Gateway sends one request and returns the raw response text.
// A nil or empty payload means a body-less GET. Single attempt, no retries.
type Gateway interface {
	Send(ctx context.Context, url string, payload []byte) (string, error)
}

// ResponseParser extracts exactly one command from a raw model response.
type ResponseParser interface {
	Parse(raw string) domain.Extraction
}

// Classifier maps a command to its risk tier. Must be pure and deterministic.
type Classifier interface {
	Evaluate(command string) domain.RiskAssessment
}

// ConfirmationPrompter shows a proposed command to the human and returns their raw answer.
// Policy (what an empty answer means) belongs to the caller, not the prompter.
type ConfirmationPrompter interface {
	Ask(risk domain.RiskAssessment) (string, error)
}

// ProcessRunner runs a confirmed command to completion, stdout and stderr merged.
type ProcessRunner interface {
	Run(command string) (domain.ExecutionOutcome, error)
}

// Clipboard provides cross-platform clipboard integration for copying commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// HistoryRepository persists one record per pipeline run.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Prune(before time.Time) (int, error)
	Clear() error
	Path() string
}

// ResponseCache stores raw model responses keyed by prompt hash.
type ResponseCache interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
}

// Summarizer turns file content into a short markdown summary.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// Reporter receives pipeline milestones while a run is still in progress,
// so the CLI can show the prompt or the raw response before confirmation.
type Reporter interface {
	Prompt(prompt string)
	Response(size int, preview string)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
