package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/ganpi-go/internal/application/confirm"
	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Resolver turns a classified proposal into an outcome. *confirm.Confirmer implements it.
type Resolver interface {
	Resolve(ctx context.Context, p confirm.Proposal) (domain.Outcome, error)
}

// Service orchestrates one instruction end-to-end:
// gather, prompt, send, parse, classify, confirm.
type Service struct {
	Gatherer   ports.ContextGatherer
	Prompts    ports.PromptBuilder
	Requests   ports.RequestFactory
	Gateway    ports.Gateway
	Parser     ports.ResponseParser
	Classifier ports.Classifier
	Confirmer  Resolver
	Clipboard  ports.Clipboard
	History    ports.HistoryRepository
	Cache      ports.ResponseCache
	Reporter   ports.Reporter
	Logger     ports.Logger

	Model   string
	Dialect domain.DialectName
	// KeyConfigured is false when no API key is set; Validate then fails fast.
	KeyConfigured bool

	Now      func() time.Time
	NewRunID func() string
}

// Run processes a single natural-language instruction.
//
// Parse failures and forbidden commands are outcomes, not errors. A transport
// failure returns a *domain.TransportError for this instruction only.
func (s *Service) Run(req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.Gatherer == nil || s.Prompts == nil || s.Requests == nil || s.Gateway == nil ||
		s.Parser == nil || s.Classifier == nil || s.Confirmer == nil || s.Logger == nil {
		return domain.QueryResponse{}, errors.New("query.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	resp := domain.QueryResponse{
		RunID:       s.runID(),
		Instruction: req.Instruction,
		Dialect:     s.Dialect,
	}
	fields := map[string]interface{}{"run_id": resp.RunID, "dialect": string(s.Dialect)}

	snapshot := s.Gatherer.Gather(ctx, req.Instruction)
	resp.Prompt = s.Prompts.Build(req.Instruction, snapshot)
	if req.ShowPrompt && s.Reporter != nil {
		s.Reporter.Prompt(resp.Prompt)
	}

	raw, fromCache, err := s.fetch(ctx, resp.Prompt)
	if err != nil {
		resp.Outcome = domain.Outcome{Kind: domain.OutcomeTransportFailed}
		s.Logger.Error("model request failed", err, fields)
		return resp, err
	}
	resp.RawResponse = raw
	resp.FromCache = fromCache
	if req.Verbose && s.Reporter != nil {
		s.Reporter.Response(len(raw), preview(raw))
	}
	s.Logger.Debug("model response", merge(fields, map[string]interface{}{
		"bytes":      len(raw),
		"from_cache": fromCache,
	}))

	extraction := s.Parser.Parse(raw)
	if !extraction.OK() {
		resp.ParseError = extraction.Reason
		resp.Outcome = domain.Outcome{Kind: domain.OutcomeParseFailed}
		s.Logger.Warn("no command extracted", merge(fields, map[string]interface{}{
			"reason": string(extraction.Reason),
		}))
		return resp, nil
	}
	resp.Command = extraction.Command
	resp.Verbatim = extraction.Verbatim
	if !fromCache {
		s.store(resp.Prompt, raw)
	}

	if req.CopyToClipboard && s.Clipboard != nil && s.Clipboard.Enabled() {
		if err := s.Clipboard.Copy(resp.Command); err != nil {
			s.Logger.Warn("clipboard copy failed", merge(fields, map[string]interface{}{"error": err.Error()}))
		}
	}

	resp.Risk = s.Classifier.Evaluate(resp.Command)
	s.Logger.Info("command classified", merge(fields, map[string]interface{}{
		"command": resp.Command,
		"tier":    resp.Risk.Tier.String(),
		"matched": strings.Join(resp.Risk.Matched, ","),
	}))

	outcome, err := s.Confirmer.Resolve(ctx, confirm.Proposal{
		Command:  resp.Command,
		Risk:     resp.Risk,
		Verbatim: resp.Verbatim,
	})
	resp.Outcome = outcome
	s.record(resp)
	return resp, err
}

// Validate checks the API key against the models listing. The key is valid iff
// the raw response mentions "models".
func (s *Service) Validate(ctx context.Context) error {
	if !s.KeyConfigured {
		return domain.ErrMissingAPIKey
	}
	if s.Gateway == nil || s.Requests == nil {
		return errors.New("query.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := s.Gateway.Send(ctx, s.Requests.ModelsURL(), nil)
	if err != nil {
		return asTransportError(err)
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty response from the models endpoint, check your internet connection", domain.ErrInvalidAPIKey)
	}
	if !strings.Contains(raw, `"models"`) {
		return domain.ErrInvalidAPIKey
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, prompt string) (string, bool, error) {
	if s.Cache != nil {
		entry, ok, err := s.Cache.Get(CacheKey(s.Model, prompt))
		if err != nil {
			s.Logger.Warn("cache lookup failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			return entry.Response, true, nil
		}
	}

	url, payload, err := s.Requests.GenerateRequest(prompt)
	if err != nil {
		return "", false, err
	}
	raw, err := s.Gateway.Send(ctx, url, payload)
	if err != nil {
		return "", false, asTransportError(err)
	}
	return raw, false, nil
}

func (s *Service) store(prompt, raw string) {
	if s.Cache == nil {
		return
	}
	entry := domain.CacheEntry{
		Key:       CacheKey(s.Model, prompt),
		Model:     s.Model,
		Response:  raw,
		CreatedAt: s.now(),
	}
	if err := s.Cache.Set(entry); err != nil {
		s.Logger.Warn("cache store failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) record(resp domain.QueryResponse) {
	if s.History == nil {
		return
	}
	rec := domain.HistoryRecord{
		Timestamp:   s.now(),
		RunID:       resp.RunID,
		Instruction: resp.Instruction,
		Command:     resp.Command,
		Model:       s.Model,
		Dialect:     resp.Dialect,
		Tier:        resp.Risk.Tier.String(),
		Outcome:     resp.Outcome.Kind,
	}
	if run := resp.Outcome.Execution; run != nil {
		rec.Executed = true
		rec.Success = run.Success
		rec.ExitCode = run.ExitStatus
		rec.ExecutionTimeMS = run.DurationMS
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) runID() string {
	if s.NewRunID != nil {
		return s.NewRunID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CacheKey is the hex SHA-256 of model and prompt.
func CacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\n" + prompt))
	return hex.EncodeToString(sum[:])
}

func asTransportError(err error) error {
	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return err
	}
	return &domain.TransportError{Op: "send", Err: err}
}

func preview(raw string) string {
	if len(raw) <= domain.ResponsePreviewBytes {
		return raw
	}
	return raw[:domain.ResponsePreviewBytes] + "..."
}

func merge(base, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
