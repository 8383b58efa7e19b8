package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

const summaryInstruction = `Summarize the following file for a developer who has not seen it.
Respond in Markdown with a one-line overview, then a short bullet list of the key points.
Do not repeat the file verbatim.

File content:
`

// GenAISummarizer implements ports.Summarizer with the Gemini Go SDK.
type GenAISummarizer struct {
	apiKey     string
	model      string
	endpoint   string
	generation domain.GenerationSettings
}

// NewGenAISummarizer reads key, model, endpoint and summary generation settings from cfg.
func NewGenAISummarizer(cfg domain.Config) *GenAISummarizer {
	return &GenAISummarizer{
		apiKey:     cfg.APIKey,
		model:      cfg.GetModel(),
		endpoint:   cfg.GetEndpoint(),
		generation: cfg.GetSummaryGeneration(),
	}
}

// Summarize implements ports.Summarizer.
func (s *GenAISummarizer) Summarize(ctx context.Context, content string) (string, error) {
	if s.apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      s.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions(s.endpoint),
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(summaryInstruction+content), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(s.generation.Temperature)),
		MaxOutputTokens: int32(s.generation.MaxOutputTokens),
	})
	if err != nil {
		return "", &domain.TransportError{Op: "generateContent", URL: s.model, Err: err}
	}

	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", errors.New("model returned an empty summary")
	}
	return summary, nil
}

// httpOptions splits an endpoint such as https://host/v1beta into the SDK's
// base URL and API version.
func httpOptions(endpoint string) genai.HTTPOptions {
	endpoint = strings.TrimRight(endpoint, "/")
	idx := strings.LastIndex(endpoint, "/")
	if idx < 0 {
		return genai.HTTPOptions{BaseURL: endpoint + "/"}
	}
	version := endpoint[idx+1:]
	if !strings.HasPrefix(version, "v1") {
		return genai.HTTPOptions{BaseURL: endpoint + "/"}
	}
	return genai.HTTPOptions{BaseURL: endpoint[:idx+1], APIVersion: version}
}

var _ ports.Summarizer = (*GenAISummarizer)(nil)
