package ai

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GeminiRequests builds generateContent and models-listing requests for the REST API.
type GeminiRequests struct {
	endpoint   string
	model      string
	apiKey     string
	generation domain.GenerationSettings
}

// NewGeminiRequests reads endpoint, model, key and generation settings from cfg.
func NewGeminiRequests(cfg domain.Config) *GeminiRequests {
	return &GeminiRequests{
		endpoint:   cfg.GetEndpoint(),
		model:      cfg.GetModel(),
		apiKey:     cfg.APIKey,
		generation: cfg.GetGeneration(),
	}
}

// GenerateRequest implements ports.RequestFactory.
func (g *GeminiRequests) GenerateRequest(prompt string) (string, []byte, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     g.generation.Temperature,
			MaxOutputTokens: g.generation.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("encode request: %w", err)
	}
	target := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.endpoint, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	return target, payload, nil
}

// ModelsURL implements ports.RequestFactory.
func (g *GeminiRequests) ModelsURL() string {
	return fmt.Sprintf("%s/models?key=%s", g.endpoint, url.QueryEscape(g.apiKey))
}

// Model returns the configured model name.
func (g *GeminiRequests) Model() string {
	return g.model
}

var keyPattern = regexp.MustCompile(`([?&]key=)[^&\s"']*`)

// RedactKey hides the value of any key= query parameter in s.
func RedactKey(s string) string {
	return keyPattern.ReplaceAllString(s, "${1}***")
}

var _ ports.RequestFactory = (*GeminiRequests)(nil)
