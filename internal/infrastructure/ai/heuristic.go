package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
	"github.com/doeshing/ganpi-go/internal/ports"
)

const userRequestMarker = "User request: "

// HeuristicGateway answers locally with a keyword guess, shaped like a
// generateContent response so parsing and classification run unchanged.
type HeuristicGateway struct {
	dialect dialect.Dialect
}

// NewHeuristicGateway is the offline fallback used when no API key is configured.
func NewHeuristicGateway(d dialect.Dialect) *HeuristicGateway {
	return &HeuristicGateway{dialect: d}
}

// Send implements ports.Gateway. A body-less request is treated as the models listing.
func (g *HeuristicGateway) Send(_ context.Context, _ string, payload []byte) (string, error) {
	if len(payload) == 0 {
		return `{"models": [{"name": "models/offline-heuristic"}]}`, nil
	}

	var req generateRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return "", err
	}
	var prompt string
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		prompt = req.Contents[0].Parts[0].Text
	}

	text := dialect.Fence(g.dialect) + "\n" + g.guess(requestFromPrompt(prompt)) + "\n```"
	return geminiResponse(text)
}

func (g *HeuristicGateway) guess(request string) string {
	request = strings.ToLower(request)
	windows := g.dialect.Name() == domain.DialectWindows
	switch {
	case strings.Contains(request, "git status"):
		return "git status"
	case strings.Contains(request, "docker"):
		return "docker ps"
	case strings.Contains(request, "pdf"):
		if windows {
			return "dir /s /b *.pdf"
		}
		return "find . -name '*.pdf'"
	case strings.Contains(request, "disk") || strings.Contains(request, "space"):
		if windows {
			return "wmic logicaldisk get size,freespace,caption"
		}
		return "df -h"
	case strings.Contains(request, "list") || strings.Contains(request, "file"):
		if windows {
			return "dir"
		}
		return "ls -la"
	case strings.Contains(request, "where am i") || strings.Contains(request, "current directory"):
		if windows {
			return "cd"
		}
		return "pwd"
	default:
		return `echo "No AI provider configured"`
	}
}

// requestFromPrompt recovers the instruction line from a rendered prompt.
func requestFromPrompt(prompt string) string {
	idx := strings.LastIndex(prompt, userRequestMarker)
	if idx < 0 {
		return prompt
	}
	rest := prompt[idx+len(userRequestMarker):]
	if end := strings.Index(rest, "\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

type geminiEnvelope struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content struct {
		Parts []requestPart `json:"parts"`
		Role  string        `json:"role"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

func geminiResponse(text string) (string, error) {
	var candidate geminiCandidate
	candidate.Content.Parts = []requestPart{{Text: text}}
	candidate.Content.Role = "model"
	candidate.FinishReason = "STOP"
	data, err := json.Marshal(geminiEnvelope{Candidates: []geminiCandidate{candidate}})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ ports.Gateway = (*HeuristicGateway)(nil)
