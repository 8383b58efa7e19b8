package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ganpi-go/internal/domain"
)

func TestGeminiRequests(t *testing.T) {
	cfg := domain.Config{
		APIKey:     "secret key",
		Model:      "gemini-test",
		Endpoint:   "http://example.test/v1beta/",
		Generation: domain.GenerationSettings{Temperature: 0.2, MaxOutputTokens: 128},
	}
	requests := NewGeminiRequests(cfg)

	url, payload, err := requests.GenerateRequest("say \"hi\"\nnow")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/v1beta/models/gemini-test:generateContent?key=secret+key", url)
	assert.JSONEq(t, `{"contents":[{"parts":[{"text":"say \"hi\"\nnow"}]}],"generationConfig":{"temperature":0.2,"maxOutputTokens":128}}`, string(payload))
	assert.Equal(t, "http://example.test/v1beta/models?key=secret+key", requests.ModelsURL())
	assert.Equal(t, "gemini-test", requests.Model())
}

func TestGeminiRequestsDefaults(t *testing.T) {
	requests := NewGeminiRequests(domain.Config{APIKey: "k"})
	_, payload, err := requests.GenerateRequest("p")
	require.NoError(t, err)

	var body generateRequest
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, domain.DefaultTemperature, body.GenerationConfig.Temperature)
	assert.Equal(t, domain.DefaultMaxOutputTokens, body.GenerationConfig.MaxOutputTokens)
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "https://h/models?key=***", RedactKey("https://h/models?key=abc123"))
	assert.Equal(t, `Post "https://h/m:generateContent?key=***&alt=json": dial tcp`, RedactKey(`Post "https://h/m:generateContent?key=abc&alt=json": dial tcp`))
	assert.Equal(t, "no key here", RedactKey("no key here"))
}

func TestHTTPGatewayPostAndGet(t *testing.T) {
	var methods []string
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		methods = append(methods, r.Method)
		bodies = append(bodies, string(data))
		if r.Method == http.MethodPost {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		}
		_, _ = io.WriteString(w, `{"ok": true}`)
	}))
	defer server.Close()

	gateway := NewHTTPGateway(time.Second, nil)

	got, err := gateway.Send(context.Background(), server.URL+"/models/x:generateContent?key=k", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, got)

	_, err = gateway.Send(context.Background(), server.URL+"/models?key=k", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodPost, http.MethodGet}, methods)
	assert.Equal(t, []string{`{"a":1}`, ""}, bodies)
}

func TestHTTPGatewayReturnsErrorBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": {"code": 400, "message": "API key not valid"}}`)
	}))
	defer server.Close()

	got, err := NewHTTPGateway(time.Second, nil).Send(context.Background(), server.URL, []byte(`{}`))
	require.NoError(t, err)
	assert.Contains(t, got, "API key not valid")
}

func TestHTTPGatewayTransportFailureRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := server.URL + "/models?key=topsecret"
	server.Close()

	_, err := NewHTTPGateway(time.Second, nil).Send(context.Background(), target, nil)
	require.Error(t, err)

	var transportErr *domain.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.MethodGet, transportErr.Op)
	assert.False(t, strings.Contains(err.Error(), "topsecret"), err.Error())
	assert.Contains(t, transportErr.URL, "key=***")
}

func TestHTTPGatewayHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "late")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPGateway(time.Second, nil).Send(ctx, server.URL, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
