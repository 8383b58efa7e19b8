package ai

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
	applog "github.com/doeshing/ganpi-go/internal/pkg/logger"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// HTTPGateway implements ports.Gateway with a single net/http round trip.
type HTTPGateway struct {
	client *http.Client
	logger ports.Logger
}

// NewHTTPGateway creates a gateway; timeout <= 0 uses the default client timeout.
func NewHTTPGateway(timeout time.Duration, logger ports.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	if logger == nil {
		logger = applog.New(false)
	}
	return &HTTPGateway{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send POSTs payload, or GETs when payload is empty. The body is returned as-is
// whatever the status code; only failures to complete the round trip are errors.
func (g *HTTPGateway) Send(ctx context.Context, target string, payload []byte) (string, error) {
	method := http.MethodGet
	var body io.Reader
	if len(payload) > 0 {
		method = http.MethodPost
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return "", g.transportError(method, target, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", g.transportError(method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", g.transportError(method, target, err)
	}

	g.logger.Debug("gateway response", map[string]interface{}{
		"method":      method,
		"url":         RedactKey(target),
		"status":      resp.StatusCode,
		"bytes":       len(data),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return string(data), nil
}

func (g *HTTPGateway) transportError(method, target string, err error) error {
	redacted := &redactedError{msg: RedactKey(err.Error()), err: err}
	g.logger.Warn("gateway request failed", map[string]interface{}{
		"method": method,
		"url":    RedactKey(target),
		"error":  redacted.Error(),
	})
	return &domain.TransportError{Op: method, URL: RedactKey(target), Err: redacted}
}

// redactedError hides the API key in the message but keeps the cause matchable.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

var _ ports.Gateway = (*HTTPGateway)(nil)
