// Package summarize sends a local file to the model and returns a Markdown summary.
package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// ErrBinaryFile is returned for files that contain NUL bytes.
var ErrBinaryFile = errors.New("file looks binary; only text files can be summarized")

// Result is one summarized file.
type Result struct {
	Path      string
	Bytes     int
	Truncated bool
	Summary   string
}

// Service reads a file and delegates to a Summarizer.
type Service struct {
	Summarizer ports.Summarizer
	Logger     ports.Logger
	// MaxBytes caps how much of the file is sent; zero means domain.MaxSummaryFileBytes.
	MaxBytes int
}

// Run summarizes the file at path.
func (s *Service) Run(ctx context.Context, path string) (Result, error) {
	if s.Summarizer == nil {
		return Result{}, errors.New("summarize.Service dependencies not satisfied")
	}

	content, truncated, err := s.read(path)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Result{}, fmt.Errorf("%s is empty", path)
	}
	if s.Logger != nil {
		s.Logger.Info("summarizing file", map[string]interface{}{
			"path":      path,
			"bytes":     len(content),
			"truncated": truncated,
		})
	}

	summary, err := s.Summarizer.Summarize(ctx, content)
	if err != nil {
		return Result{}, fmt.Errorf("summarize %s: %w", path, err)
	}
	return Result{Path: path, Bytes: len(content), Truncated: truncated, Summary: summary}, nil
}

func (s *Service) read(path string) (string, bool, error) {
	limit := s.MaxBytes
	if limit <= 0 {
		limit = domain.MaxSummaryFileBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	truncated := len(data) > limit
	if truncated {
		data = data[:limit]
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", false, ErrBinaryFile
	}
	return string(data), truncated, nil
}
