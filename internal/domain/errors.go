package domain

import (
	"errors"
	"fmt"
)

// ParseError tags why no command could be extracted from a model response.
type ParseError string

const (
	ParseNoCandidates ParseError = "no_candidates"
	ParseNoContent    ParseError = "no_content"
	ParseNoParts      ParseError = "no_parts"
	ParseNoText       ParseError = "no_text"
	ParseMalformed    ParseError = "malformed"
	// ParseEmpty means the response text held no usable command.
	ParseEmpty ParseError = "empty"
)

func (e ParseError) Error() string {
	switch e {
	case ParseNoCandidates:
		return "no candidates found in API response"
	case ParseNoContent:
		return "no content found in API response"
	case ParseNoParts:
		return "no parts found in API response"
	case ParseNoText:
		return "no text found in API response"
	case ParseMalformed:
		return "malformed text in API response"
	case ParseEmpty:
		return "API response contained no command"
	default:
		return "unparseable API response"
	}
}

var (
	// ErrUserCancelled is reported when the human declines a proposed command.
	ErrUserCancelled = errors.New("command cancelled by user")
	// ErrClassifierVoid is reported when a command matched a forbidden pattern.
	ErrClassifierVoid = errors.New("command matches a forbidden pattern and was not executed")
	// ErrNoSafeCommand is what callers see when parsing or classification produced nothing runnable.
	ErrNoSafeCommand = errors.New("could not produce a safe command to run")
	// ErrMissingAPIKey is returned when no Gemini API key is configured.
	ErrMissingAPIKey = errors.New("no Gemini API key configured")
	// ErrInvalidAPIKey is returned when the models listing does not answer with a model list.
	ErrInvalidAPIKey = errors.New("Gemini API key rejected")
)

// TransportError wraps a failed gateway request.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExecutionFailedError reports a command that ran and exited non-zero.
type ExecutionFailedError struct {
	ExitStatus int
	Output     string
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.ExitStatus)
}
