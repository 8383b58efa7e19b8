package executor

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// LocalRunner runs commands through the dialect's shell on the host.
type LocalRunner struct {
	dialect dialect.Dialect
	stdin   io.Reader
}

// NewLocalRunner builds a runner. stdin may be nil for commands that read no input.
func NewLocalRunner(d dialect.Dialect, stdin io.Reader) *LocalRunner {
	return &LocalRunner{dialect: d, stdin: stdin}
}

// Run implements ports.ProcessRunner. It blocks until the command exits; there
// is no timeout and no cancellation. stdout and stderr share one buffer, so the
// output keeps the order the process wrote it in. A non-zero exit is reported
// in the outcome, not as an error; the error is for commands that could not start.
func (r *LocalRunner) Run(command string) (domain.ExecutionOutcome, error) {
	name, args := r.dialect.Invocation(command)
	c := exec.Command(name, args...)
	var output bytes.Buffer
	c.Stdout = &output
	c.Stderr = &output
	c.Stdin = r.stdin

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result := domain.NewExecutionOutcome(0, output.String())
		result.DurationMS = duration
		return result, nil
	case errors.As(err, &exitErr):
		result := domain.NewExecutionOutcome(exitErr.ExitCode(), output.String())
		result.DurationMS = duration
		return result, nil
	default:
		return domain.ExecutionOutcome{}, err
	}
}

var _ ports.ProcessRunner = (*LocalRunner)(nil)
