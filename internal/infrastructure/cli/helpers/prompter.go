package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Prompter implements ports.ConfirmationPrompter on a line-oriented terminal.
// Interactive mode reads its instructions through the same reader so that
// buffered input is never lost between an instruction and its confirmation.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	renderer *Renderer
	tty      bool
}

// NewPrompter constructs a prompter; nil streams default to stdio.
func NewPrompter(in io.Reader, out io.Writer, renderer *Renderer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if renderer == nil {
		renderer = newRenderer(out, false)
	}
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: renderer,
		tty:      IsTerminal(in),
	}
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool {
	return p.tty
}

// Ask shows the proposal and returns the raw answer. A closed input yields io.EOF.
func (p *Prompter) Ask(risk domain.RiskAssessment) (string, error) {
	p.renderer.Proposal(risk)
	if risk.Tier == domain.TierDangerous {
		fmt.Fprintln(p.out, "\nWARNING: This command may be potentially dangerous!")
		return p.ReadLine("   Proceed? (y/N): ")
	}
	return p.ReadLine("\n   Execute? (Y/n): ")
}

// ReadLine prints prompt and reads one line without its terminator.
// A final line without a newline is still returned.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
