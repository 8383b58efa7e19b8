// Package confirm gates execution of a classified command behind a human answer.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Proposal is a classified command waiting for sign-off.
type Proposal struct {
	Command string
	Risk    domain.RiskAssessment
	// Verbatim proposals are whole response texts; they never run on an empty answer.
	Verbatim bool
}

// Confirmer walks Proposed -> AwaitingConfirmation -> {Confirmed -> Executed, Cancelled}.
type Confirmer struct {
	Prompter ports.ConfirmationPrompter
	Runner   ports.ProcessRunner
	Logger   ports.Logger
}

// Accepts applies the default-answer policy: Safe proceeds on empty, y or yes;
// Dangerous needs y or yes; Forbidden never proceeds.
func Accepts(tier domain.RiskTier, answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	switch tier {
	case domain.TierSafe:
		return answer == "" || answer == "y" || answer == "yes"
	case domain.TierDangerous:
		return answer == "y" || answer == "yes"
	default:
		return false
	}
}

// Resolve runs the state machine for one proposal. Forbidden proposals end as
// ClassifierVoid without prompting. An error is returned only when the prompter
// or the runner itself failed; cancellation is an outcome, not an error.
func (c *Confirmer) Resolve(ctx context.Context, p Proposal) (domain.Outcome, error) {
	if c.Prompter == nil || c.Runner == nil {
		return domain.Outcome{}, errors.New("confirm.Confirmer dependencies not satisfied")
	}

	outcome := domain.Outcome{State: domain.StateProposed, Trail: []domain.ConfirmationState{domain.StateProposed}}
	if p.Risk.Tier == domain.TierForbidden {
		outcome.Kind = domain.OutcomeClassifierVoid
		c.log("command voided by classifier", p, nil)
		return outcome, nil
	}

	outcome.Advance(domain.StateAwaitingConfirmation)
	// The prompter sees the tier the answer is judged against.
	asked := p.Risk
	if p.Verbatim && asked.Tier == domain.TierSafe {
		asked.Tier = domain.TierDangerous
	}
	answer, err := c.Prompter.Ask(asked)
	if err != nil {
		outcome.Cancel()
		if errors.Is(err, io.EOF) {
			c.log("confirmation input closed", p, nil)
			return outcome, nil
		}
		return outcome, fmt.Errorf("read confirmation: %w", err)
	}
	outcome.Answer = answer

	if !Accepts(asked.Tier, answer) {
		outcome.Cancel()
		c.log("command cancelled", p, nil)
		return outcome, nil
	}

	outcome.Advance(domain.StateConfirmed)
	if err := ctx.Err(); err != nil {
		outcome.Cancel()
		return outcome, err
	}

	result, err := c.Runner.Run(p.Command)
	if err != nil {
		return outcome, fmt.Errorf("run command: %w", err)
	}
	outcome.Advance(domain.StateExecuted)
	outcome.Kind = domain.OutcomeExecuted
	outcome.Execution = &result
	c.log("command executed", p, map[string]interface{}{
		"exit_status": result.ExitStatus,
		"duration_ms": result.DurationMS,
	})
	return outcome, nil
}

func (c *Confirmer) log(msg string, p Proposal, extra map[string]interface{}) {
	if c.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"command": p.Command,
		"tier":    p.Risk.Tier.String(),
	}
	for k, v := range extra {
		fields[k] = v
	}
	c.Logger.Info(msg, fields)
}
