package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ganpi-go/internal/app"
	"github.com/doeshing/ganpi-go/internal/domain"
)

// NewAskCommand creates the ask command, also run by the bare root command.
func NewAskCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <instruction...>",
		Short: "Turn one natural-language instruction into a command and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInstruction(cmd.Context(), env, strings.Join(args, " "))
		},
	}
}

// RunInstruction runs the pipeline once. A cancelled command is not an error;
// a blocked, unparseable or failed one is returned after it has been rendered.
func RunInstruction(ctx context.Context, env *Env, instruction string) error {
	c, err := env.Ready(ctx)
	if err != nil {
		return err
	}
	resp, err := process(ctx, env, c, instruction)
	if err != nil {
		return err
	}
	if err := resp.Outcome.Err(); err != nil && !errors.Is(err, domain.ErrUserCancelled) {
		return err
	}
	return nil
}

func process(ctx context.Context, env *Env, c *app.Container, instruction string) (domain.QueryResponse, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return domain.QueryResponse{}, fmt.Errorf("empty instruction")
	}
	env.Renderer.Processing(instruction)
	resp, err := c.QueryService.Run(domain.QueryRequest{
		Context:         ctx,
		Instruction:     instruction,
		CopyToClipboard: env.Flags.Copy,
		ShowPrompt:      env.Flags.ShowContext,
		Verbose:         env.Flags.Verbose,
	})
	if err != nil {
		return resp, err
	}
	env.Renderer.Result(resp)
	return resp, nil
}
