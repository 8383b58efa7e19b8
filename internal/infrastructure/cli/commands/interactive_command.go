package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ganpi-go/internal/domain"
)

const welcomeBanner = `
  GANPI interactive mode
  Tell me what you want to do in plain English and I'll figure out the command.
  Type 'quit' to exit.
`

// NewInteractiveCommand creates the interactive loop command.
func NewInteractiveCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"repl"},
		Short:   "Read instructions until quit",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInteractive(cmd.Context(), env)
		},
	}
}

// RunInteractive loops over instructions. Each one finishes, including its
// confirmation and execution, before the next is read. Per-instruction
// transport failures are reported and the loop continues.
func RunInteractive(ctx context.Context, env *Env) error {
	c, err := env.Ready(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(env.Out, welcomeBanner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := env.Prompter.ReadLine("\nWhat would you like me to do? (or 'quit' to exit): ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(env.Out)
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Fprintln(env.Out, "Goodbye!")
			return nil
		case "":
			continue
		}

		if _, err := process(ctx, env, c, input); err != nil {
			var transportErr *domain.TransportError
			if !errors.As(err, &transportErr) {
				return err
			}
			fmt.Fprintf(env.Out, "Request failed: %v\n", err)
		}
	}
}
