package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewSummarizeCommand creates the summarize command.
func NewSummarizeCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "summarize <file>",
		Aliases: []string{"s"},
		Short:   "Summarize a text file with Gemini",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			result, err := c.SummarizeService.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			note := humanize.Bytes(uint64(result.Bytes))
			if result.Truncated {
				note += ", truncated"
			}
			fmt.Fprintf(env.Out, "Summary of %s (%s)\n\n", result.Path, note)
			env.Renderer.Markdown(result.Summary)
			return nil
		},
	}
}
