package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ganpi-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	// Verbose comes from GANPI_DEBUG; --verbose also turns it on.
	Verbose bool
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
}

const usageExamples = `  ganpi "Find all PDF files in Downloads and zip them"
  ganpi "Show me the top 10 processes using the most RAM"
  ganpi -c "Delete all .DS_Store files in this folder"
  ganpi -i
  ganpi summarize notes.txt`

// NewRootCmd wires the cobra root command. The returned env must be closed
// once the command has run.
func NewRootCmd(opts Options) (*cobra.Command, *commands.Env) {
	env := commands.NewEnv(opts.In, opts.Out)
	env.Flags.Verbose = opts.Verbose
	var interactive bool

	root := &cobra.Command{
		Use:     "ganpi [instruction...]",
		Short:   "GANPI - Gemini-Assisted Natural Processing Interface",
		Long:    "GANPI turns plain-English instructions into shell commands, classifies their risk and asks before running them.",
		Example: usageExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return commands.RunInteractive(cmd.Context(), env)
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return commands.RunInstruction(cmd.Context(), env, strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}
	if opts.In != nil {
		root.SetIn(opts.In)
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&env.Flags.Verbose, "verbose", "o", opts.Verbose, "Log debug output and preview raw API responses")
	flags.BoolVarP(&env.Flags.ShowContext, "context", "c", false, "Print the prompt sent to the API")
	flags.BoolVar(&env.Flags.Copy, "copy", false, "Copy the generated command to the clipboard")
	flags.BoolVar(&env.Flags.Offline, "offline", false, "Use the built-in keyword heuristic instead of Gemini")
	flags.BoolVar(&env.Flags.SkipValidate, "skip-validate", false, "Skip the API key check at start-up")
	flags.StringVar(&env.Flags.Dialect, "dialect", "", "Command dialect: auto, posix or windows (default from config)")
	flags.StringVar(&env.Flags.ConfigPath, "config", "", "Config file path (default $GANPI_CONFIG or ~/.ganpi/config.yaml)")
	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start interactive mode")

	root.AddCommand(
		commands.NewAskCommand(env),
		commands.NewInteractiveCommand(env),
		commands.NewSummarizeCommand(env),
		commands.NewDoctorCommand(env),
		commands.NewHistoryCommand(env),
		commands.NewCacheCommand(env),
		commands.NewConfigCommand(env),
		commands.NewVersionCommand(env),
	)
	return root, env
}
