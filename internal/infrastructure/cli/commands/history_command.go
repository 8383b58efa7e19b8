package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ganpi-go/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(env *Env) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect GANPI history",
	}
	historyCmd.AddCommand(
		newHistoryListCommand(env),
		newHistorySearchCommand(env),
		newHistoryStatsCommand(env),
		newHistoryClearCommand(env),
	)
	return historyCmd
}

func newHistoryListCommand(env *Env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(cmd, env, limit, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(env *Env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <keyword...>",
		Short: "Search instructions and commands for a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(cmd, env, limit, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func showHistory(cmd *cobra.Command, env *Env, limit int, query string) error {
	c, err := env.Container(cmd.Context())
	if err != nil {
		return err
	}
	records, err := c.HistoryStore.Records(limit, query)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(env.Out, msgNoHistoryRecorded)
		return nil
	}
	env.Renderer.History(records)
	return nil
}

func newHistoryStatsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate, top commands and tier distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			records, err := c.HistoryStore.Records(MaxHistoryAnalysisRecords, "")
			if err != nil {
				return fmt.Errorf("failed to retrieve history for analysis: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(env.Out, msgNoHistoryRecorded)
				return nil
			}

			stats := helpers.AnalyzeHistory(records, topCommandCount)
			out := env.Out
			fmt.Fprintf(out, "Entries analyzed: %d\nExecuted: %d\nSuccess rate: %.1f%%\n",
				stats.Total, stats.Executed, stats.SuccessRate())
			fmt.Fprintln(out, "Top commands:")
			for _, stat := range stats.TopCommands {
				fmt.Fprintf(out, "  %s (%d)\n", stat.Command, stat.Count)
			}
			fmt.Fprintln(out, "Risk distribution:")
			for _, tier := range sortedKeys(stats.ByTier) {
				fmt.Fprintf(out, "  %s: %d\n", tier, stats.ByTier[tier])
			}
			return nil
		},
	}
}

func newHistoryClearCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintf(env.Out, "History cleared (%s)\n", c.HistoryStore.Path())
			return nil
		},
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
