package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(env *Env) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the response cache",
	}
	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cached responses",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := env.Container(cmd.Context())
				if err != nil {
					return err
				}
				entries, err := c.CacheStore.Entries()
				if err != nil {
					return fmt.Errorf("failed to retrieve cache entries: %w", err)
				}
				if !c.Config.Cache.Enabled {
					fmt.Fprintln(env.Out, "Cache is disabled (set cache.enabled to true).")
				}
				if len(entries) == 0 {
					fmt.Fprintln(env.Out, msgNoCachedResponses)
					return nil
				}
				env.Renderer.Cache(entries)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached response",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := env.Container(cmd.Context())
				if err != nil {
					return err
				}
				if err := c.CacheStore.Clear(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
				fmt.Fprintf(env.Out, "Cache cleared (%s)\n", c.CacheStore.Dir())
				return nil
			},
		},
	)
	return cacheCmd
}
