package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the package cache",
	}
	cmd.AddCommand(c.newCacheStatsCmd())
	cmd.AddCommand(c.newCacheCleanCmd())
	return cmd
}

func (c *CLI) newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache occupancy and hit counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			stats, err := a.CacheStats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "memory entries: %d\n", stats.MemoryEntries)
			_, _ = fmt.Fprintf(out, "disk entries:   %d\n", stats.DiskEntries)
			_, _ = fmt.Fprintf(out, "total bytes:    %d\n", stats.TotalBytes)
			_, _ = fmt.Fprintf(out, "filter warm:    %t\n", stats.FilterWarm)
			return nil
		},
	}
}

func (c *CLI) newCacheCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cache entries older than --keep-days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keepDays, err := cmd.Flags().GetInt("keep-days")
			if err != nil {
				return err
			}
			a, err := c.application(cmd)
			if err != nil {
				return err
			}
			removed, err := a.CacheClean(cmd.Context(), keepDays)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
			return nil
		},
	}
	cmd.Flags().Int("keep-days", 30, "Keep entries modified within this many days")
	return cmd
}
