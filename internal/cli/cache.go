package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artwork/pkg/cache"
)

// cacheCommand groups the file cache subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local render cache",
	}
	cmd.AddCommand(
		c.cacheSweepCommand("clear", "Remove every cached render", (*cache.FileCache).Clear),
		c.cacheSweepCommand("prune", "Remove expired cached renders", (*cache.FileCache).Prune),
		c.cachePathCommand(),
	)
	return cmd
}

// cacheSweepCommand builds a subcommand that removes file cache entries
// with sweep.
func (c *CLI) cacheSweepCommand(use, short string, sweep func(*cache.FileCache) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.GetString(cfgCacheBackend) == "redis" {
				printWarning("Redis entries expire on their own after %s", cache.TTLArtifact)
				printDetail("Only the file cache is swept")
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := sweep(fc)
			if err != nil {
				return err
			}
			printSuccess("Removed %d cached %s", n, plural(n, "entry", "entries"))
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand prints the cache directory.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
