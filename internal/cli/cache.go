package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/energydiagram/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears the
// configured backend.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch backend := c.config.GetString(keyCacheBackend); backend {
			case backendNone:
				printInfo("Caching is disabled")
				return nil
			case backendRedis:
				rc, err := cache.NewRedisCache(ctx, redisOptions(c.config))
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				defer rc.Close()
				if err := rc.Clear(ctx); err != nil {
					return err
				}
				printSuccess("Cleared redis cache")
				printDetail("Address: %s", c.config.GetString(keyRedisAddr))
				return nil
			}

			fc, err := cache.NewFileCache(c.config.GetString(keyCacheDir))
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, _, err := fc.Stats()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := fc.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand for the file
// backend.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(c.config.GetString(keyCacheDir))
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, size, err := fc.Stats()
			if err != nil {
				return err
			}
			printKeyValue("Directory", fc.Dir())
			printKeyValue("Entries", fmt.Sprint(count))
			printKeyValue("Size", formatBytes(size))
			return nil
		},
	}
}

// cacheDir returns the configured cache directory, defaulting to the XDG
// location (~/.cache/energydiagram/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config.GetString(keyCacheDir); dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
