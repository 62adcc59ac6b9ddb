package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/energydiagram/pkg/buildinfo"
	"github.com/matzehuels/energydiagram/pkg/cache"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "energydiagram"

// Log levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	config *viper.Viper
	status io.Writer // spinner output, shared with the logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: newConfig(),
		status: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Energydiagram draws reaction energy profiles",
		Long:         `Energydiagram lays out energy levels, labels and links from a diagram document and renders them as SVG, PNG, PDF, JSON or a Graphviz pathway.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(c.config); err != nil {
				return err
			}
			if c.config.GetBool(keyVerbose) {
				c.SetLogLevel(LogDebug)
			}
			if err := validateBackend(c.config.GetString(keyCacheBackend)); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolP(keyVerbose, "v", false, "enable debug logging (also ENERGYDIAGRAM_VERBOSE or verbose: true)")
	flags.String(keyConfig, "", "config file (default is ./.energydiagram.yaml or $HOME/.energydiagram.yaml)")
	flags.String(keyCacheBackend, backendFile, "artifact cache backend: file, redis, none")
	flags.String(keyCacheDir, "", "cache directory for the file backend")
	flags.String(keyRedisAddr, defaultRedisAddr, "redis address for the redis backend")
	_ = c.config.BindPFlags(flags)
	registerCompletions(root, map[string][]string{
		keyCacheBackend: {backendFile, backendRedis, backendNone},
	})

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.pathwayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend := c.config.GetString(keyCacheBackend)
	if noCache {
		backend = backendNone
	}
	store, err := c.newCache(ctx, backend)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache opens the configured backend. An unreachable Redis degrades to
// no caching with a warning.
func (c *CLI) newCache(ctx context.Context, backend string) (cache.Cache, error) {
	switch backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, redisOptions(c.config))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.config.GetString(keyRedisAddr), "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	fc, err := cache.NewFileCache(c.config.GetString(keyCacheDir))
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
