package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/energydiagram/internal/server"
	"github.com/matzehuels/energydiagram/pkg/cache"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP render
// service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve exposes the render pipeline over HTTP:

  POST /v1/render, /v1/layout, /v1/validate, /v1/pathway
  GET  /healthz, /version, /metrics

Rendered artifacts are cached in the configured backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newCache(ctx, c.config.GetString(keyCacheBackend))
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, server.KeyPrefix), c.Logger)
			defer runner.Close()

			metrics := server.NewMetrics()
			metrics.Install()

			srv := server.New(server.Config{
				Addr:           c.config.GetString(keyAddr),
				Runner:         runner,
				Logger:         c.Logger,
				Metrics:        metrics,
				RequestTimeout: timeout,
			})
			printInfo("Serving on %s", StyleHighlight.Render("http://"+srv.Addr()))
			printDetail("cache: %s", c.config.GetString(keyCacheBackend))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String(keyAddr, defaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")
	_ = c.config.BindPFlag(keyAddr, cmd.Flags().Lookup(keyAddr))

	return cmd
}
