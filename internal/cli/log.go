// Package cli implements the energydiagram command-line interface.
//
// The commands read diagram documents (JSON, TOML or YAML), lay them out and
// render them, print their contents, or serve the same pipeline over HTTP.
// Commands are cobra commands sharing one viper instance and one
// charmbracelet/log logger.
//
// # Commands
//
//   - render: Generate SVG, PNG, PDF, JSON or DOT output
//   - validate: Check documents without rendering
//   - inspect: Print levels, labels and links as tables
//   - browse: Explore a document's levels interactively
//   - pathway: Render the level/link graph with Graphviz
//   - serve: Run the HTTP render service
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Settings come from flags, ENERGYDIAGRAM_* environment variables and an
// optional .energydiagram.yaml in the working directory or $HOME, in that
// order of precedence.
//
// # Logging
//
// The logger starts at info. verbose (the -v flag, ENERGYDIAGRAM_VERBOSE or
// "verbose: true" in the config file) lowers it to debug before any command
// runs, which also surfaces the pipeline's per-stage debug lines. Commands
// find the logger in their context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command and logs its outcome as structured fields.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info with keyvals and the elapsed time in milliseconds,
// e.g. `INFO rendered pathway format=svg levels=4 elapsed=12ms`.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger,
// as for commands executed without the root's pre-run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
