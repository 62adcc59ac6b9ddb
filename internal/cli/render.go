package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path (multiple)
	formats    []string // svg, png, pdf, json, dot
	style      string   // simple or handdrawn
	seed       uint64   // jitter seed for the hand-drawn style
	scale      float64  // PNG resolution multiplier
	width      float64  // figure width in inches, 0 keeps the document's
	height     float64  // figure height in inches, 0 keeps the document's
	rasterizer string   // native or rsvg
	noCache    bool     // disable the artifact cache
	refresh    bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		scale:      pipeline.DefaultScale,
		rasterizer: pipeline.RasterizerNative,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram document to SVG, PNG, PDF, JSON or DOT",
		Long: `Render lays out a diagram document (.json, .toml, .yaml) and writes one
file per requested format next to the input, or to --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.style = c.config.GetString(keyStyle)
			opts.seed = c.config.GetUint64(keySeed)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().String(keyStyle, pipeline.DefaultStyle, "visual style: simple (default), handdrawn")
	cmd.Flags().Uint64(keySeed, pipeline.DefaultSeed, "random seed for the hand-drawn style")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "figure width in inches (overrides the document)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "figure height in inches (overrides the document)")
	cmd.Flags().StringVar(&opts.rasterizer, "rasterizer", opts.rasterizer, "PNG rasterizer: native (default), rsvg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	_ = c.config.BindPFlag(keyStyle, cmd.Flags().Lookup(keyStyle))
	_ = c.config.BindPFlag(keySeed, cmd.Flags().Lookup(keySeed))
	registerCompletions(cmd, map[string][]string{
		"format":     {pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT},
		keyStyle:     {pipeline.StyleSimple, pipeline.StyleHanddrawn},
		"rasterizer": {pipeline.RasterizerNative, pipeline.RasterizerRSVG},
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := docio.ImportFile(input)
	if err != nil {
		return err
	}
	applyLayoutConfig(c.config, doc)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(ctx, c.status, renderMessage(displayName(doc, input), doc, opts.formats))
	spin.start()
	result, err := runner.Execute(ctx, doc, pipeline.Options{
		Formats:    opts.formats,
		Style:      opts.style,
		Seed:       opts.seed,
		Scale:      opts.scale,
		Width:      opts.width,
		Height:     opts.height,
		Rasterizer: opts.rasterizer,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	spin.stop()
	if err != nil {
		return err
	}

	paths := outputPaths(input, opts.output, opts.formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess("Rendered %s", displayName(doc, input))
	printStats(result.Stats, result.CacheInfo, len(formats))
	for _, f := range formats {
		if err := writeArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
		printArtifact(f, paths[f], len(result.Artifacts[f]))
	}
	return nil
}

// outputPaths maps each format to its destination. A single format with an
// explicit output writes exactly there; otherwise output (or the input
// without its extension) is a base path and the format is the extension.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayName(doc *docio.Document, input string) string {
	if doc.Title != "" {
		return doc.Title
	}
	return filepath.Base(input)
}
