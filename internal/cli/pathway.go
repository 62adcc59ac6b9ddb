package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

var pathwayFormats = map[string]bool{
	pipeline.FormatSVG: true,
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
	pipeline.FormatDOT: true,
}

// pathwayOpts holds the command-line flags for the pathway command.
type pathwayOpts struct {
	output   string
	format   string
	detailed bool    // show energies next to the level text
	unit     string  // energy unit suffix
	scale    float64 // PNG resolution multiplier
}

// pathwayCommand creates the pathway command, which draws levels as nodes
// and links as edges with Graphviz instead of placing them on an energy axis.
func (c *CLI) pathwayCommand() *cobra.Command {
	opts := pathwayOpts{format: pipeline.FormatSVG, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "pathway [file]",
		Short: "Render the level/link graph with Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !pathwayFormats[opts.format] {
				return fmt.Errorf("invalid pathway format: %s (must be 'svg', 'png', 'pdf' or 'dot')", opts.format)
			}
			return runPathway(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.pathway.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, pdf, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show level energies")
	cmd.Flags().StringVar(&opts.unit, "unit", "", "energy unit shown with --detailed (e.g. kcal/mol)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	registerCompletions(cmd, map[string][]string{
		"format": {pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatDOT},
	})

	return cmd
}

func runPathway(ctx context.Context, input string, opts pathwayOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	doc, err := docio.ImportFile(input)
	if err != nil {
		return err
	}
	d, _, err := pipeline.Build(ctx, doc)
	if err != nil {
		return err
	}
	data, err := pipeline.RenderPathway(ctx, d, pipeline.Options{
		Detailed: opts.detailed,
		Unit:     opts.unit,
		Scale:    opts.scale,
	}, opts.format)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = outputPaths(input, "", []string{"pathway." + opts.format})["pathway."+opts.format]
	}
	if err := writeArtifact(out, data); err != nil {
		return err
	}
	s := d.Stats()
	prog.done("rendered pathway", "format", opts.format, "levels", s.Levels, "links", s.Links)
	printFile(out)
	return nil
}
