package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/observability"
)

// Build validates doc and constructs its diagram and plot options.
func Build(ctx context.Context, doc *docio.Document) (*diagram.Diagram, diagram.PlotOptions, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx)
	start := time.Now()

	d, plot, err := docio.Build(doc)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, 0, time.Since(start), err)
		return nil, diagram.PlotOptions{}, err
	}
	s := d.Stats()
	hooks.OnBuildComplete(ctx, s.Levels, s.Labels, s.Links, time.Since(start), nil)
	return d, plot, nil
}

// Layout computes the diagram geometry.
func Layout(ctx context.Context, d *diagram.Diagram) (diagram.Layout, error) {
	hooks := observability.Pipeline()
	n := d.Stats().Levels
	hooks.OnLayoutStart(ctx, n)
	start := time.Now()

	l, err := d.Layout()
	hooks.OnLayoutComplete(ctx, n, time.Since(start), err)
	return l, err
}
