package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
	"github.com/matzehuels/energydiagram/pkg/observability"
	"github.com/matzehuels/energydiagram/pkg/render"
	"github.com/matzehuels/energydiagram/pkg/render/pathway"
	"github.com/matzehuels/energydiagram/pkg/render/raster"
	"github.com/matzehuels/energydiagram/pkg/render/sink"
	"github.com/matzehuels/energydiagram/pkg/render/styles"
	"github.com/matzehuels/energydiagram/pkg/render/styles/handdrawn"
	"github.com/matzehuels/energydiagram/pkg/render/svg"
)

// Render generates output artifacts in the requested formats. l must be the
// layout of d; it is passed in so callers that already computed it do not
// pay twice.
func Render(ctx context.Context, d *diagram.Diagram, plot diagram.PlotOptions, l diagram.Layout, opts Options) (map[string][]byte, error) {
	r := renderer{d: d, plot: opts.applyFigureSize(plot), layout: l, opts: opts}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.format(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderPathway draws the level/link graph with Graphviz instead of the
// energy axis. format is svg, png or pdf.
func RenderPathway(ctx context.Context, d *diagram.Diagram, opts Options, format string) ([]byte, error) {
	dot, err := pathway.ToDOT(d, pathway.Options{Detailed: opts.Detailed, Unit: opts.Unit})
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return pathway.RenderSVG(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return pathway.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		return pathway.RenderPDF(ctx, dot)
	case FormatDOT:
		return []byte(dot), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported pathway format: %s", format)
}

type renderer struct {
	d      *diagram.Diagram
	plot   diagram.PlotOptions
	layout diagram.Layout
	opts   Options
	svg    []byte
}

func (r *renderer) format(ctx context.Context, format string) (data []byte, err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err) }()

	switch format {
	case FormatSVG:
		return r.svgBytes()
	case FormatPNG:
		if err := checkPNGSize(r.plot, r.opts.Scale); err != nil {
			return nil, err
		}
		if r.opts.Rasterizer == RasterizerRSVG {
			s, err := r.svgBytes()
			if err != nil {
				return nil, err
			}
			return render.ToPNG(s, r.opts.Scale)
		}
		c := raster.New(raster.WithScale(r.opts.Scale))
		if _, err := r.d.Render(c, r.plot); err != nil {
			return nil, err
		}
		return c.PNG()
	case FormatPDF:
		s, err := r.svgBytes()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(s)
	case FormatJSON:
		return sink.RenderJSON(r.layout, r.plot.XTickLabels,
			sink.WithJSONTitle(r.plot.Title),
			sink.WithJSONConfig(r.d.Config()),
			sink.WithJSONStyle(r.opts.Style))
	case FormatDOT:
		dot, err := pathway.ToDOT(r.d, pathway.Options{Detailed: r.opts.Detailed, Unit: r.opts.Unit})
		return []byte(dot), err
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// svgBytes renders the SVG once per run; PDF and rsvg PNG reuse it.
func (r *renderer) svgBytes() ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	c := svg.New(svg.WithStyle(styleFor(r.opts)))
	if _, err := r.d.Render(c, r.plot); err != nil {
		return nil, err
	}
	r.svg = c.Bytes()
	return r.svg, nil
}

func styleFor(opts Options) styles.Style {
	if opts.Style == StyleHanddrawn {
		return handdrawn.New(opts.Seed)
	}
	return styles.Simple{}
}
