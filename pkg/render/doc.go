// Package render turns energy diagrams into files.
//
// # Overview
//
// [diagram.Diagram.Render] draws into any [diagram.Canvas]. The subpackages
// provide the canvases and the other output formats:
//
//   - [svg]: Standalone SVG documents with pluggable [styles]
//   - [raster]: PNG output drawn in-process with fogleman/gg
//   - [sink]: The computed geometry as JSON
//   - [pathway]: The levels and links as a Graphviz graph
//
// Shared building blocks live in [axes] (limits, ticks, projection) and
// [color] (matplotlib color specifications).
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	c := svg.New()
//	d.Render(c, diagram.DefaultPlotOptions())
//	pdf, err := render.ToPDF(c.Bytes())
//	png, err := render.ToPNG(c.Bytes(), 2.0)  // 2x scale
//
// [svg]: github.com/matzehuels/energydiagram/pkg/render/svg
// [styles]: github.com/matzehuels/energydiagram/pkg/render/styles
// [raster]: github.com/matzehuels/energydiagram/pkg/render/raster
// [sink]: github.com/matzehuels/energydiagram/pkg/render/sink
// [pathway]: github.com/matzehuels/energydiagram/pkg/render/pathway
// [axes]: github.com/matzehuels/energydiagram/pkg/render/axes
// [color]: github.com/matzehuels/energydiagram/pkg/render/color
package render
