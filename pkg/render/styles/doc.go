// Package styles defines visual styles for diagram rendering.
//
// # Overview
//
// A style controls how the strokes and text of an energy diagram are written
// into the SVG. This package provides:
//
//   - [Style]: The interface that all styles implement
//   - [Simple]: Crisp lines and a sans-serif font
//   - [handdrawn]: An XKCD-inspired sketchy look (in subpackage)
//
// The SVG canvas resolves colors, dash patterns and pixel coordinates before
// calling the style, so implementations only decide on the markup.
//
// Usage:
//
//	c := svg.New(svg.WithStyle(styles.Simple{}))
//
// [handdrawn]: github.com/matzehuels/energydiagram/pkg/render/styles/handdrawn
package styles
