package styles

import "bytes"

// Style defines the visual appearance of a diagram.
// Implementations control how strokes and text are written into the SVG.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, fonts).
	RenderDefs(buf *bytes.Buffer)
	// RenderLine writes the SVG for one stroke.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderText writes the SVG for one text element.
	RenderText(buf *bytes.Buffer, t Text)
	// FontFamily returns the CSS font-family list used for text.
	FontFamily() string
}

// Line is a stroke in pixel coordinates.
type Line struct {
	ID             string    // Stable identifier, used to seed per-line jitter
	Class          string    // CSS class: "level", "link", "spine", "tick"
	X1, Y1, X2, Y2 float64   // Endpoints
	Color          string    // Resolved "#rrggbb"
	Width          float64   // Stroke width in pixels
	Alpha          float64   // Opacity in [0, 1]
	Dashes         []float64 // Dash pattern, nil for solid
}

// Text is a label in pixel coordinates.
type Text struct {
	X, Y     float64
	Text     string
	Class    string
	Color    string  // Resolved "#rrggbb"
	Size     float64 // Font size in pixels
	Anchor   string  // SVG text-anchor: start, middle, end
	Baseline string  // SVG dominant-baseline
	Rotate   float64 // Degrees, counter-clockwise around (X, Y)
}
