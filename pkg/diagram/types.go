package diagram

import (
	"strings"

	"github.com/matzehuels/energydiagram/pkg/errors"
)

// Placement says on which side of its slot a label is drawn.
type Placement string

// Supported label placements.
const (
	PlaceTop    Placement = "top"
	PlaceBottom Placement = "bottom"
	PlaceLeft   Placement = "left"
	PlaceRight  Placement = "right"
)

// Placements lists every valid placement in a stable order.
var Placements = []Placement{PlaceTop, PlaceBottom, PlaceLeft, PlaceRight}

// Valid reports whether p is one of the four supported placements.
func (p Placement) Valid() bool {
	switch p {
	case PlaceTop, PlaceBottom, PlaceLeft, PlaceRight:
		return true
	}
	return false
}

// Vertical reports whether the label is offset along the energy axis.
func (p Placement) Vertical() bool { return p == PlaceTop || p == PlaceBottom }

// ParsePlacement converts a case-insensitive name to a Placement.
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.New(errors.ErrCodeInvalidPlacement,
			"placement must be one of top, bottom, left, right; got %q", s)
	}
	return p, nil
}

// LineStyle is a matplotlib-compatible line style specifier.
type LineStyle string

// Supported line styles.
const (
	Solid   LineStyle = "-"
	Dashed  LineStyle = "--"
	Dotted  LineStyle = ":"
	DashDot LineStyle = "-."
	NoLine  LineStyle = "none"
)

var lineStyleNames = map[string]LineStyle{
	"":        Solid,
	"-":       Solid,
	"solid":   Solid,
	"--":      Dashed,
	"dashed":  Dashed,
	":":       Dotted,
	"dotted":  Dotted,
	"-.":      DashDot,
	"dashdot": DashDot,
	"none":    NoLine,
	"None":    NoLine,
	" ":       NoLine,
}

// ParseLineStyle accepts both the short ("--") and long ("dashed") forms.
// The empty string means [Solid].
func ParseLineStyle(s string) (LineStyle, error) {
	if ls, ok := lineStyleNames[s]; ok {
		return ls, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStyle, "unknown line style %q", s)
}

// Dashes returns the on/off dash pattern for the style scaled by the line
// width, following matplotlib's default dash lengths. Solid lines return nil.
func (s LineStyle) Dashes(width float64) []float64 {
	if width <= 0 {
		width = 1
	}
	var base []float64
	switch s {
	case Dashed:
		base = []float64{3.7, 1.6}
	case Dotted:
		base = []float64{1, 1.65}
	case DashDot:
		base = []float64{6.4, 1.6, 1, 1.6}
	default:
		return nil
	}
	out := make([]float64, len(base))
	for i, v := range base {
		out[i] = v * width
	}
	return out
}

// Level is one horizontal energy level. Its ID is its insertion index.
type Level struct {
	Energy   float64
	Position int
	Color    string
	Style    LineStyle
}

// Label is free text anchored at (energy, position). It does not reference a
// level; the position only selects the slot used for x placement, and may be
// negative to place the text left of slot 0. Texts do not widen the x range,
// so such a label can fall outside the plotted frame.
type Label struct {
	Energy    float64
	Text      string
	Position  int
	Color     string
	Placement Placement
	// Offset is the resolved label offset: a fraction of the energy range
	// for top/bottom labels, an x distance for left/right labels.
	Offset float64
}

// Link connects two levels by ID. A <= B always holds.
type Link struct {
	A, B  int
	Color string
	Style LineStyle
	Width float64
	Alpha float64
}

// HAlign is the horizontal alignment of text relative to its anchor.
type HAlign string

// Horizontal alignments.
const (
	HAlignLeft   HAlign = "left"
	HAlignCenter HAlign = "center"
	HAlignRight  HAlign = "right"
)

// VAlign is the vertical alignment of text relative to its anchor. A
// bottom-aligned text has its bottom at the anchor, so it sits above it.
type VAlign string

// Vertical alignments.
const (
	VAlignBottom VAlign = "bottom"
	VAlignCenter VAlign = "center"
	VAlignTop    VAlign = "top"
)

// Spine names one of the four plot borders.
type Spine string

// Plot borders.
const (
	SpineTop    Spine = "top"
	SpineBottom Spine = "bottom"
	SpineLeft   Spine = "left"
	SpineRight  Spine = "right"
)

// Axis names one plot axis.
type Axis string

// Plot axes.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)
