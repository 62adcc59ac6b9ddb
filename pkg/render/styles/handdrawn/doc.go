// Package handdrawn provides an XKCD-inspired hand-drawn visual style.
//
// Strokes become chains of quadratic curves with jittered control points,
// passed through a light turbulence filter, and text uses a comic font
// stack. The jitter is seeded per stroke from the style seed and the stroke
// ID, so the same diagram rendered twice with the same seed is identical:
//
//	style := handdrawn.New(42)
//	c := svg.New(svg.WithStyle(style))
//
// No font is embedded; viewers without "xkcd Script" or "Humor Sans" fall
// back along the font-family list.
package handdrawn
