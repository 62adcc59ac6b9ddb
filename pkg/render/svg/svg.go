// Package svg renders energy diagrams as standalone SVG documents.
//
// [Canvas] implements [diagram.Canvas]. Primitives are buffered and
// projected only when [Canvas.Bytes] is called, because the y limits are
// adjusted after the geometry has been drawn.
//
//	c := svg.New(svg.WithStyle(handdrawn.New(42)))
//	if _, err := d.Render(c, diagram.DefaultPlotOptions()); err != nil {
//		return err
//	}
//	os.WriteFile("diagram.svg", c.Bytes(), 0o644)
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/render/axes"
	"github.com/matzehuels/energydiagram/pkg/render/color"
	"github.com/matzehuels/energydiagram/pkg/render/styles"
)

const (
	spineWidth  = 0.8 // points
	tickLength  = 3.5 // points
	tickPad     = 3.5 // points
	fallbackHex = "#000000"
)

// Option configures a [Canvas].
type Option func(*Canvas)

// WithStyle sets the drawing style (default [styles.Simple]).
func WithStyle(s styles.Style) Option { return func(c *Canvas) { c.style = s } }

// WithBackground sets the figure background color. An empty string leaves
// the background transparent.
func WithBackground(spec string) Option { return func(c *Canvas) { c.background = spec } }

// Canvas collects drawing calls and writes them as SVG.
type Canvas struct {
	*axes.Frame
	style      styles.Style
	background string
	lines      []diagram.Segment
	texts      []diagram.Text
}

// New returns an empty canvas with a white background.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		Frame:      axes.NewFrame(),
		style:      styles.Simple{},
		background: "white",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Line buffers a data segment and extends the autoscale bounds.
func (c *Canvas) Line(s diagram.Segment) {
	c.lines = append(c.lines, s)
	c.Extend(s.X1, s.Y1)
	c.Extend(s.X2, s.Y2)
}

// Text buffers a label. Labels do not affect autoscaling.
func (c *Canvas) Text(t diagram.Text) { c.texts = append(c.texts, t) }

// Bytes writes the SVG document.
func (c *Canvas) Bytes() []byte {
	w, h := c.Size()
	a := c.Area()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	c.style.RenderDefs(&buf)

	if c.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			w, h, color.HexOr(c.background, "#ffffff"))
	}

	c.renderSpines(&buf, a)
	c.renderTicks(&buf, a)
	c.renderData(&buf)
	c.renderDecorations(&buf, a, h)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (c *Canvas) renderData(buf *bytes.Buffer) {
	for i, s := range c.lines {
		if s.Style == diagram.NoLine {
			continue
		}
		x1, y1 := c.Project(s.X1, s.Y1)
		x2, y2 := c.Project(s.X2, s.Y2)
		c.style.RenderLine(buf, styles.Line{
			ID:     fmt.Sprintf("line-%d", i),
			Class:  "data",
			X1:     x1, Y1: y1, X2: x2, Y2: y2,
			Color:  color.HexOr(s.Color, fallbackHex),
			Width:  axes.Px(s.Width),
			Alpha:  s.Alpha,
			Dashes: s.Style.Dashes(axes.Px(s.Width)),
		})
	}
	size := axes.Px(axes.DefaultTextSize)
	for _, t := range c.texts {
		x, y := c.Project(t.X, t.Y)
		c.style.RenderText(buf, styles.Text{
			X: x, Y: y,
			Text:     t.Text,
			Class:    "label",
			Color:    color.HexOr(t.Color, fallbackHex),
			Size:     size,
			Anchor:   styles.Anchor(t.HAlign),
			Baseline: styles.Baseline(t.VAlign),
		})
	}
}

func (c *Canvas) renderSpines(buf *bytes.Buffer, a axes.Rect) {
	edges := []struct {
		spine          diagram.Spine
		x1, y1, x2, y2 float64
	}{
		{diagram.SpineTop, a.X, a.Y, a.Right(), a.Y},
		{diagram.SpineBottom, a.X, a.Bottom(), a.Right(), a.Bottom()},
		{diagram.SpineLeft, a.X, a.Y, a.X, a.Bottom()},
		{diagram.SpineRight, a.Right(), a.Y, a.Right(), a.Bottom()},
	}
	for _, e := range edges {
		if !c.SpineVisible(e.spine) {
			continue
		}
		c.style.RenderLine(buf, styles.Line{
			ID:    "spine-" + string(e.spine),
			Class: "spine",
			X1:    e.x1, Y1: e.y1, X2: e.x2, Y2: e.y2,
			Color: fallbackHex,
			Width: axes.Px(spineWidth),
			Alpha: 1,
		})
	}
}

func (c *Canvas) renderTicks(buf *bytes.Buffer, a axes.Rect) {
	length, pad := axes.Px(tickLength), axes.Px(tickPad)

	ysize := axes.Px(axes.DefaultTickSize)
	for _, tk := range c.YTicks() {
		c.style.RenderLine(buf, styles.Line{
			ID: "ytick-" + tk.Label, Class: "tick",
			X1: a.X - length, Y1: tk.Pixel, X2: a.X, Y2: tk.Pixel,
			Color: fallbackHex, Width: axes.Px(spineWidth), Alpha: 1,
		})
		c.style.RenderText(buf, styles.Text{
			X: a.X - length - pad, Y: tk.Pixel,
			Text: tk.Label, Class: "tick-label",
			Color: fallbackHex, Size: ysize,
			Anchor: "end", Baseline: "central",
		})
	}

	xsize := axes.Px(c.XTickSize())
	for _, tk := range c.XTicks() {
		c.style.RenderLine(buf, styles.Line{
			ID: "xtick-" + tk.Label, Class: "tick",
			X1: tk.Pixel, Y1: a.Bottom(), X2: tk.Pixel, Y2: a.Bottom() + length,
			Color: fallbackHex, Width: axes.Px(spineWidth), Alpha: 1,
		})
		c.style.RenderText(buf, styles.Text{
			X: tk.Pixel, Y: a.Bottom() + length + pad,
			Text: tk.Label, Class: "tick-label",
			Color: fallbackHex, Size: xsize,
			Anchor: "middle", Baseline: "text-before-edge",
		})
	}
}

func (c *Canvas) renderDecorations(buf *bytes.Buffer, a axes.Rect, height float64) {
	if title := c.Title(); title != "" {
		c.style.RenderText(buf, styles.Text{
			X: a.X + a.W/2, Y: a.Y - 8,
			Text: title, Class: "title",
			Color: fallbackHex, Size: axes.Px(axes.DefaultTitleSize),
			Anchor: "middle", Baseline: "text-after-edge",
		})
	}
	if xl := c.AxisLabel(diagram.AxisX); xl != "" {
		c.style.RenderText(buf, styles.Text{
			X: a.X + a.W/2, Y: height - 8,
			Text: xl, Class: "axis-label",
			Color: fallbackHex, Size: axes.Px(axes.DefaultLabelSize),
			Anchor: "middle", Baseline: "text-after-edge",
		})
	}
	if yl := c.AxisLabel(diagram.AxisY); yl != "" {
		c.style.RenderText(buf, styles.Text{
			X: 8, Y: a.Y + a.H/2,
			Text: yl, Class: "axis-label",
			Color: fallbackHex, Size: axes.Px(axes.DefaultLabelSize),
			Anchor: "middle", Baseline: "text-before-edge",
			Rotate: 90,
		})
	}
}
