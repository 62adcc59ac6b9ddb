// Package axes holds the figure state shared by the SVG and raster canvases:
// data bounds, autoscaled limits, spine and axis visibility, ticks, titles,
// and the mapping from data coordinates to pixels.
//
// A [Frame] implements every state method of [diagram.Canvas]; a backend
// embeds it and adds Line and Text, calling [Frame.Extend] for each drawn
// segment so the limits follow the data.
package axes

import (
	"github.com/matzehuels/energydiagram/pkg/diagram"
)

// Figure defaults, matching matplotlib's rc defaults.
const (
	DPI                 = 100.0
	DefaultFigureWidth  = 6.4 // inches
	DefaultFigureHeight = 4.8 // inches
	DefaultTickSize     = 10.0
	DefaultTextSize     = 10.0
	DefaultTitleSize    = 12.0
	DefaultLabelSize    = 10.0
	DefaultYBins        = 8

	// Margin is the autoscale padding as a fraction of the data range.
	Margin = 0.05
)

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Right returns X+W.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns Y+H.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Frame accumulates figure state. The zero value is not usable; call
// [NewFrame].
type Frame struct {
	width, height float64

	spines map[diagram.Spine]bool
	axes   map[diagram.Axis]bool

	haveData               bool
	xmin, xmax, ymin, ymax float64

	ylimSet     bool
	ylo, yhi    float64
	xticks      []float64
	xtickLabels []string
	xtickSize   float64
	ybins       int
	title       string
	xlabel      string
	ylabel      string
}

// NewFrame returns a frame with every spine and axis visible and the default
// figure size.
func NewFrame() *Frame {
	f := &Frame{
		width:  DefaultFigureWidth,
		height: DefaultFigureHeight,
		spines: make(map[diagram.Spine]bool, 4),
		axes:   make(map[diagram.Axis]bool, 2),
		ybins:  DefaultYBins,
	}
	for _, s := range []diagram.Spine{diagram.SpineTop, diagram.SpineBottom, diagram.SpineLeft, diagram.SpineRight} {
		f.spines[s] = true
	}
	f.axes[diagram.AxisX] = true
	f.axes[diagram.AxisY] = true
	return f
}

// Extend grows the data bounds to include (x, y).
func (f *Frame) Extend(x, y float64) {
	if !f.haveData {
		f.xmin, f.xmax, f.ymin, f.ymax = x, x, y, y
		f.haveData = true
		return
	}
	f.xmin, f.xmax = min(f.xmin, x), max(f.xmax, x)
	f.ymin, f.ymax = min(f.ymin, y), max(f.ymax, y)
}

// SetFigureSize sets the figure size in inches. Non-positive values are
// ignored.
func (f *Frame) SetFigureSize(w, h float64) {
	if w > 0 && h > 0 {
		f.width, f.height = w, h
	}
}

func (f *Frame) SetSpineVisible(s diagram.Spine, v bool) { f.spines[s] = v }
func (f *Frame) SetAxisVisible(a diagram.Axis, v bool)   { f.axes[a] = v }
func (f *Frame) SpineVisible(s diagram.Spine) bool       { return f.spines[s] }
func (f *Frame) AxisVisible(a diagram.Axis) bool         { return f.axes[a] }

// YLim returns the explicit y limits if set, else the autoscaled ones.
func (f *Frame) YLim() (lo, hi float64) {
	if f.ylimSet {
		return f.ylo, f.yhi
	}
	return autoscale(f.ymin, f.ymax, f.haveData)
}

// SetYLim fixes the y limits. Equal limits are widened so the transform
// stays finite.
func (f *Frame) SetYLim(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	f.ylo, f.yhi, f.ylimSet = lo, hi, true
}

// XLim returns the autoscaled x limits.
func (f *Frame) XLim() (lo, hi float64) {
	return autoscale(f.xmin, f.xmax, f.haveData)
}

func autoscale(lo, hi float64, ok bool) (float64, float64) {
	if !ok {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	pad := (hi - lo) * Margin
	return lo - pad, hi + pad
}

// SetXTicks replaces the automatic x ticks. Labels beyond len(xs) are
// dropped; missing labels are blank.
func (f *Frame) SetXTicks(xs []float64, labels []string, size float64) {
	f.xticks = append([]float64(nil), xs...)
	f.xtickLabels = make([]string, len(xs))
	copy(f.xtickLabels, labels)
	f.xtickSize = size
}

// SetYBins sets the maximum number of y tick intervals.
func (f *Frame) SetYBins(n int) {
	if n > 0 {
		f.ybins = n
	}
}

func (f *Frame) SetTitle(s string) { f.title = s }

func (f *Frame) SetAxisLabel(a diagram.Axis, s string) {
	if a == diagram.AxisX {
		f.xlabel = s
	} else {
		f.ylabel = s
	}
}

func (f *Frame) Title() string { return f.title }

// AxisLabel returns the label of axis a.
func (f *Frame) AxisLabel(a diagram.Axis) string {
	if a == diagram.AxisX {
		return f.xlabel
	}
	return f.ylabel
}

// Size returns the figure size in pixels.
func (f *Frame) Size() (w, h float64) { return f.width * DPI, f.height * DPI }

// Area returns the pixel rectangle of the axes, leaving room for the title,
// axis labels and tick labels that are shown.
func (f *Frame) Area() Rect {
	w, h := f.Size()
	left, right, top, bottom := 20.0, 20.0, 20.0, 20.0
	if f.axes[diagram.AxisY] {
		left += 50
	}
	if f.ylabel != "" {
		left += 25
	}
	if f.axes[diagram.AxisX] {
		bottom += 25
	}
	if f.xlabel != "" {
		bottom += 25
	}
	if f.title != "" {
		top += 25
	}
	return Rect{X: left, Y: top, W: max(1, w-left-right), H: max(1, h-top-bottom)}
}

// Project maps data coordinates to pixels (y grows downward).
func (f *Frame) Project(x, y float64) (px, py float64) {
	a := f.Area()
	xlo, xhi := f.XLim()
	ylo, yhi := f.YLim()
	px = a.X + (x-xlo)/(xhi-xlo)*a.W
	py = a.Bottom() - (y-ylo)/(yhi-ylo)*a.H
	return px, py
}

// Tick is a resolved tick mark.
type Tick struct {
	Value float64 // data coordinate
	Pixel float64 // pixel coordinate along the axis
	Label string
}

// YTicks returns the y ticks inside the current limits, or nil when the y
// axis is hidden.
func (f *Frame) YTicks() []Tick {
	if !f.axes[diagram.AxisY] {
		return nil
	}
	lo, hi := f.YLim()
	vals, step := NiceTicks(lo, hi, f.ybins)
	out := make([]Tick, len(vals))
	for i, v := range vals {
		_, py := f.Project(0, v)
		out[i] = Tick{Value: v, Pixel: py, Label: FormatTick(v, step)}
	}
	return out
}

// XTicks returns the explicit x ticks, automatic ones when none were set, or
// nil when the x axis is hidden.
func (f *Frame) XTicks() []Tick {
	if !f.axes[diagram.AxisX] {
		return nil
	}
	if f.xticks != nil {
		out := make([]Tick, len(f.xticks))
		for i, v := range f.xticks {
			px, _ := f.Project(v, 0)
			out[i] = Tick{Value: v, Pixel: px, Label: f.xtickLabels[i]}
		}
		return out
	}
	lo, hi := f.XLim()
	vals, step := NiceTicks(lo, hi, DefaultYBins)
	out := make([]Tick, len(vals))
	for i, v := range vals {
		px, _ := f.Project(v, 0)
		out[i] = Tick{Value: v, Pixel: px, Label: FormatTick(v, step)}
	}
	return out
}

// XTickSize returns the font size of x tick labels in points.
func (f *Frame) XTickSize() float64 {
	if f.xticks != nil && f.xtickSize > 0 {
		return f.xtickSize
	}
	return DefaultTickSize
}

// Px converts a size in points to pixels.
func Px(pt float64) float64 { return pt * DPI / 72 }
