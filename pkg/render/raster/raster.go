// Package raster renders energy diagrams to PNG without external tools.
//
// [Canvas] implements [diagram.Canvas] on top of fogleman/gg. The figure is
// drawn at twice the requested resolution with the Go Regular font and
// downsampled with a Catmull-Rom filter, which gives smooth edges without
// relying on hinting.
package raster

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
	"github.com/matzehuels/energydiagram/pkg/render/axes"
	"github.com/matzehuels/energydiagram/pkg/render/color"
)

// MaxPixels bounds the area of the output image. The supersampled drawing
// surface holds supersample² times as many.
const MaxPixels = 24_000_000

const (
	supersample = 2
	spineWidth  = 0.8 // points
	tickLength  = 3.5 // points
	tickPad     = 3.5 // points
)

var black = colorful.Color{}

var parseFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Option configures a [Canvas].
type Option func(*Canvas)

// WithScale multiplies the output resolution (default 1, i.e. 100 DPI).
func WithScale(s float64) Option {
	return func(c *Canvas) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithBackground sets the figure background (default white). An empty
// string keeps it transparent.
func WithBackground(spec string) Option { return func(c *Canvas) { c.background = spec } }

// Canvas collects drawing calls and rasterizes them on [Canvas.PNG].
type Canvas struct {
	*axes.Frame
	scale      float64
	background string
	lines      []diagram.Segment
	texts      []diagram.Text
	faces      map[float64]font.Face
}

// New returns an empty canvas.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		Frame:      axes.NewFrame(),
		scale:      1,
		background: "white",
		faces:      make(map[float64]font.Face),
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

// Text buffers a label.
func (c *Canvas) Text(t diagram.Text) { c.texts = append(c.texts, t) }

// Pixels returns the output image size for the current figure size and
// scale.
func (c *Canvas) Pixels() (w, h float64) {
	fw, fh := c.Size()
	return fw * c.scale, fh * c.scale
}

// Image rasterizes the figure at the output resolution. It fails with
// [errors.ErrCodeInvalidInput] when the image would exceed [MaxPixels].
func (c *Canvas) Image() (image.Image, error) {
	if err := CheckPixels(c.Pixels()); err != nil {
		return nil, err
	}
	w, h := c.Size()
	k := c.scale * supersample
	dc := gg.NewContext(int(w*k+0.5), int(h*k+0.5))

	if c.background != "" {
		bg, err := color.Parse(c.background)
		if err != nil {
			return nil, err
		}
		dc.SetColor(bg)
		dc.Clear()
	}

	r := &painter{dc: dc, c: c, k: k}
	if err := r.paint(); err != nil {
		return nil, err
	}

	big := dc.Image()
	out := image.NewRGBA(image.Rect(0, 0, int(w*c.scale+0.5), int(h*c.scale+0.5)))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Over, nil)
	return out, nil
}

// CheckPixels reports whether a w×h pixel image fits within [MaxPixels].
func CheckPixels(w, h float64) error {
	if w*h > MaxPixels || math.IsNaN(w*h) {
		return errors.New(errors.ErrCodeInvalidInput,
			"PNG of %.0fx%.0f pixels exceeds the %d pixel limit; lower the scale or figure size", w, h, MaxPixels)
	}
	return nil
}

// PNG rasterizes the figure and encodes it.
func (c *Canvas) PNG() ([]byte, error) {
	img, err := c.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// face returns a Go Regular face for the given size in pixels, already
// multiplied by the supersampling factor because gg draws glyphs unscaled.
func (c *Canvas) face(px float64) (font.Face, error) {
	if f, ok := c.faces[px]; ok {
		return f, nil
	}
	fnt, err := parseFont()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	c.faces[px] = f
	return f, nil
}
