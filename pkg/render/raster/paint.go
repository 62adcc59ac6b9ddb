package raster

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/render/axes"
	rcolor "github.com/matzehuels/energydiagram/pkg/render/color"
)

// painter draws in device pixels: every figure coordinate is multiplied by
// k, and font faces are requested at k times their size.
type painter struct {
	dc *gg.Context
	c  *Canvas
	k  float64
}

func (p *painter) paint() error {
	a := p.c.Area()
	p.spines(a)
	if err := p.ticks(a); err != nil {
		return err
	}
	if err := p.data(); err != nil {
		return err
	}
	return p.decorations(a)
}

func (p *painter) line(x1, y1, x2, y2 float64, col color.Color, width, alpha float64, dashes []float64) {
	dc := p.dc
	r, g, b, _ := col.RGBA()
	dc.SetRGBA(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff, alpha)
	dc.SetLineWidth(width * p.k)
	dc.SetLineCapButt()
	if len(dashes) > 0 {
		scaled := make([]float64, len(dashes))
		for i, d := range dashes {
			scaled[i] = d * p.k
		}
		dc.SetDash(scaled...)
	} else {
		dc.SetDash()
	}
	dc.DrawLine(x1*p.k, y1*p.k, x2*p.k, y2*p.k)
	dc.Stroke()
}

// text draws s with its anchor at (x, y). ax and ay follow gg: ax 0/0.5/1 is
// left/center/right of the anchor, ay 0 puts the baseline on the anchor and
// 1 hangs the text below it.
func (p *painter) text(s string, x, y, size, ax, ay, rotate float64, col color.Color) error {
	face, err := p.c.face(size * p.k)
	if err != nil {
		return err
	}
	dc := p.dc
	dc.SetFontFace(face)
	dc.SetColor(col)
	if rotate != 0 {
		dc.Push()
		dc.RotateAbout(gg.Radians(-rotate), x*p.k, y*p.k)
		defer dc.Pop()
	}
	dc.DrawStringAnchored(s, x*p.k, y*p.k, ax, ay)
	return nil
}

func anchorX(h diagram.HAlign) float64 {
	switch h {
	case diagram.HAlignLeft:
		return 0
	case diagram.HAlignRight:
		return 1
	}
	return 0.5
}

func anchorY(v diagram.VAlign) float64 {
	switch v {
	case diagram.VAlignBottom:
		return 0
	case diagram.VAlignTop:
		return 1
	}
	return 0.5
}

func (p *painter) spines(a axes.Rect) {
	w := axes.Px(spineWidth)
	if p.c.SpineVisible(diagram.SpineTop) {
		p.line(a.X, a.Y, a.Right(), a.Y, black, w, 1, nil)
	}
	if p.c.SpineVisible(diagram.SpineBottom) {
		p.line(a.X, a.Bottom(), a.Right(), a.Bottom(), black, w, 1, nil)
	}
	if p.c.SpineVisible(diagram.SpineLeft) {
		p.line(a.X, a.Y, a.X, a.Bottom(), black, w, 1, nil)
	}
	if p.c.SpineVisible(diagram.SpineRight) {
		p.line(a.Right(), a.Y, a.Right(), a.Bottom(), black, w, 1, nil)
	}
}

func (p *painter) ticks(a axes.Rect) error {
	length, pad, w := axes.Px(tickLength), axes.Px(tickPad), axes.Px(spineWidth)
	for _, tk := range p.c.YTicks() {
		p.line(a.X-length, tk.Pixel, a.X, tk.Pixel, black, w, 1, nil)
		if err := p.text(tk.Label, a.X-length-pad, tk.Pixel, axes.Px(axes.DefaultTickSize), 1, 0.5, 0, black); err != nil {
			return err
		}
	}
	size := axes.Px(p.c.XTickSize())
	for _, tk := range p.c.XTicks() {
		p.line(tk.Pixel, a.Bottom(), tk.Pixel, a.Bottom()+length, black, w, 1, nil)
		if err := p.text(tk.Label, tk.Pixel, a.Bottom()+length+pad, size, 0.5, 1, 0, black); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) data() error {
	for _, s := range p.c.lines {
		if s.Style == diagram.NoLine {
			continue
		}
		col, err := rcolor.Parse(s.Color)
		if err != nil {
			return err
		}
		x1, y1 := p.c.Project(s.X1, s.Y1)
		x2, y2 := p.c.Project(s.X2, s.Y2)
		w := axes.Px(s.Width)
		p.line(x1, y1, x2, y2, col, w, s.Alpha, s.Style.Dashes(w))
	}
	size := axes.Px(axes.DefaultTextSize)
	for _, t := range p.c.texts {
		col, err := rcolor.Parse(t.Color)
		if err != nil {
			return err
		}
		x, y := p.c.Project(t.X, t.Y)
		if err := p.text(t.Text, x, y, size, anchorX(t.HAlign), anchorY(t.VAlign), 0, col); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) decorations(a axes.Rect) error {
	_, h := p.c.Size()
	if title := p.c.Title(); title != "" {
		if err := p.text(title, a.X+a.W/2, a.Y-8, axes.Px(axes.DefaultTitleSize), 0.5, 0, 0, black); err != nil {
			return err
		}
	}
	if xl := p.c.AxisLabel(diagram.AxisX); xl != "" {
		if err := p.text(xl, a.X+a.W/2, h-8, axes.Px(axes.DefaultLabelSize), 0.5, 0, 0, black); err != nil {
			return err
		}
	}
	if yl := p.c.AxisLabel(diagram.AxisY); yl != "" {
		if err := p.text(yl, 8, a.Y+a.H/2, axes.Px(axes.DefaultLabelSize), 0.5, 1, 90, black); err != nil {
			return err
		}
	}
	return nil
}
