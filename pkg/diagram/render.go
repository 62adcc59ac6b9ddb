package diagram

// Canvas is the drawing capability the diagram renders into. Coordinates are
// data coordinates; the canvas owns the mapping to device space.
type Canvas interface {
	// Line strokes a straight segment.
	Line(s Segment)
	// Text draws a label anchored at (t.X, t.Y) with t's alignment.
	Text(t Text)

	// SetFigureSize sets the figure size in inches.
	SetFigureSize(width, height float64)
	// SetSpineVisible shows or hides one plot border.
	SetSpineVisible(s Spine, visible bool)
	// SetAxisVisible shows or hides an axis with its ticks and tick labels.
	SetAxisVisible(a Axis, visible bool)
	// YLim returns the current y limits (autoscaled from drawn data unless
	// set explicitly).
	YLim() (lo, hi float64)
	// SetYLim fixes the y limits.
	SetYLim(lo, hi float64)
	// SetXTicks places x ticks at xs with the given labels and label size.
	SetXTicks(xs []float64, labels []string, labelSize float64)
	// SetYBins requests at most n intervals between y ticks.
	SetYBins(n int)
	// SetTitle sets the figure title.
	SetTitle(title string)
	// SetAxisLabel sets an axis label.
	SetAxisLabel(a Axis, label string)
}

// Spines controls the visibility of the four plot borders.
type Spines struct {
	Top, Right, Bottom, Left bool
}

// PlotOptions are the presentation settings applied after the geometry is
// drawn.
type PlotOptions struct {
	Spines         Spines
	XAxisVisible   bool
	YAxisVisible   bool
	Title          string
	XLabel         string
	YLabel         string
	XTickLabels    []string // one per distinct level position, in position order
	XTickLabelSize float64
	YBins          int     // 0 keeps the canvas default
	FigureWidth    float64 // inches, 0 keeps the canvas default
	FigureHeight   float64
	// YLimitOffset grows the upper y limit by this fraction of the y range so
	// top labels stay inside the axes.
	YLimitOffset float64
}

// Default presentation settings.
const (
	DefaultXTickLabelSize = 13.0
	DefaultYLimitOffset   = 0.05
)

// DefaultPlotOptions shows only the bottom and left borders and the y axis.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Spines:         Spines{Bottom: true, Left: true},
		YAxisVisible:   true,
		XTickLabelSize: DefaultXTickLabelSize,
		YLimitOffset:   DefaultYLimitOffset,
	}
}

// Render computes the layout, draws levels, then links, then labels into c,
// and applies opts. It returns the computed layout.
func (d *Diagram) Render(c Canvas, opts PlotOptions) (Layout, error) {
	l, err := d.Layout()
	if err != nil {
		return Layout{}, err
	}

	for _, s := range l.Levels {
		c.Line(s.Segment)
	}
	for _, s := range l.Links {
		c.Line(s.Segment)
	}
	for _, t := range l.Texts {
		c.Text(t)
	}

	applyPlotOptions(c, l, opts)
	return l, nil
}

func applyPlotOptions(c Canvas, l Layout, opts PlotOptions) {
	if opts.FigureWidth > 0 && opts.FigureHeight > 0 {
		c.SetFigureSize(opts.FigureWidth, opts.FigureHeight)
	}

	c.SetSpineVisible(SpineTop, opts.Spines.Top)
	c.SetSpineVisible(SpineBottom, opts.Spines.Bottom)
	c.SetSpineVisible(SpineLeft, opts.Spines.Left)
	c.SetSpineVisible(SpineRight, opts.Spines.Right)

	c.SetAxisVisible(AxisX, opts.XAxisVisible)
	c.SetAxisVisible(AxisY, opts.YAxisVisible)

	lo, hi := c.YLim()
	c.SetYLim(lo, hi+(hi-lo)*opts.YLimitOffset)

	if len(opts.XTickLabels) > 0 {
		size := opts.XTickLabelSize
		if size <= 0 {
			size = DefaultXTickLabelSize
		}
		c.SetXTicks(l.TickXs(), opts.XTickLabels, size)
	}
	if opts.YBins > 0 {
		c.SetYBins(opts.YBins)
	}

	c.SetTitle(opts.Title)
	c.SetAxisLabel(AxisX, opts.XLabel)
	c.SetAxisLabel(AxisY, opts.YLabel)
}
