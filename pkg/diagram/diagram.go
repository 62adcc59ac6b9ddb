package diagram

import (
	"slices"

	"github.com/matzehuels/energydiagram/pkg/errors"
)

// Default record styling.
const (
	DefaultColor       = "k"
	DefaultLinkAlpha   = 0.6
	DefaultLinkWidth   = 1.0
	DefaultLevelStroke = 1.5 // stroke width of level segments
)

// Diagram accumulates levels, labels and links for one energy diagram.
// It is not safe for concurrent mutation.
type Diagram struct {
	cfg    Config
	levels []Level
	labels []Label
	links  []Link
}

// New creates an empty diagram. Zero fields in cfg take their defaults.
func New(cfg Config) *Diagram {
	return &Diagram{cfg: cfg.WithDefaults()}
}

// Config returns the resolved layout constants.
func (d *Diagram) Config() Config { return d.cfg }

// LevelOption customizes a level added with [Diagram.AddLevel].
type LevelOption func(*Level)

// LevelColor sets the level color (matplotlib color spec).
func LevelColor(c string) LevelOption { return func(l *Level) { l.Color = c } }

// LevelStyle sets the level line style.
func LevelStyle(s LineStyle) LevelOption { return func(l *Level) { l.Style = s } }

// AddLevel appends a level at the given energy and position and returns its
// ID. Levels default to a solid black line.
func (d *Diagram) AddLevel(energy float64, position int, opts ...LevelOption) int {
	l := Level{Energy: energy, Position: position, Color: DefaultColor, Style: Solid}
	for _, opt := range opts {
		opt(&l)
	}
	d.levels = append(d.levels, l)
	return len(d.levels) - 1
}

// LabelOption customizes a label added with [Diagram.AddLabel].
type LabelOption func(*labelSpec)

type labelSpec struct {
	Label
	offsetSet bool
}

// AtPosition sets the slot the label is placed against (default 0). Negative
// slots extend the slot grid to the left.
func AtPosition(n int) LabelOption { return func(s *labelSpec) { s.Position = n } }

// LabelColor sets the text color.
func LabelColor(c string) LabelOption { return func(s *labelSpec) { s.Color = c } }

// Placed sets the label placement (default [PlaceTop]).
func Placed(p Placement) LabelOption { return func(s *labelSpec) { s.Placement = p } }

// WithOffset overrides the configured offset for this label. For top and
// bottom labels it is a fraction of the energy range, for left and right
// labels an x distance.
func WithOffset(v float64) LabelOption {
	return func(s *labelSpec) { s.Offset = v; s.offsetSet = true }
}

// AddLabel appends a text label. It fails with
// [errors.ErrCodeInvalidPlacement] when the placement is not one of
// top, bottom, left or right; nothing is stored in that case.
func (d *Diagram) AddLabel(energy float64, text string, opts ...LabelOption) error {
	s := labelSpec{Label: Label{
		Energy:    energy,
		Text:      text,
		Color:     DefaultColor,
		Placement: PlaceTop,
	}}
	for _, opt := range opts {
		opt(&s)
	}
	if !s.Placement.Valid() {
		return errors.New(errors.ErrCodeInvalidPlacement,
			"placement must be one of top, bottom, left, right; got %q", string(s.Placement))
	}
	if !s.offsetSet {
		if s.Placement.Vertical() {
			s.Offset = labelGap(d.cfg.VerticalOffset)
		} else {
			s.Offset = labelGap(d.cfg.HorizontalOffset)
		}
	}
	d.labels = append(d.labels, s.Label)
	return nil
}

// LinkOption customizes a link added with [Diagram.AddLink].
type LinkOption func(*Link)

// LinkColor sets the connector color.
func LinkColor(c string) LinkOption { return func(l *Link) { l.Color = c } }

// LinkStyle sets the connector line style (default [Dashed]).
func LinkStyle(s LineStyle) LinkOption { return func(l *Link) { l.Style = s } }

// LinkWidth sets the connector stroke width (default 1).
func LinkWidth(w float64) LinkOption { return func(l *Link) { l.Width = w } }

// LinkAlpha sets the connector opacity in [0, 1] (default 0.6).
func LinkAlpha(a float64) LinkOption { return func(l *Link) { l.Alpha = a } }

// AddLink appends a connector between two level IDs, storing the smaller ID
// first. IDs are checked when the layout is computed, so links may be added
// before the levels they reference.
func (d *Diagram) AddLink(a, b int, opts ...LinkOption) {
	if a > b {
		a, b = b, a
	}
	l := Link{
		A: a, B: b,
		Color: DefaultColor,
		Style: Dashed,
		Width: DefaultLinkWidth,
		Alpha: DefaultLinkAlpha,
	}
	for _, opt := range opts {
		opt(&l)
	}
	d.links = append(d.links, l)
}

// Levels returns a copy of the accumulated levels, indexed by ID.
func (d *Diagram) Levels() []Level { return slices.Clone(d.levels) }

// Labels returns a copy of the accumulated labels.
func (d *Diagram) Labels() []Label { return slices.Clone(d.labels) }

// Links returns a copy of the accumulated links.
func (d *Diagram) Links() []Link { return slices.Clone(d.links) }

// Level returns the level with the given ID.
func (d *Diagram) Level(id int) (Level, bool) {
	if id < 0 || id >= len(d.levels) {
		return Level{}, false
	}
	return d.levels[id], true
}

// Stats summarizes the accumulated records.
type Stats struct {
	Levels    int
	Labels    int
	Links     int
	Positions int
	MinEnergy float64
	MaxEnergy float64
}

// Stats returns record counts, the number of distinct level positions and
// the energy extent of the levels (zero when there are none).
func (d *Diagram) Stats() Stats {
	lo, hi := d.energyRange()
	return Stats{
		Levels:    len(d.levels),
		Labels:    len(d.labels),
		Links:     len(d.links),
		Positions: len(d.positions()),
		MinEnergy: lo,
		MaxEnergy: hi,
	}
}

// energyRange returns the min and max level energy, or (0, 0) when there are
// no levels.
func (d *Diagram) energyRange() (lo, hi float64) {
	if len(d.levels) == 0 {
		return 0, 0
	}
	lo, hi = d.levels[0].Energy, d.levels[0].Energy
	for _, l := range d.levels[1:] {
		lo = min(lo, l.Energy)
		hi = max(hi, l.Energy)
	}
	return lo, hi
}

// positions returns the distinct level positions in ascending order.
func (d *Diagram) positions() []int {
	out := make([]int, 0, len(d.levels))
	for _, l := range d.levels {
		out = append(out, l.Position)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
