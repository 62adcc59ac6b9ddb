package diagram

import (
	"github.com/matzehuels/energydiagram/pkg/errors"
)

// Segment is a straight stroke in data coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Style          LineStyle
	Width          float64
	Alpha          float64
}

// CenterX returns the x midpoint of the segment.
func (s Segment) CenterX() float64 { return (s.X1 + s.X2) / 2 }

// LevelSegment is the computed stroke of one level.
type LevelSegment struct {
	Segment
	ID       int
	Position int
	Energy   float64
}

// LinkSegment is the computed stroke of one link.
type LinkSegment struct {
	Segment
	From, To int // level IDs, From <= To
}

// Text is a positioned label in data coordinates.
type Text struct {
	X, Y      float64
	Text      string
	Color     string
	Placement Placement
	HAlign    HAlign
	VAlign    VAlign
}

// Tick is an x-axis tick at the center of an occupied slot.
type Tick struct {
	Position int
	X        float64
}

// Layout is the concrete geometry of a diagram.
type Layout struct {
	Levels []LevelSegment
	Links  []LinkSegment
	Texts  []Text
	// Ticks holds one entry per distinct level position, sorted by position.
	Ticks []Tick
	// MinEnergy and MaxEnergy span the level energies (both 0 when empty).
	MinEnergy float64
	MaxEnergy float64
}

// EnergyRange returns MaxEnergy - MinEnergy.
func (l Layout) EnergyRange() float64 { return l.MaxEnergy - l.MinEnergy }

// TickXs returns the x coordinates of the ticks.
func (l Layout) TickXs() []float64 {
	xs := make([]float64, len(l.Ticks))
	for i, t := range l.Ticks {
		xs[i] = t.X
	}
	return xs
}

// Layout computes the geometry of every level, link and label.
//
// It returns [errors.ErrCodeInvalidPosition] when a level has a negative
// position, and [errors.ErrCodeInvalidLink] when a link references a level ID
// that does not exist. Labels may sit at negative positions. The diagram is
// not modified.
func (d *Diagram) Layout() (Layout, error) {
	if err := d.check(); err != nil {
		return Layout{}, err
	}

	lo, hi := d.energyRange()
	out := Layout{
		Levels:    make([]LevelSegment, 0, len(d.levels)),
		Links:     make([]LinkSegment, 0, len(d.links)),
		Texts:     make([]Text, 0, len(d.labels)),
		MinEnergy: lo,
		MaxEnergy: hi,
	}

	for id, l := range d.levels {
		out.Levels = append(out.Levels, d.levelSegment(id, l))
	}
	for _, lk := range d.links {
		out.Links = append(out.Links, d.linkSegment(lk))
	}
	for _, lb := range d.labels {
		out.Texts = append(out.Texts, d.placeText(lb, hi-lo))
	}
	for _, p := range d.positions() {
		out.Ticks = append(out.Ticks, Tick{Position: p, X: d.cfg.SlotCenter(p)})
	}
	return out, nil
}

func (d *Diagram) check() error {
	for id, l := range d.levels {
		if l.Position < 0 {
			return errors.New(errors.ErrCodeInvalidPosition,
				"level %d has negative position %d", id, l.Position)
		}
	}
	n := len(d.levels)
	for i, lk := range d.links {
		if lk.A < 0 || lk.B >= n {
			return errors.New(errors.ErrCodeInvalidLink,
				"link %d references levels %d-%d, valid IDs are 0..%d", i, lk.A, lk.B, n-1)
		}
	}
	return nil
}

func (d *Diagram) levelSegment(id int, l Level) LevelSegment {
	half := d.cfg.LevelWidth / 2
	center := d.cfg.SlotCenter(l.Position)
	return LevelSegment{
		Segment: Segment{
			X1: center - half, Y1: l.Energy,
			X2: center + half, Y2: l.Energy,
			Color: l.Color,
			Style: l.Style,
			Width: DefaultLevelStroke,
			Alpha: 1,
		},
		ID:       id,
		Position: l.Position,
		Energy:   l.Energy,
	}
}

// linkSegment runs from just past the trailing edge of the earlier slot to
// just before the leading edge of the later slot. With equal positions the
// ID order decides which end is which.
func (d *Diagram) linkSegment(lk Link) LinkSegment {
	src, dst := d.levels[lk.A], d.levels[lk.B]
	if src.Position > dst.Position {
		src, dst = dst, src
	}
	pitch := d.cfg.Pitch()
	x1 := d.cfg.LevelWidth*d.cfg.LinkBeginOffset + pitch*float64(src.Position)
	x2 := -d.cfg.LevelWidth*(d.cfg.LinkEndOffset-1) + pitch*float64(dst.Position)
	return LinkSegment{
		Segment: Segment{
			X1: x1, Y1: src.Energy,
			X2: x2, Y2: dst.Energy,
			Color: lk.Color,
			Style: lk.Style,
			Width: lk.Width,
			Alpha: lk.Alpha,
		},
		From: lk.A,
		To:   lk.B,
	}
}

func (d *Diagram) placeText(lb Label, energyRange float64) Text {
	t := Text{
		Text:      lb.Text,
		Color:     lb.Color,
		Placement: lb.Placement,
		Y:         lb.Energy,
		HAlign:    HAlignCenter,
		VAlign:    VAlignCenter,
	}
	switch lb.Placement {
	case PlaceTop:
		t.X = d.cfg.SlotCenter(lb.Position)
		t.Y += energyRange * lb.Offset
		t.VAlign = VAlignBottom
	case PlaceBottom:
		t.X = d.cfg.SlotCenter(lb.Position)
		t.Y -= energyRange * lb.Offset
		t.VAlign = VAlignTop
	case PlaceLeft:
		t.X = d.cfg.SlotLeft(lb.Position) - lb.Offset
		t.HAlign = HAlignRight
	case PlaceRight:
		t.X = d.cfg.SlotRight(lb.Position) + lb.Offset
		t.HAlign = HAlignLeft
	}
	return t
}
