package diagram

// Default layout constants.
const (
	DefaultLevelWidth       = 30.0
	DefaultSpace            = 20.0
	DefaultVerticalOffset   = 0.02
	DefaultHorizontalOffset = 6.0
	DefaultLinkEndOffset    = 1.021
	DefaultLinkBeginOffset  = 1.02
)

// NoOffset, set as VerticalOffset or HorizontalOffset, places default
// labels with no gap to their level or slot edge. A plain zero cannot say
// this because zero fields take the defaults.
const NoOffset = -1.0

// Config holds the six scalar constants that drive the layout.
//
// Zero fields are replaced by the defaults when passed to [New], so a
// partially filled Config only overrides what it sets. To place labels
// flush against their level, use [NoOffset] for the offsets.
type Config struct {
	// LevelWidth is the x extent of one level segment.
	LevelWidth float64 `json:"level_width,omitempty"`
	// Space is the gap between neighbouring slots.
	Space float64 `json:"space,omitempty"`
	// VerticalOffset is the distance between a level and its top/bottom
	// labels, as a fraction of (max energy - min energy).
	VerticalOffset float64 `json:"vertical_offset,omitempty"`
	// HorizontalOffset is the distance between a slot edge and its
	// left/right labels, in x units.
	HorizontalOffset float64 `json:"horizontal_offset,omitempty"`
	// LinkEndOffset pulls the end of a link back from the leading edge of
	// its target slot: the end sits LevelWidth*(LinkEndOffset-1) before it.
	LinkEndOffset float64 `json:"link_end_offset,omitempty"`
	// LinkBeginOffset pushes the start of a link past the trailing edge of
	// its source slot: the start sits at LevelWidth*LinkBeginOffset from the
	// slot's left edge.
	LinkBeginOffset float64 `json:"link_begin_offset,omitempty"`
}

// DefaultConfig returns the standard layout constants.
func DefaultConfig() Config {
	return Config{
		LevelWidth:       DefaultLevelWidth,
		Space:            DefaultSpace,
		VerticalOffset:   DefaultVerticalOffset,
		HorizontalOffset: DefaultHorizontalOffset,
		LinkEndOffset:    DefaultLinkEndOffset,
		LinkBeginOffset:  DefaultLinkBeginOffset,
	}
}

// WithDefaults returns a copy of c with zero fields set to their defaults.
// NoOffset is kept, so applying it twice changes nothing.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.LevelWidth == 0 {
		c.LevelWidth = d.LevelWidth
	}
	if c.Space == 0 {
		c.Space = d.Space
	}
	if c.VerticalOffset == 0 {
		c.VerticalOffset = d.VerticalOffset
	}
	if c.HorizontalOffset == 0 {
		c.HorizontalOffset = d.HorizontalOffset
	}
	if c.LinkEndOffset == 0 {
		c.LinkEndOffset = d.LinkEndOffset
	}
	if c.LinkBeginOffset == 0 {
		c.LinkBeginOffset = d.LinkBeginOffset
	}
	return c
}

// labelGap resolves an offset field to the gap used for new labels.
func labelGap(offset float64) float64 {
	if offset == NoOffset {
		return 0
	}
	return offset
}

// Pitch is the distance between the centers of two adjacent slots.
func (c Config) Pitch() float64 { return c.LevelWidth + c.Space }

// SlotCenter returns the x coordinate of the center of slot n.
func (c Config) SlotCenter(n int) float64 {
	return c.LevelWidth/2 + c.Pitch()*float64(n)
}

// SlotLeft returns the x coordinate of the leading edge of slot n.
func (c Config) SlotLeft(n int) float64 { return c.Pitch() * float64(n) }

// SlotRight returns the x coordinate of the trailing edge of slot n.
func (c Config) SlotRight(n int) float64 { return c.LevelWidth + c.Pitch()*float64(n) }
