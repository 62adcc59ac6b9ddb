package diagram

import (
	"testing"

	"github.com/matzehuels/energydiagram/pkg/errors"
)

func TestNewAppliesDefaults(t *testing.T) {
	d := New(Config{Space: 40})
	cfg := d.Config()

	if cfg.Space != 40 {
		t.Errorf("Space = %v, want 40", cfg.Space)
	}
	if cfg.LevelWidth != DefaultLevelWidth {
		t.Errorf("LevelWidth = %v, want %v", cfg.LevelWidth, DefaultLevelWidth)
	}
	if cfg.LinkBeginOffset != DefaultLinkBeginOffset {
		t.Errorf("LinkBeginOffset = %v, want %v", cfg.LinkBeginOffset, DefaultLinkBeginOffset)
	}
}

func TestNoOffsetConfig(t *testing.T) {
	cfg := Config{VerticalOffset: NoOffset, HorizontalOffset: NoOffset}.WithDefaults()
	if again := cfg.WithDefaults(); again != cfg {
		t.Errorf("WithDefaults not idempotent: %+v then %+v", cfg, again)
	}
	if cfg.VerticalOffset != NoOffset || cfg.HorizontalOffset != NoOffset {
		t.Errorf("offsets = %v, %v, want NoOffset kept", cfg.VerticalOffset, cfg.HorizontalOffset)
	}

	d := New(cfg)
	for _, p := range []Placement{PlaceTop, PlaceBottom, PlaceLeft, PlaceRight} {
		if err := d.AddLabel(5, string(p), Placed(p)); err != nil {
			t.Fatalf("AddLabel(%s): %v", p, err)
		}
	}
	for _, l := range d.Labels() {
		if l.Offset != 0 {
			t.Errorf("%s label offset = %v, want 0", l.Placement, l.Offset)
		}
	}
}

func TestConfigSlots(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		slot                int
		left, center, right float64
	}{
		{0, 0, 15, 30},
		{1, 50, 65, 80},
		{4, 200, 215, 230},
	}

	for _, tt := range tests {
		if got := cfg.SlotLeft(tt.slot); got != tt.left {
			t.Errorf("SlotLeft(%d) = %v, want %v", tt.slot, got, tt.left)
		}
		if got := cfg.SlotCenter(tt.slot); got != tt.center {
			t.Errorf("SlotCenter(%d) = %v, want %v", tt.slot, got, tt.center)
		}
		if got := cfg.SlotRight(tt.slot); got != tt.right {
			t.Errorf("SlotRight(%d) = %v, want %v", tt.slot, got, tt.right)
		}
	}
}

func TestAddLevel(t *testing.T) {
	d := New(DefaultConfig())

	first := d.AddLevel(0, 0)
	second := d.AddLevel(-12.5, 3, LevelColor("r"), LevelStyle(Dotted))

	if first != 0 || second != 1 {
		t.Fatalf("IDs = %d, %d, want 0, 1", first, second)
	}

	l, ok := d.Level(second)
	if !ok {
		t.Fatal("Level(1) not found")
	}
	if l.Energy != -12.5 || l.Position != 3 || l.Color != "r" || l.Style != Dotted {
		t.Errorf("Level(1) = %+v", l)
	}

	def, _ := d.Level(first)
	if def.Color != DefaultColor || def.Style != Solid {
		t.Errorf("default level styling = %q %q, want %q %q", def.Color, def.Style, DefaultColor, Solid)
	}

	if _, ok := d.Level(2); ok {
		t.Error("Level(2) should not exist")
	}
	if _, ok := d.Level(-1); ok {
		t.Error("Level(-1) should not exist")
	}
}

func TestAddLabel(t *testing.T) {
	tests := []struct {
		name       string
		opts       []LabelOption
		wantPlace  Placement
		wantOffset float64
	}{
		{"defaults to top", nil, PlaceTop, DefaultVerticalOffset},
		{"bottom uses vertical offset", []LabelOption{Placed(PlaceBottom)}, PlaceBottom, DefaultVerticalOffset},
		{"left uses horizontal offset", []LabelOption{Placed(PlaceLeft)}, PlaceLeft, DefaultHorizontalOffset},
		{"right uses horizontal offset", []LabelOption{Placed(PlaceRight)}, PlaceRight, DefaultHorizontalOffset},
		{"explicit offset", []LabelOption{Placed(PlaceRight), WithOffset(2)}, PlaceRight, 2},
		{"explicit zero offset", []LabelOption{WithOffset(0)}, PlaceTop, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(DefaultConfig())
			if err := d.AddLabel(5, "A", tt.opts...); err != nil {
				t.Fatalf("AddLabel() error: %v", err)
			}
			labels := d.Labels()
			if len(labels) != 1 {
				t.Fatalf("len(Labels()) = %d, want 1", len(labels))
			}
			if labels[0].Placement != tt.wantPlace {
				t.Errorf("Placement = %q, want %q", labels[0].Placement, tt.wantPlace)
			}
			if labels[0].Offset != tt.wantOffset {
				t.Errorf("Offset = %v, want %v", labels[0].Offset, tt.wantOffset)
			}
		})
	}
}

func TestAddLabelRejectsUnknownPlacement(t *testing.T) {
	d := New(DefaultConfig())

	err := d.AddLabel(1, "x", Placed("diagonal"))
	if err == nil {
		t.Fatal("AddLabel() with unknown placement should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPlacement) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPlacement)
	}
	if n := len(d.Labels()); n != 0 {
		t.Errorf("rejected label was stored (%d labels)", n)
	}
}

func TestAddLinkNormalizesOrder(t *testing.T) {
	d := New(DefaultConfig())
	d.AddLink(4, 1)
	d.AddLink(2, 3, LinkColor("b"), LinkStyle(Solid), LinkWidth(2), LinkAlpha(1))

	links := d.Links()
	if links[0].A != 1 || links[0].B != 4 {
		t.Errorf("link 0 = (%d, %d), want (1, 4)", links[0].A, links[0].B)
	}
	if links[0].Style != Dashed || links[0].Alpha != DefaultLinkAlpha || links[0].Width != DefaultLinkWidth {
		t.Errorf("link 0 defaults = %+v", links[0])
	}
	if links[1].Color != "b" || links[1].Style != Solid || links[1].Width != 2 || links[1].Alpha != 1 {
		t.Errorf("link 1 options not applied: %+v", links[1])
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	d := New(DefaultConfig())
	d.AddLevel(1, 0)

	levels := d.Levels()
	levels[0].Energy = 99

	if l, _ := d.Level(0); l.Energy != 1 {
		t.Errorf("mutating Levels() result changed the diagram: energy = %v", l.Energy)
	}
}

func TestStats(t *testing.T) {
	d := New(DefaultConfig())
	if s := d.Stats(); s != (Stats{}) {
		t.Errorf("empty Stats() = %+v, want zero", s)
	}

	d.AddLevel(3, 0)
	d.AddLevel(-7, 2)
	d.AddLevel(12, 2)
	d.AddLink(0, 1)
	_ = d.AddLabel(3, "R")

	want := Stats{Levels: 3, Labels: 1, Links: 1, Positions: 2, MinEnergy: -7, MaxEnergy: 12}
	if s := d.Stats(); s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		input   string
		want    Placement
		wantErr bool
	}{
		{"top", PlaceTop, false},
		{"Bottom", PlaceBottom, false},
		{" left ", PlaceLeft, false},
		{"RIGHT", PlaceRight, false},
		{"", "", true},
		{"center", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlacement(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlacement(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlacement(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidPlacement) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPlacement)
			}
		})
	}
}

func TestParseLineStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    LineStyle
		wantErr bool
	}{
		{"", Solid, false},
		{"-", Solid, false},
		{"solid", Solid, false},
		{"--", Dashed, false},
		{"dashed", Dashed, false},
		{":", Dotted, false},
		{"-.", DashDot, false},
		{"none", NoLine, false},
		{"wavy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLineStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLineStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLineStyle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLineStyleDashes(t *testing.T) {
	if d := Solid.Dashes(2); d != nil {
		t.Errorf("Solid.Dashes() = %v, want nil", d)
	}

	d := Dashed.Dashes(2)
	if len(d) != 2 || d[0] != 7.4 || d[1] != 3.2 {
		t.Errorf("Dashed.Dashes(2) = %v, want [7.4 3.2]", d)
	}

	if d := DashDot.Dashes(0); len(d) != 4 || d[0] != 6.4 {
		t.Errorf("DashDot.Dashes(0) = %v, want width treated as 1", d)
	}
}
