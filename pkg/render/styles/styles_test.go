package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/energydiagram/pkg/diagram"
)

func TestSimpleRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderDefs(&buf)

	if buf.Len() != 0 {
		t.Errorf("RenderDefs() wrote %d bytes, want 0", buf.Len())
	}
}

func TestSimpleRenderLine(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		contains []string
		absent   []string
	}{
		{
			name: "solid level",
			line: Line{Class: "level", X1: 10, Y1: 20, X2: 40, Y2: 20, Color: "#000000", Width: 2, Alpha: 1},
			contains: []string{
				`<line x1="10.00" y1="20.00" x2="40.00" y2="20.00"`,
				`class="level"`,
				`stroke="#000000"`,
				`stroke-width="2.00"`,
				`stroke-opacity="1.00"`,
			},
			absent: []string{"stroke-dasharray"},
		},
		{
			name: "dashed link",
			line: Line{X1: 0, Y1: 0, X2: 1, Y2: 1, Color: "#ff0000", Width: 1, Alpha: 0.6, Dashes: []float64{3.7, 1.6}},
			contains: []string{
				`stroke-dasharray="3.70,1.60"`,
				`stroke-opacity="0.60"`,
			},
			absent: []string{"class="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderLine(&buf, tt.line)
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("RenderLine() missing %q in %s", want, out)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(out, bad) {
					t.Errorf("RenderLine() should not contain %q: %s", bad, out)
				}
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	t.Run("escapes and aligns", func(t *testing.T) {
		var buf bytes.Buffer
		WriteText(&buf, Text{X: 5, Y: 6, Text: "A<B & C", Color: "#0000ff", Size: 13.9, Anchor: "end", Baseline: "central"}, "serif")
		out := buf.String()
		for _, want := range []string{
			`text-anchor="end"`,
			`dominant-baseline="central"`,
			`font-family="serif"`,
			`font-size="13.90"`,
			`A&lt;B &amp; C`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("WriteText() missing %q in %s", want, out)
			}
		}
	})

	t.Run("multiline", func(t *testing.T) {
		var buf bytes.Buffer
		WriteText(&buf, Text{Text: "a\nb"}, "serif")
		if n := strings.Count(buf.String(), "<tspan"); n != 2 {
			t.Errorf("got %d tspans, want 2", n)
		}
	})

	t.Run("rotated", func(t *testing.T) {
		var buf bytes.Buffer
		WriteText(&buf, Text{X: 10, Y: 20, Text: "E", Rotate: 90}, "serif")
		if !strings.Contains(buf.String(), `transform="rotate(-90.00 10.00 20.00)"`) {
			t.Errorf("rotation missing: %s", buf.String())
		}
	})
}

func TestAlignmentMapping(t *testing.T) {
	tests := []struct {
		h      diagram.HAlign
		anchor string
	}{
		{diagram.HAlignLeft, "start"},
		{diagram.HAlignCenter, "middle"},
		{diagram.HAlignRight, "end"},
	}
	for _, tt := range tests {
		if got := Anchor(tt.h); got != tt.anchor {
			t.Errorf("Anchor(%s) = %q, want %q", tt.h, got, tt.anchor)
		}
	}

	vtests := []struct {
		v        diagram.VAlign
		baseline string
	}{
		{diagram.VAlignBottom, "text-after-edge"},
		{diagram.VAlignCenter, "central"},
		{diagram.VAlignTop, "text-before-edge"},
	}
	for _, tt := range vtests {
		if got := Baseline(tt.v); got != tt.baseline {
			t.Errorf("Baseline(%s) = %q, want %q", tt.v, got, tt.baseline)
		}
	}
}

func TestDashArray(t *testing.T) {
	if got := DashArray(nil); got != "" {
		t.Errorf("DashArray(nil) = %q, want empty", got)
	}
	if got := DashArray([]float64{1, 1.65}); got != ` stroke-dasharray="1.00,1.65"` {
		t.Errorf("DashArray() = %q", got)
	}
}
