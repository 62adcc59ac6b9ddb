package sink

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/energydiagram/pkg/diagram"
)

func layoutFor(t *testing.T) diagram.Layout {
	t.Helper()
	d := diagram.New(diagram.DefaultConfig())
	d.AddLevel(0, 0)
	d.AddLevel(10, 2, diagram.LevelColor("r"))
	d.AddLink(0, 1)
	if err := d.AddLabel(10, "TS", diagram.AtPosition(2), diagram.Placed(diagram.PlaceLeft)); err != nil {
		t.Fatal(err)
	}
	l, err := d.Layout()
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(layoutFor(t), []string{"R", "P"},
		WithJSONTitle("SN2"), WithJSONStyle("simple"), WithJSONConfig(diagram.DefaultConfig()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Title != "SN2" || out.Style != "simple" {
		t.Errorf("title/style = %q/%q", out.Title, out.Style)
	}
	if out.Config == nil || out.Config.LevelWidth != diagram.DefaultLevelWidth {
		t.Errorf("Config = %+v", out.Config)
	}
	if out.MinEnergy != 0 || out.MaxEnergy != 10 {
		t.Errorf("energy extent = [%v, %v]", out.MinEnergy, out.MaxEnergy)
	}
	if len(out.Levels) != 2 || out.Levels[1].X1 != 100 || out.Levels[1].Color != "r" {
		t.Errorf("Levels = %+v", out.Levels)
	}
	if len(out.Links) != 1 || out.Links[0].Style != "--" || out.Links[0].Alpha != diagram.DefaultLinkAlpha {
		t.Errorf("Links = %+v", out.Links)
	}
	if len(out.Labels) != 1 || out.Labels[0].HAlign != "right" || out.Labels[0].Placement != "left" || out.Labels[0].X != 94 {
		t.Errorf("Labels = %+v", out.Labels)
	}
	if len(out.Ticks) != 2 || out.Ticks[0].Label != "R" || out.Ticks[1].Label != "P" || out.Ticks[1].X != 115 {
		t.Errorf("Ticks = %+v", out.Ticks)
	}
}

func TestRenderJSON_Empty(t *testing.T) {
	data, err := RenderJSON(diagram.Layout{}, nil)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"levels", "links", "labels", "ticks"} {
		v, ok := raw[key].([]any)
		if !ok || len(v) != 0 {
			t.Errorf("%s = %v, want empty array", key, raw[key])
		}
	}
	if _, ok := raw["title"]; ok {
		t.Error("empty title should be omitted")
	}
}

func TestRenderJSON_FewerLabelsThanTicks(t *testing.T) {
	data, err := RenderJSON(layoutFor(t), []string{"only"})
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Ticks[0].Label != "only" || out.Ticks[1].Label != "" {
		t.Errorf("Ticks = %+v", out.Ticks)
	}
}
