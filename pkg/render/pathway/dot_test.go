package pathway

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
)

func sample(t *testing.T) *diagram.Diagram {
	t.Helper()
	d := diagram.New(diagram.DefaultConfig())
	d.AddLevel(0, 0)
	d.AddLevel(20, 1, diagram.LevelColor("r"))
	d.AddLevel(-5, 2)
	d.AddLevel(3, 2, diagram.LevelStyle(diagram.Dotted))
	d.AddLink(0, 1)
	d.AddLink(1, 2, diagram.LinkStyle(diagram.Dotted))
	d.AddLink(1, 3, diagram.LinkColor("b"))
	if err := d.AddLabel(20, "TS1", diagram.AtPosition(1)); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestToDOT_Basic(t *testing.T) {
	dot, err := ToDOT(sample(t), Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"L0" [label="E = 0"]`,
		`"L1" [label="TS1", color="#ff0000"]`,
		`"L3" [label="E = 3", style="rounded,filled,dashed"]`,
		`{ rank=same; "L2"; "L3"; }`,
		`"L0" -> "L1" [color="#000000", style=dashed]`,
		`"L1" -> "L2" [color="#000000", style=dotted]`,
		`"L1" -> "L3" [color="#0000ff", style=dashed]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot, err := ToDOT(sample(t), Options{Detailed: true, Unit: "kcal/mol"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, `TS1\nE = 20 kcal/mol\nposition: 1`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `E = -5 kcal/mol\nlevel: 2\nposition: 2`) {
		t.Errorf("detailed unlabeled level missing:\n%s", dot)
	}
}

func TestToDOT_OrientsByPosition(t *testing.T) {
	d := diagram.New(diagram.DefaultConfig())
	d.AddLevel(0, 3)
	d.AddLevel(1, 0)
	d.AddLink(0, 1)

	dot, err := ToDOT(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, `"L1" -> "L0"`) {
		t.Errorf("edge should run from position 0 to 3:\n%s", dot)
	}
}

func TestToDOT_InvalidLink(t *testing.T) {
	d := diagram.New(diagram.DefaultConfig())
	d.AddLevel(0, 0)
	d.AddLink(0, 4)

	if _, err := ToDOT(d, Options{}); !errors.Is(err, errors.ErrCodeInvalidLink) {
		t.Errorf("ToDOT() error = %v, want %s", err, errors.ErrCodeInvalidLink)
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ToDOT(sample(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() root not normalized: %.200s", out)
	}
	if !strings.Contains(out, "TS1") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	untouched := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(untouched)) != string(untouched) {
		t.Error("normalizeViewBox() changed an SVG without viewBox")
	}
}
