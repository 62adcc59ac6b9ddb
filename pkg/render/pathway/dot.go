package pathway

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/render"
	"github.com/matzehuels/energydiagram/pkg/render/color"
)

// Options configures pathway rendering.
type Options struct {
	// Detailed adds the position and energy to every node label.
	// When false, nodes show their label text, or the energy if unlabeled.
	Detailed bool
	// Unit is appended to energies, e.g. "kcal/mol".
	Unit string
}

// ToDOT converts a diagram to Graphviz DOT format. Links are oriented from
// the earlier position to the later one. It fails with the same errors as
// [diagram.Diagram.Layout].
func ToDOT(d *diagram.Diagram, opts Options) (string, error) {
	l, err := d.Layout()
	if err != nil {
		return "", err
	}
	levels := d.Levels()
	labels := d.Labels()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for id, lv := range levels {
		label := fmtLabel(id, lv, labels, opts)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if lv.Color != diagram.DefaultColor {
			attrs = append(attrs, fmt.Sprintf("color=%q", color.HexOr(lv.Color, "#000000")))
		}
		if lv.Style != diagram.Solid {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, tk := range l.Ticks {
		var ids []string
		for id, lv := range levels {
			if lv.Position == tk.Position {
				ids = append(ids, strconv.Quote(nodeID(id)))
			}
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	for _, lk := range l.Links {
		from, to := lk.From, lk.To
		if levels[from].Position > levels[to].Position {
			from, to = to, from
		}
		attrs := []string{fmt.Sprintf("color=%q", color.HexOr(lk.Color, "#000000"))}
		if style := edgeStyle(lk.Style); style != "" {
			attrs = append(attrs, "style="+style)
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(from), nodeID(to), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(id int) string { return fmt.Sprintf("L%d", id) }

func edgeStyle(s diagram.LineStyle) string {
	switch s {
	case diagram.Dashed, diagram.DashDot:
		return "dashed"
	case diagram.Dotted:
		return "dotted"
	case diagram.NoLine:
		return "invis"
	}
	return ""
}

func fmtEnergy(e float64, unit string) string {
	s := strconv.FormatFloat(e, 'f', -1, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// fmtLabel joins the texts of labels anchored at the level's position and
// energy. Unlabeled levels show their energy.
func fmtLabel(id int, lv diagram.Level, labels []diagram.Label, opts Options) string {
	var texts []string
	for _, lb := range labels {
		if lb.Position == lv.Position && math.Abs(lb.Energy-lv.Energy) < 1e-9 && lb.Text != "" {
			texts = append(texts, lb.Text)
		}
	}
	name := strings.Join(texts, " / ")
	if name == "" {
		name = "E = " + fmtEnergy(lv.Energy, opts.Unit)
		if !opts.Detailed {
			return name
		}
		return fmt.Sprintf("%s\nlevel: %d\nposition: %d", name, id, lv.Position)
	}
	if !opts.Detailed {
		return name
	}
	return fmt.Sprintf("%s\nE = %s\nposition: %d", name, fmtEnergy(lv.Energy, opts.Unit), lv.Position)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel viewBox so the SVG scales like the diagram canvases.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
