// Package diagram lays out chemical-reaction energy diagrams.
//
// # Overview
//
// An energy diagram is a sequence of short horizontal "levels" placed on a
// discretized reaction coordinate. Each level sits at a caller-supplied
// energy (the y value) and an integer position (the x slot). Levels can be
// annotated with text labels and connected by dashed links to show reaction
// pathways.
//
// A [Diagram] accumulates three record kinds and turns them into geometry:
//
//   - [Diagram.AddLevel]: a level at (energy, position), identified by its
//     insertion index
//   - [Diagram.AddLabel]: text at (energy, position) placed above, below, left
//     or right of the slot
//   - [Diagram.AddLink]: a connector between two level IDs
//
// # Geometry
//
// Position n maps to a slot whose center is
//
//	x = LevelWidth/2 + n*(LevelWidth+Space)
//
// Levels span the slot width. Links start just past the trailing edge of the
// earlier slot and end just before the leading edge of the later one; the
// [Config.LinkBeginOffset] and [Config.LinkEndOffset] factors keep the dashed
// line from touching the level strokes. Top and bottom labels are pushed away
// from the level by a fraction of the total energy range; left and right
// labels by a fixed x distance.
//
// [Diagram.Layout] is pure: it reads the accumulated records and returns a
// [Layout] without modifying anything, so it can be called repeatedly.
//
// # Rendering
//
// [Diagram.Render] computes the layout and draws it into a [Canvas], then
// applies [PlotOptions] (spines, axes, tick labels, y padding, title). The
// canvas is the only rendering dependency; concrete backends live under
// pkg/render.
//
//	d := diagram.New(diagram.DefaultConfig())
//	r := d.AddLevel(0, 0)
//	ts := d.AddLevel(19.7, 1)
//	d.AddLink(r, ts)
//	_ = d.AddLabel(19.7, "TS1", diagram.AtPosition(1))
//	layout, err := d.Render(canvas, diagram.DefaultPlotOptions())
package diagram
