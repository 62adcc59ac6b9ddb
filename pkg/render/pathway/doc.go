// Package pathway renders an energy diagram as a Graphviz graph.
//
// Each level becomes a node and each link an edge, with levels that share a
// position grouped into one rank. This gives a compact view of the reaction
// network when the energies themselves matter less than the connectivity:
//
//	dot, err := pathway.ToDOT(d, pathway.Options{})
//	svg, err := pathway.RenderSVG(dot)
//
// Node fill colors follow the level colors; edges inherit the link color and
// line style.
package pathway
