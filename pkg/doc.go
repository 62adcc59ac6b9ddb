// Package pkg provides the core libraries for energydiagram.
//
// # Overview
//
// energydiagram draws reaction energy diagrams: horizontal level segments
// placed in position slots at their energies, dashed links between levels,
// and text labels. The pkg directory is organized into these areas:
//
//  1. [diagram] - Levels, labels, links and the layout computation
//  2. [io] - JSON, TOML and YAML documents describing a diagram
//  3. [render] - SVG, PNG, PDF, JSON and Graphviz output
//  4. [pipeline] - Orchestration (build → layout → render) with caching
//  5. [cache] - File and Redis artifact caches
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Document (JSON / TOML / YAML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [diagram] package (build + layout)
//	         ↓
//	    [render] packages (draw)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Build a diagram in code and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/energydiagram/pkg/diagram"
//	    "github.com/matzehuels/energydiagram/pkg/render/svg"
//	)
//
//	d := diagram.New(diagram.DefaultConfig())
//	r := d.AddLevel(0, 0)
//	ts := d.AddLevel(12.5, 1, diagram.LevelColor("r"))
//	p := d.AddLevel(-4.2, 2)
//	d.AddLink(r, ts)
//	d.AddLink(ts, p, diagram.LinkStyle(diagram.Dotted))
//	_ = d.AddLabel(12.5, "TS", diagram.AtPosition(1))
//
//	c := svg.New()
//	if _, err := d.Render(c, diagram.DefaultPlotOptions()); err != nil {
//	    return err
//	}
//	os.WriteFile("sn2.svg", c.Bytes(), 0o644)
//
// Or run a document through the cached pipeline:
//
//	doc, _ := io.ImportFile("sn2.yaml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg", "png"}})
//
// [diagram]: github.com/matzehuels/energydiagram/pkg/diagram
// [io]: github.com/matzehuels/energydiagram/pkg/io
// [render]: github.com/matzehuels/energydiagram/pkg/render
// [pipeline]: github.com/matzehuels/energydiagram/pkg/pipeline
// [cache]: github.com/matzehuels/energydiagram/pkg/cache
// [errors]: github.com/matzehuels/energydiagram/pkg/errors
// [observability]: github.com/matzehuels/energydiagram/pkg/observability
// [buildinfo]: github.com/matzehuels/energydiagram/pkg/buildinfo
package pkg
