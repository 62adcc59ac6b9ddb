// Package io reads and writes energy diagram documents.
//
// # Overview
//
// A document is a declarative description of one diagram: its levels,
// labels and links, the layout constants, and the presentation settings.
// The same document can be written as JSON, TOML or YAML:
//
//	{
//	  "title": "SN2 reaction",
//	  "levels": [
//	    {"energy": 0,    "position": 0},
//	    {"energy": 12.5, "position": 1, "color": "r"},
//	    {"energy": -4,   "position": 2}
//	  ],
//	  "labels": [
//	    {"level": 1, "text": "TS"},
//	    {"energy": -4, "position": 2, "text": "P", "placement": "bottom"}
//	  ],
//	  "links": [
//	    {"from": 0, "to": 1},
//	    {"from": 1, "to": 2, "alpha": 0.4}
//	  ]
//	}
//
// # Levels
//
// Levels are identified by their index in the levels array. Required fields
// are energy and position (a non-negative slot index). Optional: color
// (matplotlib letter, CSS name, C0-C9, tab: palette or #hex) and style
// ("-", "--", ":", "-.", "none" or the long names).
//
// # Labels
//
// A label either names a level (its energy and position are taken from that
// level) or gives energy and position directly. A label position may be
// negative. Optional: color, placement (top, bottom, left, right) and offset.
//
// # Links
//
// Links reference two level indices with from and to. Optional: color,
// style (dashed by default), width and alpha.
//
// # Validation
//
// [Validate] checks struct tags with go-playground/validator and then the
// cross references between sections. Errors carry codes from
// [github.com/matzehuels/energydiagram/pkg/errors] so callers can tell a bad
// placement from a dangling link. [Build] validates before constructing the
// diagram, so a document that builds always lays out.
package io
