package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
)

// WriteJSON encodes doc as indented JSON. The output can be re-read with
// [ReadJSON].
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes doc as YAML.
func WriteYAML(doc *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteTOML encodes doc as TOML.
func WriteTOML(doc *Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes doc in format f.
func Write(doc *Document, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(doc, w)
	case FormatTOML:
		return WriteTOML(doc, w)
	case FormatYAML:
		return WriteYAML(doc, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", string(f))
}

// ExportFile writes doc to path in the format given by its extension.
func ExportFile(doc *Document, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(doc, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FromDiagram converts a diagram and its plot options back to a document.
// Label offsets are always written since the diagram stores them resolved.
func FromDiagram(d *diagram.Diagram, opts diagram.PlotOptions) *Document {
	cfg := d.Config()
	doc := &Document{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Config: Config{
			LevelWidth:       cfg.LevelWidth,
			Space:            cfg.Space,
			VerticalOffset:   documentOffset(cfg.VerticalOffset),
			HorizontalOffset: documentOffset(cfg.HorizontalOffset),
			LinkEndOffset:    cfg.LinkEndOffset,
			LinkBeginOffset:  cfg.LinkBeginOffset,
		},
		Plot:   plotFromOptions(opts),
		Levels: make([]Level, 0, len(d.Levels())),
	}

	for _, l := range d.Levels() {
		doc.Levels = append(doc.Levels, Level{
			Energy:   l.Energy,
			Position: l.Position,
			Color:    nonDefault(l.Color, diagram.DefaultColor),
			Style:    nonDefault(string(l.Style), string(diagram.Solid)),
		})
	}
	for _, lb := range d.Labels() {
		energy, pos, off := lb.Energy, lb.Position, lb.Offset
		doc.Labels = append(doc.Labels, Label{
			Energy:    &energy,
			Position:  &pos,
			Text:      lb.Text,
			Color:     nonDefault(lb.Color, diagram.DefaultColor),
			Placement: nonDefault(string(lb.Placement), string(diagram.PlaceTop)),
			Offset:    &off,
		})
	}
	for _, lk := range d.Links() {
		out := Link{
			From:  lk.A,
			To:    lk.B,
			Color: nonDefault(lk.Color, diagram.DefaultColor),
			Style: nonDefault(string(lk.Style), string(diagram.Dashed)),
		}
		if lk.Width != diagram.DefaultLinkWidth {
			w := lk.Width
			out.Width = &w
		}
		if lk.Alpha != diagram.DefaultLinkAlpha {
			a := lk.Alpha
			out.Alpha = &a
		}
		doc.Links = append(doc.Links, out)
	}
	return doc
}

func plotFromOptions(opts diagram.PlotOptions) Plot {
	def := diagram.DefaultPlotOptions()
	var p Plot
	if opts.Spines != def.Spines {
		s := Spines(opts.Spines)
		p.Spines = &s
	}
	if opts.XAxisVisible != def.XAxisVisible {
		v := opts.XAxisVisible
		p.XAxis = &v
	}
	if opts.YAxisVisible != def.YAxisVisible {
		v := opts.YAxisVisible
		p.YAxis = &v
	}
	p.XTickLabels = append([]string(nil), opts.XTickLabels...)
	if opts.XTickLabelSize != def.XTickLabelSize {
		p.XTickLabelSize = opts.XTickLabelSize
	}
	p.YBins = opts.YBins
	p.FigureWidth, p.FigureHeight = opts.FigureWidth, opts.FigureHeight
	if opts.YLimitOffset != def.YLimitOffset {
		v := opts.YLimitOffset
		p.YLimitOffset = &v
	}
	return p
}

func nonDefault(v, def string) string {
	if v == def {
		return ""
	}
	return v
}

// documentOffset is the inverse of labelOffset for a resolved config.
func documentOffset(v float64) *float64 {
	if v == diagram.NoOffset {
		v = 0
	}
	return &v
}
