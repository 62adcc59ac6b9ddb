package io

import (
	"github.com/matzehuels/energydiagram/pkg/diagram"
)

// Build validates doc and constructs the diagram it describes together with
// its presentation settings.
func Build(doc *Document) (*diagram.Diagram, diagram.PlotOptions, error) {
	if err := Validate(doc); err != nil {
		return nil, diagram.PlotOptions{}, err
	}

	d := diagram.New(doc.Config.diagramConfig())
	for _, l := range doc.Levels {
		var opts []diagram.LevelOption
		if l.Color != "" {
			opts = append(opts, diagram.LevelColor(l.Color))
		}
		if l.Style != "" {
			ls, err := diagram.ParseLineStyle(l.Style)
			if err != nil {
				return nil, diagram.PlotOptions{}, err
			}
			opts = append(opts, diagram.LevelStyle(ls))
		}
		d.AddLevel(l.Energy, l.Position, opts...)
	}

	for _, lb := range doc.Labels {
		energy, pos := 0.0, 0
		if lb.Level != nil {
			ref := doc.Levels[*lb.Level]
			energy, pos = ref.Energy, ref.Position
		}
		if lb.Energy != nil {
			energy = *lb.Energy
		}
		if lb.Position != nil {
			pos = *lb.Position
		}
		opts := []diagram.LabelOption{diagram.AtPosition(pos)}
		if lb.Color != "" {
			opts = append(opts, diagram.LabelColor(lb.Color))
		}
		if lb.Placement != "" {
			opts = append(opts, diagram.Placed(diagram.Placement(lb.Placement)))
		}
		if lb.Offset != nil {
			opts = append(opts, diagram.WithOffset(*lb.Offset))
		}
		if err := d.AddLabel(energy, lb.Text, opts...); err != nil {
			return nil, diagram.PlotOptions{}, err
		}
	}

	for _, lk := range doc.Links {
		var opts []diagram.LinkOption
		if lk.Color != "" {
			opts = append(opts, diagram.LinkColor(lk.Color))
		}
		if lk.Style != "" {
			ls, err := diagram.ParseLineStyle(lk.Style)
			if err != nil {
				return nil, diagram.PlotOptions{}, err
			}
			opts = append(opts, diagram.LinkStyle(ls))
		}
		if lk.Width != nil {
			opts = append(opts, diagram.LinkWidth(*lk.Width))
		}
		if lk.Alpha != nil {
			opts = append(opts, diagram.LinkAlpha(*lk.Alpha))
		}
		d.AddLink(lk.From, lk.To, opts...)
	}

	return d, doc.plotOptions(), nil
}
