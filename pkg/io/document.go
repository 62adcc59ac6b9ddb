package io

import (
	"github.com/matzehuels/energydiagram/pkg/diagram"
)

// Document is the serialized form of a diagram.
type Document struct {
	Title  string  `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty" validate:"max=256"`
	XLabel string  `json:"xlabel,omitempty" toml:"xlabel,omitempty" yaml:"xlabel,omitempty" validate:"max=256"`
	YLabel string  `json:"ylabel,omitempty" toml:"ylabel,omitempty" yaml:"ylabel,omitempty" validate:"max=256"`
	Config Config  `json:"config,omitzero" toml:"config,omitempty" yaml:"config,omitempty"`
	Plot   Plot    `json:"plot,omitzero" toml:"plot,omitempty" yaml:"plot,omitempty"`
	Levels []Level `json:"levels" toml:"levels" yaml:"levels" validate:"max=10000,dive"`
	Labels []Label `json:"labels,omitempty" toml:"labels,omitempty" yaml:"labels,omitempty" validate:"max=10000,dive"`
	Links  []Link  `json:"links,omitempty" toml:"links,omitempty" yaml:"links,omitempty" validate:"max=10000,dive"`
}

// Config overrides layout constants. Zero or omitted fields keep the
// defaults, except the label offsets: an explicit 0 there places labels with
// no gap, and only an omitted offset keeps the default.
type Config struct {
	LevelWidth       float64  `json:"level_width,omitempty" toml:"level_width,omitempty" yaml:"level_width,omitempty" validate:"gte=0"`
	Space            float64  `json:"space,omitempty" toml:"space,omitempty" yaml:"space,omitempty" validate:"gte=0"`
	VerticalOffset   *float64 `json:"vertical_offset,omitempty" toml:"vertical_offset,omitempty" yaml:"vertical_offset,omitempty" validate:"omitempty,gte=0"`
	HorizontalOffset *float64 `json:"horizontal_offset,omitempty" toml:"horizontal_offset,omitempty" yaml:"horizontal_offset,omitempty" validate:"omitempty,gte=0"`
	LinkEndOffset    float64  `json:"link_end_offset,omitempty" toml:"link_end_offset,omitempty" yaml:"link_end_offset,omitempty" validate:"gte=0"`
	LinkBeginOffset  float64  `json:"link_begin_offset,omitempty" toml:"link_begin_offset,omitempty" yaml:"link_begin_offset,omitempty" validate:"gte=0"`
}

// Plot holds presentation settings. Unset fields keep
// [diagram.DefaultPlotOptions].
type Plot struct {
	Spines         *Spines  `json:"spines,omitempty" toml:"spines,omitempty" yaml:"spines,omitempty"`
	XAxis          *bool    `json:"x_axis,omitempty" toml:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	YAxis          *bool    `json:"y_axis,omitempty" toml:"y_axis,omitempty" yaml:"y_axis,omitempty"`
	XTickLabels    []string `json:"xtick_labels,omitempty" toml:"xtick_labels,omitempty" yaml:"xtick_labels,omitempty" validate:"max=1000,dive,max=256"`
	XTickLabelSize float64  `json:"xtick_label_size,omitempty" toml:"xtick_label_size,omitempty" yaml:"xtick_label_size,omitempty" validate:"gte=0,lte=200"`
	YBins          int      `json:"ybins,omitempty" toml:"ybins,omitempty" yaml:"ybins,omitempty" validate:"gte=0,lte=100"`
	FigureWidth    float64  `json:"figure_width,omitempty" toml:"figure_width,omitempty" yaml:"figure_width,omitempty" validate:"gte=0,lte=100"`
	FigureHeight   float64  `json:"figure_height,omitempty" toml:"figure_height,omitempty" yaml:"figure_height,omitempty" validate:"gte=0,lte=100"`
	YLimitOffset   *float64 `json:"ylimit_offset,omitempty" toml:"ylimit_offset,omitempty" yaml:"ylimit_offset,omitempty" validate:"omitempty,gte=0,lte=10"`
}

// Spines lists which plot borders are drawn. When present, all four are
// taken as given.
type Spines struct {
	Top    bool `json:"top" toml:"top" yaml:"top"`
	Right  bool `json:"right" toml:"right" yaml:"right"`
	Bottom bool `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   bool `json:"left" toml:"left" yaml:"left"`
}

// Level is one energy level.
type Level struct {
	Energy   float64 `json:"energy" toml:"energy" yaml:"energy" validate:"finite"`
	Position int     `json:"position" toml:"position" yaml:"position" validate:"min=0"`
	Color    string  `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,colorspec"`
	Style    string  `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty" validate:"omitempty,linestyle"`
}

// Label is a text annotation. Either Level or Energy must be set; Position
// defaults to the referenced level's position, else 0.
type Label struct {
	Level     *int     `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,min=0"`
	Energy    *float64 `json:"energy,omitempty" toml:"energy,omitempty" yaml:"energy,omitempty" validate:"omitempty,finite"`
	Position  *int     `json:"position,omitempty" toml:"position,omitempty" yaml:"position,omitempty"`
	Text      string   `json:"text" toml:"text" yaml:"text" validate:"max=256"`
	Color     string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,colorspec"`
	Placement string   `json:"placement,omitempty" toml:"placement,omitempty" yaml:"placement,omitempty" validate:"omitempty,oneof=top bottom left right"`
	Offset    *float64 `json:"offset,omitempty" toml:"offset,omitempty" yaml:"offset,omitempty" validate:"omitempty,finite"`
}

// Link connects two levels by index.
type Link struct {
	From  int      `json:"from" toml:"from" yaml:"from" validate:"min=0"`
	To    int      `json:"to" toml:"to" yaml:"to" validate:"min=0"`
	Color string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,colorspec"`
	Style string   `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty" validate:"omitempty,linestyle"`
	Width *float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty" validate:"omitempty,gt=0,lte=100"`
	Alpha *float64 `json:"alpha,omitempty" toml:"alpha,omitempty" yaml:"alpha,omitempty" validate:"omitempty,gte=0,lte=1"`
}

func (c Config) diagramConfig() diagram.Config {
	return diagram.Config{
		LevelWidth:       c.LevelWidth,
		Space:            c.Space,
		VerticalOffset:   labelOffset(c.VerticalOffset),
		HorizontalOffset: labelOffset(c.HorizontalOffset),
		LinkEndOffset:    c.LinkEndOffset,
		LinkBeginOffset:  c.LinkBeginOffset,
	}.WithDefaults()
}

// labelOffset maps an optional document offset onto diagram.Config, where
// zero means "default" and diagram.NoOffset means no gap.
func labelOffset(v *float64) float64 {
	switch {
	case v == nil:
		return 0
	case *v == 0:
		return diagram.NoOffset
	}
	return *v
}

// plotOptions merges the document settings over the defaults.
func (d *Document) plotOptions() diagram.PlotOptions {
	opts := diagram.DefaultPlotOptions()
	p := d.Plot
	if p.Spines != nil {
		opts.Spines = diagram.Spines(*p.Spines)
	}
	if p.XAxis != nil {
		opts.XAxisVisible = *p.XAxis
	}
	if p.YAxis != nil {
		opts.YAxisVisible = *p.YAxis
	}
	if len(p.XTickLabels) > 0 {
		opts.XTickLabels = append([]string(nil), p.XTickLabels...)
	}
	if p.XTickLabelSize > 0 {
		opts.XTickLabelSize = p.XTickLabelSize
	}
	opts.YBins = p.YBins
	opts.FigureWidth, opts.FigureHeight = p.FigureWidth, p.FigureHeight
	if p.YLimitOffset != nil {
		opts.YLimitOffset = *p.YLimitOffset
	}
	opts.Title, opts.XLabel, opts.YLabel = d.Title, d.XLabel, d.YLabel
	return opts
}
