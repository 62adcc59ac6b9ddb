// Package sink serializes computed diagram geometry.
package sink

import (
	"encoding/json"

	"github.com/matzehuels/energydiagram/pkg/diagram"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title  string
	config *diagram.Config
	style  string
}

// WithJSONTitle records the diagram title.
func WithJSONTitle(s string) JSONOption { return func(r *jsonRenderer) { r.title = s } }

// WithJSONConfig records the layout constants the geometry was computed
// with, so consumers can reproduce slot positions.
func WithJSONConfig(c diagram.Config) JSONOption {
	return func(r *jsonRenderer) { r.config = &c }
}

// WithJSONStyle records the style name (e.g. "simple", "handdrawn").
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	Title     string          `json:"title,omitempty"`
	Style     string          `json:"style,omitempty"`
	Config    *diagram.Config `json:"config,omitempty"`
	MinEnergy float64         `json:"min_energy"`
	MaxEnergy float64         `json:"max_energy"`
	Levels    []jsonLevel     `json:"levels"`
	Links     []jsonLink      `json:"links"`
	Labels    []jsonLabel     `json:"labels"`
	Ticks     []jsonTick      `json:"ticks"`
}

type jsonLevel struct {
	ID       int     `json:"id"`
	Position int     `json:"position"`
	Energy   float64 `json:"energy"`
	X1       float64 `json:"x1"`
	X2       float64 `json:"x2"`
	Color    string  `json:"color"`
	Style    string  `json:"style"`
}

type jsonLink struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
	Style string  `json:"style"`
	Width float64 `json:"width"`
	Alpha float64 `json:"alpha"`
}

type jsonLabel struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Placement string  `json:"placement"`
	HAlign    string  `json:"halign"`
	VAlign    string  `json:"valign"`
	Color     string  `json:"color"`
}

type jsonTick struct {
	Position int     `json:"position"`
	X        float64 `json:"x"`
	Label    string  `json:"label,omitempty"`
}

// RenderJSON writes the layout geometry as indented JSON. tickLabels, when
// non-nil, are attached to the ticks in position order.
func RenderJSON(l diagram.Layout, tickLabels []string, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:     r.title,
		Style:     r.style,
		Config:    r.config,
		MinEnergy: l.MinEnergy,
		MaxEnergy: l.MaxEnergy,
		Levels:    make([]jsonLevel, len(l.Levels)),
		Links:     make([]jsonLink, len(l.Links)),
		Labels:    make([]jsonLabel, len(l.Texts)),
		Ticks:     make([]jsonTick, len(l.Ticks)),
	}
	for i, s := range l.Levels {
		out.Levels[i] = jsonLevel{
			ID: s.ID, Position: s.Position, Energy: s.Energy,
			X1: s.X1, X2: s.X2,
			Color: s.Color, Style: string(s.Style),
		}
	}
	for i, s := range l.Links {
		out.Links[i] = jsonLink{
			From: s.From, To: s.To,
			X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2,
			Color: s.Color, Style: string(s.Style),
			Width: s.Width, Alpha: s.Alpha,
		}
	}
	for i, t := range l.Texts {
		out.Labels[i] = jsonLabel{
			Text: t.Text, X: t.X, Y: t.Y,
			Placement: string(t.Placement),
			HAlign:    string(t.HAlign),
			VAlign:    string(t.VAlign),
			Color:     t.Color,
		}
	}
	for i, tk := range l.Ticks {
		out.Ticks[i] = jsonTick{Position: tk.Position, X: tk.X}
		if i < len(tickLabels) {
			out.Ticks[i].Label = tickLabels[i]
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
