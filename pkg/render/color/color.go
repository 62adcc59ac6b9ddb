// Package color resolves matplotlib-style color specifications.
//
// Accepted forms:
//
//   - single-letter codes: b g r c m y k w
//   - Tableau palette names ("tab:blue") and cycle references ("C0".."C9")
//   - CSS color names ("darkred", "steelblue")
//   - hex strings ("#f00", "#1f77b4")
//   - grey levels as a decimal string in [0, 1] ("0.5")
//
// Parsing is case-insensitive except for the single-letter and cycle codes,
// which matplotlib also treats case-sensitively.
package color

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/energydiagram/pkg/errors"
)

var letters = map[string]colorful.Color{
	"b": {R: 0, G: 0, B: 1},
	"g": {R: 0, G: 0.5, B: 0},
	"r": {R: 1, G: 0, B: 0},
	"c": {R: 0, G: 0.75, B: 0.75},
	"m": {R: 0.75, G: 0, B: 0.75},
	"y": {R: 0.75, G: 0.75, B: 0},
	"k": {R: 0, G: 0, B: 0},
	"w": {R: 1, G: 1, B: 1},
}

// tableau is the default matplotlib property cycle, in order.
var tableau = []struct{ name, hex string }{
	{"blue", "#1f77b4"},
	{"orange", "#ff7f0e"},
	{"green", "#2ca02c"},
	{"red", "#d62728"},
	{"purple", "#9467bd"},
	{"brown", "#8c564b"},
	{"pink", "#e377c2"},
	{"gray", "#7f7f7f"},
	{"olive", "#bcbd22"},
	{"cyan", "#17becf"},
}

var named = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"cyan":        "#00ffff",
	"magenta":     "#ff00ff",
	"yellow":      "#ffff00",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"brown":       "#a52a2a",
	"pink":        "#ffc0cb",
	"gray":        "#808080",
	"grey":        "#808080",
	"darkgray":    "#a9a9a9",
	"darkgrey":    "#a9a9a9",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
	"dimgray":     "#696969",
	"silver":      "#c0c0c0",
	"navy":        "#000080",
	"teal":        "#008080",
	"olive":       "#808000",
	"maroon":      "#800000",
	"lime":        "#00ff00",
	"aqua":        "#00ffff",
	"fuchsia":     "#ff00ff",
	"darkred":     "#8b0000",
	"darkblue":    "#00008b",
	"darkgreen":   "#006400",
	"darkorange":  "#ff8c00",
	"crimson":     "#dc143c",
	"firebrick":   "#b22222",
	"tomato":      "#ff6347",
	"coral":       "#ff7f50",
	"gold":        "#ffd700",
	"goldenrod":   "#daa520",
	"indigo":      "#4b0082",
	"violet":      "#ee82ee",
	"orchid":      "#da70d6",
	"royalblue":   "#4169e1",
	"steelblue":   "#4682b4",
	"skyblue":     "#87ceeb",
	"dodgerblue":  "#1e90ff",
	"forestgreen": "#228b22",
	"seagreen":    "#2e8b57",
	"limegreen":   "#32cd32",
	"slategray":   "#708090",
	"chocolate":   "#d2691e",
	"tan":         "#d2b48c",
	"salmon":      "#fa8072",
	"turquoise":   "#40e0d0",
}

// Parse resolves a color specification. The empty string is black.
func Parse(spec string) (colorful.Color, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return letters["k"], nil
	}
	if c, ok := letters[s]; ok {
		return c, nil
	}
	if len(s) == 2 && s[0] == 'C' && s[1] >= '0' && s[1] <= '9' {
		return mustHex(tableau[s[1]-'0'].hex), nil
	}

	lower := strings.ToLower(s)
	if name, ok := strings.CutPrefix(lower, "tab:"); ok {
		if name == "grey" {
			name = "gray"
		}
		for _, t := range tableau {
			if t.name == name {
				return mustHex(t.hex), nil
			}
		}
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown tableau color %q", spec)
	}
	if hex, ok := named[lower]; ok {
		return mustHex(hex), nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", spec)
		}
		return c, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 || v > 1 {
			return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "grey level %q outside [0, 1]", spec)
		}
		return colorful.Color{R: v, G: v, B: v}, nil
	}
	return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", spec)
}

// Hex resolves spec and formats it as "#rrggbb".
func Hex(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// HexOr is like Hex but returns fallback when spec cannot be parsed.
func HexOr(spec, fallback string) string {
	if h, err := Hex(spec); err == nil {
		return h
	}
	return fallback
}

// Valid reports whether spec parses.
func Valid(spec string) bool {
	_, err := Parse(spec)
	return err == nil
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
