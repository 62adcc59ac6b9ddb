// Package pipeline provides the document → diagram → artifacts pipeline
// shared by the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: validate a [docio.Document] and construct the diagram
//  2. Layout: compute level, link and label geometry
//  3. Render: produce each requested format (SVG, PNG, PDF, JSON, DOT)
//
// Rendered artifacts are cached by a hash of the document and the render
// options, so repeated requests for an unchanged document skip rendering.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Style:   "handdrawn",
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/energydiagram/pkg/cache"
	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
	"github.com/matzehuels/energydiagram/pkg/render/axes"
	"github.com/matzehuels/energydiagram/pkg/render/raster"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed seeds the hand-drawn style's jitter.
	DefaultSeed = uint64(42)

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 1.0

	// MaxScale bounds the PNG resolution multiplier. The image area is
	// bounded separately by raster.MaxPixels.
	MaxScale = 8.0

	// MaxFigureSize bounds the figure width and height in inches.
	MaxFigureSize = 100.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Style constants for the SVG drawing style.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// Rasterizers for PNG output.
const (
	RasterizerNative = "native" // fogleman/gg, no external tools
	RasterizerRSVG   = "rsvg"   // rsvg-convert on the SVG output
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleSimple

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple:    true,
	StyleHanddrawn: true,
}

// ValidRasterizers is the set of supported PNG rasterizers.
var ValidRasterizers = map[string]bool{
	RasterizerNative: true,
	RasterizerRSVG:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON serialization for API
// requests.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	Scale      float64  `json:"scale,omitempty"`  // PNG resolution multiplier
	Width      float64  `json:"width,omitempty"`  // figure width in inches, overrides the document
	Height     float64  `json:"height,omitempty"` // figure height in inches, overrides the document
	Rasterizer string   `json:"rasterizer,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // DOT: show energies next to label text
	Unit       string   `json:"unit,omitempty"`     // DOT: energy unit suffix
	Refresh    bool     `json:"refresh,omitempty"`  // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the diagram built from the document.
	Diagram *diagram.Diagram

	// Plot holds the presentation settings after option overrides.
	Plot diagram.PlotOptions

	// Layout is the computed geometry.
	Layout diagram.Layout

	// DocumentHash is the content hash used in cache keys.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Levels     int
	Labels     int
	Links      int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	ArtifactHits int  // number of formats served from cache
	RenderHit    bool // whether every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, handdrawn)", style)
	}
	return nil
}

// ValidateRasterizer checks that a rasterizer is valid.
func ValidateRasterizer(r string) error {
	if !ValidRasterizers[r] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid rasterizer: %q (must be one of: native, rsvg)", r)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateRasterizer(o.Rasterizer); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"width", o.Width}, {"height", o.Height}} {
		if v.val < 0 || v.val > MaxFigureSize {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be in [0, %g] inches, got %g", v.name, MaxFigureSize, v.val)
		}
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := checkPNGSize(o.applyFigureSize(diagram.PlotOptions{}), o.Scale); err != nil {
			return err
		}
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Rasterizer == "" {
		o.Rasterizer = RasterizerNative
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns the cache key options for one format. Fields that
// do not affect the format are left zero so they do not split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
	}
	switch format {
	case FormatSVG, FormatPDF:
		k.Style, k.Seed = o.Style, o.Seed
	case FormatPNG:
		k.Style, k.Seed, k.Scale, k.Rasterizer = o.Style, o.Seed, o.Scale, o.Rasterizer
	case FormatJSON:
		k.Style = o.Style
	case FormatDOT:
		k.Detailed = o.Detailed
		k.Width, k.Height = 0, 0
		k.Unit = o.Unit
	}
	return k
}

// checkPNGSize rejects PNG output whose pixel area would exceed
// raster.MaxPixels. A figure without a size uses the canvas default.
func checkPNGSize(p diagram.PlotOptions, scale float64) error {
	w, h := p.FigureWidth, p.FigureHeight
	if w <= 0 || h <= 0 {
		w, h = axes.DefaultFigureWidth, axes.DefaultFigureHeight
	}
	return raster.CheckPixels(w*axes.DPI*scale, h*axes.DPI*scale)
}

// applyFigureSize lets Width and Height override the document's figure size.
func (o *Options) applyFigureSize(p diagram.PlotOptions) diagram.PlotOptions {
	if o.Width > 0 {
		p.FigureWidth = o.Width
		if p.FigureHeight == 0 && o.Height == 0 {
			p.FigureHeight = o.Width * 0.75
		}
	}
	if o.Height > 0 {
		p.FigureHeight = o.Height
		if p.FigureWidth == 0 && o.Width == 0 {
			p.FigureWidth = o.Height / 0.75
		}
	}
	return p
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
