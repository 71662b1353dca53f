// Package pipeline provides the core compose pipeline for panelstitch.
//
// This package implements the complete load → layout → align → render flow
// used by the CLI and the preview server. Centralizing it keeps behavior
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: parse input SVGs, resolve native boxes, locate anchor features
//  2. Layout: place panels into the grid and fit the page
//  3. Align: post-process offsets and spine lengths (optional)
//  4. Render: produce output artifacts (SVG, layout JSON)
//
// Configuration problems are fatal before any stage runs. Per-panel
// conditions (missing features, malformed transforms, empty panels) degrade
// gracefully and are collected as warnings attributed to the panel.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/panelstitch/panelstitch/pkg/cache"
	"github.com/panelstitch/panelstitch/pkg/compose/feature"
	"github.com/panelstitch/panelstitch/pkg/compose/layout"
	"github.com/panelstitch/panelstitch/pkg/compose/transform"
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/panel"
	"github.com/panelstitch/panelstitch/pkg/publisher"
)

// Default values shared by the CLI and the preview server.
const (
	DefaultMaxPerRow     = 2
	DefaultColGap        = 10.0
	DefaultRowGap        = 10.0
	DefaultOuterPad      = 10.0
	DefaultLabelFirst    = "a"
	DefaultLabelFontSize = 12.0
	DefaultAlignMode     = string(transform.ModeXLabel)
)

// Format constants for output artifacts.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for the preview server.
type Options struct {
	// Inputs are the panel SVG paths, composed in order.
	Inputs []string `json:"inputs"`

	// Publisher and Layout select a physical width preset. Both or
	// neither must be set; an explicit WidthMM overrides the preset.
	Publisher string `json:"publisher,omitempty"`
	Layout    string `json:"layout,omitempty"`
	// PresetFile optionally overlays user publisher presets.
	PresetFile string `json:"preset_file,omitempty"`

	// WidthMM and HeightMM set explicit physical page dimensions.
	WidthMM  float64 `json:"width_mm,omitempty"`
	HeightMM float64 `json:"height_mm,omitempty"`

	// Grid options. Gaps and padding are in SVG user units.
	MaxPerRow int     `json:"max_per_row,omitempty"`
	ColGap    float64 `json:"col_gap,omitempty"`
	RowGap    float64 `json:"row_gap,omitempty"`
	OuterPad  float64 `json:"outer_pad,omitempty"`

	// Scale options.
	AutoMatchScale bool `json:"auto_match_scale,omitempty"`
	ScaleReference int  `json:"scale_reference,omitempty"`

	// Alignment options.
	Align     bool   `json:"align,omitempty"`
	AlignMode string `json:"align_mode,omitempty"`
	EqualizeX bool   `json:"equalize_x,omitempty"`
	EqualizeY bool   `json:"equalize_y,omitempty"`

	// Label options.
	AddLabels     bool    `json:"add_labels,omitempty"`
	LabelFirst    string  `json:"label_first,omitempty"`
	LabelFontSize float64 `json:"label_font_size,omitempty"`

	// Render options.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached panel analysis.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Catalog feature.Catalog `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Panels holds the placed panel models in input order.
	Panels []*panel.Panel

	// Grid is the computed page layout.
	Grid *layout.Grid

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings are the recoverable per-panel conditions encountered.
	Warnings []Warning

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks panel analysis cache effectiveness.
	CacheInfo CacheInfo
}

// Warning is one recoverable condition attributed to an input panel.
type Warning struct {
	Panel   string `json:"panel"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount int
	LoadTime   time.Duration
	LayoutTime time.Duration
	AlignTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks analysis cache hits.
type CacheInfo struct {
	AnalysisHits   int
	AnalysisMisses int
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one input panel is required")
	}

	if o.MaxPerRow == 0 {
		o.MaxPerRow = DefaultMaxPerRow
	}
	if o.MaxPerRow < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"max-per-row must be >= 1, got %d", o.MaxPerRow)
	}
	// Zero gaps are meaningful, so the CLI owns the 10-unit defaults.
	if o.ColGap < 0 || o.RowGap < 0 || o.OuterPad < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gaps and padding must be >= 0")
	}

	if (o.Publisher == "") != (o.Layout == "") {
		return errors.New(errors.ErrCodeInvalidConfig,
			"publisher and layout must be set together")
	}
	if o.WidthMM < 0 || o.HeightMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "page dimensions must be >= 0")
	}

	if o.ScaleReference < 0 || o.ScaleReference >= len(o.Inputs) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"scale-reference %d out of range for %d inputs", o.ScaleReference, len(o.Inputs))
	}

	if o.AlignMode == "" {
		o.AlignMode = DefaultAlignMode
	}
	if _, err := transform.ParseMode(o.AlignMode); err != nil {
		return err
	}

	if o.LabelFirst == "" {
		o.LabelFirst = DefaultLabelFirst
	}
	if len(o.LabelFirst) != 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"panel-label-first must be a single character, got %q", o.LabelFirst)
	}
	if o.LabelFontSize == 0 {
		o.LabelFontSize = DefaultLabelFontSize
	}
	if o.LabelFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"panel-label-font-size must be positive, got %v", o.LabelFontSize)
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if emptyCatalog(o.Catalog) {
		o.Catalog = feature.DefaultCatalog()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// PageSize resolves the target page size in SVG user units. The publisher
// preset supplies defaults; explicit WidthMM/HeightMM win. A zero dimension
// means unconstrained.
func (o *Options) PageSize(catalog *publisher.Catalog) (w, h float64, err error) {
	var size publisher.Size
	if o.Publisher != "" {
		size, err = catalog.Lookup(o.Publisher, o.Layout)
		if err != nil {
			return 0, 0, err
		}
	}
	if o.WidthMM > 0 {
		size.WidthMM = o.WidthMM
	}
	if o.HeightMM > 0 {
		size.HeightMM = o.HeightMM
	}
	return size.WidthPx(), size.HeightPx(), nil
}

// GridConfig builds the compositor configuration for a resolved page size.
func (o *Options) GridConfig(pageW, pageH float64) layout.Config {
	return layout.Config{
		PageWidth:      pageW,
		PageHeight:     pageH,
		MaxPerRow:      o.MaxPerRow,
		ColGap:         o.ColGap,
		RowGap:         o.RowGap,
		OuterPad:       o.OuterPad,
		AutoMatchScale: o.AutoMatchScale,
		ScaleReference: o.ScaleReference,
		AddLabels:      o.AddLabels,
		LabelFirst:     rune(o.LabelFirst[0]),
	}
}

// AlignOptions builds the post-processor configuration.
func (o *Options) AlignOptions() transform.Options {
	mode, _ := transform.ParseMode(o.AlignMode)
	return transform.Options{
		Mode:      mode,
		EqualizeX: o.EqualizeX,
		EqualizeY: o.EqualizeY,
	}
}

// CatalogHash fingerprints the feature catalog for cache keys.
func (o *Options) CatalogHash() string {
	return cache.CatalogHash(o.Catalog)
}

func emptyCatalog(c feature.Catalog) bool {
	return len(c.Axes) == 0 && len(c.XAxis) == 0 && len(c.YAxis) == 0 &&
		len(c.Tick) == 0 && len(c.Patch) == 0
}

// warningsFrom converts per-panel errors into attributed warnings.
func warningsFrom(panelName string, errs []error) []Warning {
	out := make([]Warning, 0, len(errs))
	for _, e := range errs {
		out = append(out, Warning{
			Panel:   panelName,
			Code:    string(errors.GetCode(e)),
			Message: errors.UserMessage(e),
		})
	}
	return out
}

// analysis is the cached per-panel result: the native box and located
// features, everything Load produces besides the parsed tree itself.
type analysis struct {
	Native   geom.Box    `json:"native"`
	Features feature.Set `json:"features"`
}
