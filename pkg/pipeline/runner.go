package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/panelstitch/panelstitch/pkg/cache"
	"github.com/panelstitch/panelstitch/pkg/compose/layout"
	"github.com/panelstitch/panelstitch/pkg/compose/sink"
	"github.com/panelstitch/panelstitch/pkg/compose/transform"
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/observability"
	"github.com/panelstitch/panelstitch/pkg/panel"
	"github.com/panelstitch/panelstitch/pkg/publisher"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// Runner encapsulates pipeline execution with analysis caching.
//
// The Runner is stateless except for the cache, preset catalog and logger.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Presets *publisher.Catalog
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil presets
// catalog uses the builtin publisher presets.
func NewRunner(c cache.Cache, presets *publisher.Catalog, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if presets == nil {
		presets = publisher.Builtin()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Presets: presets, Logger: logger}
}

// Execute runs the complete load → layout → align → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	presets := r.Presets
	if opts.PresetFile != "" {
		presets = presets.Clone()
		if err := presets.MergeFile(opts.PresetFile); err != nil {
			return nil, err
		}
	}
	pageW, pageH, err := opts.PageSize(presets)
	if err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, len(opts.Inputs))
	panels, warnings, err := r.Load(ctx, opts, result)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, len(panels), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Panels = panels
	result.Stats.PanelCount = len(panels)
	result.Warnings = append(result.Warnings, warnings...)

	opts.Logger.Info("loaded panels",
		"count", len(panels),
		"cache_hits", result.CacheInfo.AnalysisHits,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(panels))
	grid, layoutWarnings, err := layout.Build(panels, opts.GridConfig(pageW, pageH))
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, 0, 0, result.Stats.LayoutTime, err)
		return nil, err
	}
	observability.Pipeline().OnLayoutComplete(ctx, grid.Rows, grid.Cols, result.Stats.LayoutTime, nil)
	result.Grid = grid
	for _, w := range layoutWarnings {
		result.Warnings = append(result.Warnings, warningsFrom(errors.PanelName(w), []error{w})...)
	}

	opts.Logger.Info("computed layout",
		"rows", grid.Rows,
		"cols", grid.Cols,
		"page", [2]float64{grid.Width, grid.Height},
		"duration", result.Stats.LayoutTime)

	// Stage 3: Align (optional)
	if opts.Align {
		alignStart := time.Now()
		observability.Pipeline().OnAlignStart(ctx, opts.AlignMode)
		alignWarnings := transform.Align(panels, opts.AlignOptions())
		result.Stats.AlignTime = time.Since(alignStart)
		observability.Pipeline().OnAlignComplete(ctx, opts.AlignMode, len(alignWarnings), result.Stats.AlignTime)
		for _, w := range alignWarnings {
			result.Warnings = append(result.Warnings, warningsFrom(errors.PanelName(w), []error{w})...)
		}

		opts.Logger.Info("aligned panels",
			"mode", opts.AlignMode,
			"warnings", len(alignWarnings),
			"duration", result.Stats.AlignTime)
	}

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	err = r.Render(panels, grid, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load parses the input documents and builds panel models, using cached
// analysis (native box and features) keyed by content hash where available.
func (r *Runner) Load(ctx context.Context, opts Options, result *Result) ([]*panel.Panel, []Warning, error) {
	var panels []*panel.Panel
	var warnings []Warning

	for _, path := range opts.Inputs {
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
			}
			return nil, nil, err
		}
		doc, err := svgdom.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parsing %s", path)
		}

		key := cache.AnalysisKey(cache.Hash(data), opts.CatalogHash())

		if !opts.Refresh {
			if cached, hit := r.cachedAnalysis(ctx, key); hit {
				result.CacheInfo.AnalysisHits++
				panels = append(panels, &panel.Panel{
					Name:      name,
					Doc:       doc,
					Native:    cached.Native,
					Features:  cached.Features,
					Transform: geom.Identity(),
				})
				continue
			}
		}
		result.CacheInfo.AnalysisMisses++

		p, panelWarnings := panel.New(name, doc, opts.Catalog)
		warnings = append(warnings, warningsFrom(name, panelWarnings)...)
		panels = append(panels, p)

		r.storeAnalysis(ctx, key, analysis{Native: p.Native, Features: p.Features})
	}

	return panels, warnings, nil
}

// Render produces the requested artifacts from the placed panels.
func (r *Runner) Render(panels []*panel.Panel, grid *layout.Grid, opts Options, result *Result) error {
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			doc := sink.RenderSVG(panels, grid, sink.WithLabelFontSize(opts.LabelFontSize))
			result.Artifacts[FormatSVG] = doc.Bytes()
		case FormatJSON:
			data, err := sink.RenderLayoutJSON(panels, grid)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encoding layout")
			}
			result.Artifacts[FormatJSON] = data
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
		}
	}
	return nil
}

func (r *Runner) cachedAnalysis(ctx context.Context, key string) (analysis, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return analysis{}, false
	}
	var a analysis
	if err := json.Unmarshal(data, &a); err != nil {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return analysis{}, false
	}
	observability.Cache().OnCacheHit(ctx, "analysis")
	return a, true
}

func (r *Runner) storeAnalysis(ctx context.Context, key string, a analysis) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	// Cache failures are invisible to the run.
	if err := r.Cache.Set(ctx, key, data, cache.DefaultAnalysisTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "analysis", len(data))
	}
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
