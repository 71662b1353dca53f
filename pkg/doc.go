// Package pkg provides the core libraries for panelstitch figure assembly.
//
// # Overview
//
// Panelstitch composes individual plot SVGs (panels) into multi-panel
// publication figures. The pkg directory is organized along the pipeline:
//
//  1. [geom] - 2-D affine transform algebra and bounding boxes
//  2. [svgdom] - SVG element tree, parsing, serialization, geometry resolution
//  3. [compose/feature] - structural anchor features (spines, baselines, patches)
//  4. [panel] - the panel model: native geometry plus placement transform
//  5. [compose/layout] - grid assignment, cell sizing, page fitting
//  6. [compose/transform] - alignment and spine-equalization post-processing
//  7. [compose/sink] - SVG and JSON output assembly
//  8. [extract] - pulling panels back out of a composed figure
//  9. [pipeline] - the load → layout → align → render orchestration
//
// # Architecture
//
// The typical data flow:
//
//	panel SVGs
//	     ↓
//	[svgdom] parse + resolve bounding boxes
//	     ↓
//	[compose/feature] locate spines, tick baselines, patch edges
//	     ↓
//	[compose/layout] place panels into a grid, fit the page
//	     ↓
//	[compose/transform] align rows, equalize spines
//	     ↓
//	[compose/sink] merged SVG / layout JSON
//
// Supporting packages: [publisher] (physical page presets), [cache] (panel
// analysis cache), [errors] (coded errors), [observability] (hooks),
// [buildinfo] (version metadata).
//
// # Quick Start
//
// Compose two panels onto an IEEE single-column page:
//
//	import "github.com/panelstitch/panelstitch/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Inputs:    []string{"a.svg", "b.svg"},
//	    Publisher: "ieee-access",
//	    Layout:    "single",
//	    Align:     true,
//	    AddLabels: true,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("figure.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// [geom]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/geom
// [svgdom]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/svgdom
// [compose/feature]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/compose/feature
// [panel]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/panel
// [compose/layout]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/compose/layout
// [compose/transform]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/compose/transform
// [compose/sink]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/compose/sink
// [extract]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/extract
// [pipeline]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/pipeline
// [publisher]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/publisher
// [cache]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/cache
// [errors]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/panelstitch/panelstitch/pkg/buildinfo
package pkg
