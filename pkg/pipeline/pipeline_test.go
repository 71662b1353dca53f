package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/panelstitch/panelstitch/pkg/cache"
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// writePanel drops a matplotlib-shaped panel SVG into dir.
func writePanel(t *testing.T, dir, name string, w, h, patchBottom, baseline float64) string {
	t.Helper()
	src := fmt.Sprintf(`<svg width="%g" height="%g">
	<g id="axes_1">
		<path id="patch_2" d="M 10 %g L %g %g L %g 10 L 10 10 z"/>
		<g id="matplotlib.axis_1">
			<path d="M 10 %g L %g %g"/>
			<g id="xtick_1"><text x="10" y="%g">0</text></g>
		</g>
	</g>
</svg>`, w, h,
		patchBottom, w-10, patchBottom, w-10,
		patchBottom, w-10, patchBottom,
		baseline)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Inputs: []string{"a.svg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}
	if opts.MaxPerRow != DefaultMaxPerRow {
		t.Errorf("MaxPerRow = %d, want %d", opts.MaxPerRow, DefaultMaxPerRow)
	}
	if opts.AlignMode != DefaultAlignMode {
		t.Errorf("AlignMode = %q, want %q", opts.AlignMode, DefaultAlignMode)
	}
	if opts.LabelFirst != "a" || opts.LabelFontSize != 12 {
		t.Errorf("label defaults = %q/%v", opts.LabelFirst, opts.LabelFontSize)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if len(opts.Catalog.Axes) == 0 {
		t.Error("catalog default not applied")
	}
}

func TestValidateRejectsBadOptions(t *testing.T) {
	inputs := []string{"a.svg"}
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no inputs", Options{}, errors.ErrCodeInvalidConfig},
		{"negative max-per-row", Options{Inputs: inputs, MaxPerRow: -1}, errors.ErrCodeInvalidConfig},
		{"negative gap", Options{Inputs: inputs, ColGap: -5}, errors.ErrCodeInvalidConfig},
		{"publisher without layout", Options{Inputs: inputs, Publisher: "nature"}, errors.ErrCodeInvalidConfig},
		{"bad align mode", Options{Inputs: inputs, AlignMode: "baseline"}, errors.ErrCodeInvalidAlignMode},
		{"multi-char label", Options{Inputs: inputs, LabelFirst: "ab"}, errors.ErrCodeInvalidConfig},
		{"negative font size", Options{Inputs: inputs, LabelFontSize: -1}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Inputs: inputs, Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"scale reference out of range", Options{Inputs: inputs, ScaleReference: 3}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if errors.GetCode(err) != tt.code {
				t.Errorf("code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestExecuteComposes(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "a.svg", 200, 100, 90, 95)
	b := writePanel(t, dir, "b.svg", 200, 100, 80, 85)

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Inputs:    []string{a, b},
		MaxPerRow: 2,
		Align:     true,
		AddLabels: true,
		Formats:   []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.PanelCount != 2 {
		t.Errorf("panel count = %d, want 2", result.Stats.PanelCount)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings: %+v", result.Warnings)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("missing svg artifact")
	}
	doc, err := svgdom.Parse(strings.NewReader(string(svg)))
	if err != nil {
		t.Fatalf("svg artifact does not parse: %v", err)
	}
	if _, found := svgdom.Find(doc.Root, func(e *svgdom.Element) bool {
		return e.ID() == "panel-b"
	}); !found {
		t.Error("composed output missing labeled panel group")
	}

	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("missing json artifact")
	}

	// Alignment ran: baselines match across the row.
	fa := result.Panels[0].PageFeatures()
	fb := result.Panels[1].PageFeatures()
	if fa.LabelBaseline != fb.LabelBaseline {
		t.Errorf("baselines not aligned: %v vs %v", fa.LabelBaseline, fb.LabelBaseline)
	}
}

func TestExecutePublisherWidth(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "a.svg", 200, 100, 90, 95)

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Inputs:    []string{a},
		Publisher: "ieee-access",
		Layout:    "single",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// 88.9 mm at 90 DPI is exactly 315 user units.
	if result.Grid.Width != 315 {
		t.Errorf("page width = %v, want 315", result.Grid.Width)
	}
}

func TestExecuteUnknownPublisher(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "a.svg", 200, 100, 90, 95)

	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Inputs:    []string{a},
		Publisher: "elsevier",
		Layout:    "single",
	})
	if errors.GetCode(err) != errors.ErrCodeInvalidPublisher {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPublisher)
	}
}

func TestExecuteMissingInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Inputs: []string{filepath.Join(t.TempDir(), "nope.svg")},
	})
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestExecuteWarningsAttributed(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "a.svg", 200, 100, 90, 95)

	plain := filepath.Join(dir, "plain.svg")
	if err := os.WriteFile(plain,
		[]byte(`<svg width="200" height="100"><rect width="200" height="100"/></svg>`), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Inputs: []string{a, plain},
		Align:  true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if w.Panel == "plain.svg" && w.Code == string(errors.ErrCodeStructureNotFound) {
			found = true
		}
	}
	if !found {
		t.Errorf("no STRUCTURE_NOT_FOUND warning for plain.svg: %+v", result.Warnings)
	}
}

func TestExecuteWarningsOverlappingNames(t *testing.T) {
	// "x.svg" is a substring of "max.svg"; attribution must still land on
	// the panel that produced the warning, not the first name that happens
	// to appear in the message text.
	dir := t.TempDir()
	x := writePanel(t, dir, "x.svg", 200, 100, 90, 95)

	max := filepath.Join(dir, "max.svg")
	if err := os.WriteFile(max,
		[]byte(`<svg width="200" height="100"><rect width="200" height="100"/></svg>`), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Inputs: []string{x, max},
		Align:  true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if w.Code != string(errors.ErrCodeStructureNotFound) {
			continue
		}
		switch w.Panel {
		case "max.svg":
			found = true
		case "x.svg":
			t.Errorf("warning misattributed to x.svg: %+v", w)
		}
	}
	if !found {
		t.Errorf("no STRUCTURE_NOT_FOUND warning for max.svg: %+v", result.Warnings)
	}
}

func TestExecuteAnalysisCache(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "a.svg", 200, 100, 90, 95)
	b := writePanel(t, dir, "b.svg", 200, 100, 80, 85)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	opts := Options{Inputs: []string{a, b}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.AnalysisHits != 0 || first.CacheInfo.AnalysisMisses != 2 {
		t.Errorf("first run cache = %+v, want 0 hits, 2 misses", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), Options{Inputs: []string{a, b}})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.AnalysisHits != 2 {
		t.Errorf("second run hits = %d, want 2", second.CacheInfo.AnalysisHits)
	}
	// Cached and fresh analyses agree.
	if !second.Panels[0].Native.Near(first.Panels[0].Native, 1e-9) {
		t.Error("cached native box differs from fresh analysis")
	}

	refreshed, err := runner.Execute(context.Background(), Options{
		Inputs:  []string{a, b},
		Refresh: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.AnalysisHits != 0 {
		t.Errorf("refresh run hits = %d, want 0", refreshed.CacheInfo.AnalysisHits)
	}
}
