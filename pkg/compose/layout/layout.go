// Package layout is the grid compositor. It assigns panels to grid cells in
// input order, sizes columns and rows from panel extents, fits the content
// to a target page width and records the resulting placement on each panel.
package layout

import (
	"math"

	"github.com/panelstitch/panelstitch/pkg/compose/feature"
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/panel"
)

// Config is the read-only grid geometry for one compositor run. Lengths are
// in SVG user units; unit conversion from physical sizes happens upstream.
type Config struct {
	// PageWidth constrains the output width. Zero means the page follows
	// the content at native scale.
	PageWidth float64
	// PageHeight optionally constrains the output height. When both
	// dimensions are set the tighter one wins and the content top-left
	// aligns inside the page.
	PageHeight float64

	MaxPerRow int

	ColGap   float64
	RowGap   float64
	OuterPad float64

	// AutoMatchScale pre-scales every panel so its horizontal spine length
	// matches the reference panel's, instead of aspect-fitting each panel
	// into its cell independently.
	AutoMatchScale bool
	// ScaleReference is the index of the panel whose spine anchors
	// AutoMatchScale. The same panel anchors spine equalization.
	ScaleReference int

	// AddLabels assigns sequential labels starting at LabelFirst.
	AddLabels  bool
	LabelFirst rune
}

// Grid is the computed placement for one run.
type Grid struct {
	Rows, Cols int

	// ColWidths and RowHeights are the final cell extents in page units.
	ColWidths  []float64
	RowHeights []float64

	// Scale is the global content scale applied to fit the page.
	Scale float64

	// Width and Height are the output page size.
	Width, Height float64

	// Cells holds each panel's target rectangle, indexed like panels.
	Cells []geom.Box
}

// Build places panels into a row-major grid and calls SetPlacement on each.
// Recoverable per-panel conditions (a panel missing the spine needed for
// AutoMatchScale) come back as warnings; configuration problems are fatal
// and leave the panels untouched.
func Build(panels []*panel.Panel, cfg Config) (*Grid, []error, error) {
	if len(panels) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "no panels to compose")
	}
	if cfg.MaxPerRow < 1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfig,
			"max-per-row must be >= 1, got %d", cfg.MaxPerRow)
	}
	if cfg.ColGap < 0 || cfg.RowGap < 0 || cfg.OuterPad < 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfig,
			"gaps and padding must be >= 0")
	}
	if cfg.AutoMatchScale && (cfg.ScaleReference < 0 || cfg.ScaleReference >= len(panels)) {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfig,
			"scale reference %d out of range for %d panels", cfg.ScaleReference, len(panels))
	}
	if cfg.AddLabels {
		if err := AssignLabels(panels, cfg.LabelFirst); err != nil {
			return nil, nil, err
		}
	}

	rows := (len(panels) + cfg.MaxPerRow - 1) / cfg.MaxPerRow
	cols := len(panels)
	if cols > cfg.MaxPerRow {
		cols = cfg.MaxPerRow
	}

	preScale, warnings := matchScales(panels, cfg)

	// Column widths and row heights from the pre-scaled panel extents.
	colw := make([]float64, cols)
	rowh := make([]float64, rows)
	for i, p := range panels {
		r, c := i/cfg.MaxPerRow, i%cfg.MaxPerRow
		p.Row, p.Col = r, c
		colw[c] = math.Max(colw[c], p.Native.Width()*preScale[i])
		rowh[r] = math.Max(rowh[r], p.Native.Height()*preScale[i])
	}

	scale, err := pageScale(colw, rowh, cfg)
	if err != nil {
		return nil, nil, err
	}
	for j := range colw {
		colw[j] *= scale
	}
	for i := range rowh {
		rowh[i] *= scale
	}

	g := &Grid{
		Rows:       rows,
		Cols:       cols,
		ColWidths:  colw,
		RowHeights: rowh,
		Scale:      scale,
		Cells:      make([]geom.Box, len(panels)),
	}

	colX := cumulate(colw, cfg.OuterPad, cfg.ColGap)
	rowY := cumulate(rowh, cfg.OuterPad, cfg.RowGap)

	for i, p := range panels {
		cell := geom.NewBoxWH(colX[p.Col], rowY[p.Row], colw[p.Col], rowh[p.Row])
		g.Cells[i] = cell

		shared := 0.0
		if cfg.AutoMatchScale {
			shared = preScale[i] * scale
		}
		p.SetPlacement(cell, shared)
	}

	g.Width = colX[cols-1] + colw[cols-1] + cfg.OuterPad
	g.Height = rowY[rows-1] + rowh[rows-1] + cfg.OuterPad
	if cfg.PageWidth > 0 {
		g.Width = cfg.PageWidth
	}
	if cfg.PageHeight > 0 {
		g.Height = cfg.PageHeight
	}

	return g, warnings, nil
}

// AssignLabels writes sequential single-character labels onto the panels.
// A sequence that would run past 'z' (or 'Z') is rejected up front rather
// than silently wrapping.
func AssignLabels(panels []*panel.Panel, first rune) error {
	last := rune('z')
	switch {
	case first >= 'a' && first <= 'z':
	case first >= 'A' && first <= 'Z':
		last = 'Z'
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"panel label start %q must be a latin letter", string(first))
	}
	if first+rune(len(panels)-1) > last {
		return errors.New(errors.ErrCodeInvalidConfig,
			"%d panels starting at %q would run past %q", len(panels), string(first), string(last))
	}
	for i, p := range panels {
		p.Label = string(first + rune(i))
	}
	return nil
}

// matchScales computes the per-panel pre-scale. Without AutoMatchScale every
// panel keeps scale 1 and aspect-fits its cell later. With it, each panel is
// scaled so its horizontal spine length equals the reference panel's; panels
// without a usable spine keep scale 1 and surface a warning.
func matchScales(panels []*panel.Panel, cfg Config) ([]float64, []error) {
	scales := make([]float64, len(panels))
	for i := range scales {
		scales[i] = 1
	}
	if !cfg.AutoMatchScale {
		return scales, nil
	}

	var warnings []error
	ref := panels[cfg.ScaleReference]
	refLen, ok := ref.Features.Value(feature.KindXSpine)
	if !ok || refLen <= 0 {
		return scales, []error{errors.NewPanel(errors.ErrCodeStructureNotFound,
			ref.Name, "reference panel has no horizontal spine, auto-match-scale disabled")}
	}

	for i, p := range panels {
		length, ok := p.Features.Value(feature.KindXSpine)
		if !ok || length <= 0 {
			warnings = append(warnings, errors.NewPanel(errors.ErrCodeStructureNotFound,
				p.Name, "no horizontal spine, placed at native scale"))
			continue
		}
		scales[i] = refLen / length
	}
	return scales, warnings
}

// pageScale computes the uniform content scale that fits the grid into the
// configured page. Gaps and padding are fixed page-unit quantities and are
// not scaled.
func pageScale(colw, rowh []float64, cfg Config) (float64, error) {
	scale := math.Inf(1)

	if cfg.PageWidth > 0 {
		avail := cfg.PageWidth - 2*cfg.OuterPad - float64(len(colw)-1)*cfg.ColGap
		if avail <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidConfig,
				"page width %.4g leaves no room after padding and gaps", cfg.PageWidth)
		}
		if sum := sum(colw); sum > 0 {
			scale = avail / sum
		}
	}
	if cfg.PageHeight > 0 {
		avail := cfg.PageHeight - 2*cfg.OuterPad - float64(len(rowh)-1)*cfg.RowGap
		if avail <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidConfig,
				"page height %.4g leaves no room after padding and gaps", cfg.PageHeight)
		}
		if sum := sum(rowh); sum > 0 {
			scale = math.Min(scale, avail/sum)
		}
	}

	if math.IsInf(scale, 1) {
		return 1, nil
	}
	return scale, nil
}

// cumulate returns the origin of each track: pad, then each previous track
// plus one gap.
func cumulate(sizes []float64, pad, gap float64) []float64 {
	origins := make([]float64, len(sizes))
	pos := pad
	for i, s := range sizes {
		origins[i] = pos
		pos += s + gap
	}
	return origins
}

func sum(vs []float64) float64 {
	var t float64
	for _, v := range vs {
		t += v
	}
	return t
}
