// Package transform is the alignment post-processor. After the grid pass it
// nudges per-panel offsets so a chosen feature lines up across each row, and
// optionally equalizes spine lengths by rescaling panels about their anchor.
package transform

import (
	"math"

	"github.com/panelstitch/panelstitch/pkg/compose/feature"
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/panel"
)

// Mode selects the per-row alignment feature.
type Mode string

const (
	// ModeXLabel aligns rows on the tick-label baseline.
	ModeXLabel Mode = "xlabel"
	// ModePatchBottom aligns rows on the bottom edge of the plot patch.
	ModePatchBottom Mode = "patch-bottom"
)

// ParseMode validates an alignment mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeXLabel, ModePatchBottom:
		return Mode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidAlignMode,
		"unknown align mode %q (want %q or %q)", s, ModeXLabel, ModePatchBottom)
}

func (m Mode) kind() feature.Kind {
	if m == ModePatchBottom {
		return feature.KindPatchBottom
	}
	return feature.KindLabelBaseline
}

// Options configures one alignment run.
type Options struct {
	Mode Mode

	// EqualizeX and EqualizeY force equal spine length along the given
	// axis across all panels that expose the spine.
	EqualizeX bool
	EqualizeY bool
}

// Align runs baseline alignment, then optional spine equalization, then a
// second baseline pass when equalization ran (rescaling moves baselines).
// Panels missing the required feature are left in place and reported as
// warnings; Align never fails.
func Align(panels []*panel.Panel, opts Options) []error {
	warnings := baselinePass(panels, opts.Mode, true)

	if opts.EqualizeX || opts.EqualizeY {
		warnings = append(warnings, equalize(panels, opts)...)
		baselinePass(panels, opts.Mode, false)
	}
	return warnings
}

// baselinePass aligns each row on the mode feature: the target is the
// maximum feature Y among panels that expose it (the visually lowest one),
// and every other panel shifts down to meet it. Warnings are collected only
// on the first pass so the post-equalize rerun does not duplicate them.
func baselinePass(panels []*panel.Panel, mode Mode, collect bool) []error {
	var warnings []error
	kind := mode.kind()

	for _, row := range byRow(panels) {
		target := math.Inf(-1)
		found := false
		for _, p := range row {
			if y, ok := p.PageFeatures().Value(kind); ok {
				target = math.Max(target, y)
				found = true
			} else if collect {
				warnings = append(warnings, errors.NewPanel(errors.ErrCodeStructureNotFound,
					p.Name, "no %s feature, skipped by alignment", kind))
			}
		}
		if !found {
			continue
		}
		for _, p := range row {
			if y, ok := p.PageFeatures().Value(kind); ok {
				p.RefineOffset(0, target-y)
			}
		}
	}
	return warnings
}

// equalize rescales panels so every found spine along the requested axis
// matches the longest one in the set. The rescale is anchored so the
// alignment feature (or the spine center) stays fixed.
func equalize(panels []*panel.Panel, opts Options) []error {
	var warnings []error
	if opts.EqualizeX {
		warnings = append(warnings, equalizeAxis(panels, feature.KindXSpine, opts.Mode)...)
	}
	if opts.EqualizeY {
		warnings = append(warnings, equalizeAxis(panels, feature.KindYSpine, opts.Mode)...)
	}
	return warnings
}

func equalizeAxis(panels []*panel.Panel, spine feature.Kind, mode Mode) []error {
	var warnings []error

	target := 0.0
	for _, p := range panels {
		if length, ok := p.PageFeatures().Value(spine); ok && length > target {
			target = length
		}
	}
	if target <= 0 {
		for _, p := range panels {
			warnings = append(warnings, errors.NewPanel(errors.ErrCodeStructureNotFound,
				p.Name, "no %s feature, spine equalization skipped", spine))
		}
		return warnings
	}

	for _, p := range panels {
		feats := p.PageFeatures()
		length, ok := feats.Value(spine)
		if !ok || length <= 0 {
			warnings = append(warnings, errors.NewPanel(errors.ErrCodeStructureNotFound,
				p.Name, "no %s feature, spine equalization skipped", spine))
			continue
		}
		ratio := target / length
		if math.Abs(ratio-1) < 1e-12 {
			continue
		}

		cx, cy := anchor(feats, mode)
		if spine == feature.KindXSpine {
			p.RescaleAround(ratio, 1, cx, cy)
		} else {
			p.RescaleAround(1, ratio, cx, cy)
		}
	}
	return warnings
}

// anchor picks the page point held fixed under a rescale: the spine center
// along the scaled axis, and the alignment feature Y when available so the
// subsequent baseline pass starts from an already-close position.
func anchor(feats feature.Set, mode Mode) (float64, float64) {
	var cx, cy float64
	if feats.HasXSpine {
		cx = (feats.XSpine.Min + feats.XSpine.Max) / 2
	}
	if feats.HasYSpine {
		cy = (feats.YSpine.Min + feats.YSpine.Max) / 2
	}
	if y, ok := feats.Value(mode.kind()); ok {
		cy = y
	}
	return cx, cy
}

// byRow groups panels by their assigned grid row, preserving input order
// within a row.
func byRow(panels []*panel.Panel) [][]*panel.Panel {
	maxRow := -1
	for _, p := range panels {
		if p.Row > maxRow {
			maxRow = p.Row
		}
	}
	rows := make([][]*panel.Panel, maxRow+1)
	for _, p := range panels {
		rows[p.Row] = append(rows[p.Row], p)
	}
	return rows
}
