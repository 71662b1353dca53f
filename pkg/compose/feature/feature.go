// Package feature locates structural anchor features inside a panel's SVG
// tree: axis spine extents, the baseline of tick-label text, and the bottom
// edge of the plot background patch.
//
// Matching is purely conventional, driven by a [Catalog] of id substrings.
// The default catalog follows matplotlib's SVG output, where an axes group
// carries an "axes" id, the horizontal and vertical axis groups carry
// "matplotlib.axis_1"/"matplotlib.axis_2" ids, tick groups contain "tick"
// and the plot background contains "patch". Geometry resolution is delegated
// to svgdom; this package only decides WHICH subtree to measure.
//
// A missing convention is a recoverable condition: the corresponding feature
// is reported as not found and callers skip it.
package feature

import (
	"math"

	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// Kind names one anchor feature.
type Kind string

const (
	KindXSpine        Kind = "x-spine"
	KindYSpine        Kind = "y-spine"
	KindLabelBaseline Kind = "label-baseline"
	KindPatchBottom   Kind = "patch-bottom"
)

// Catalog describes the id conventions that mark structural roles. All
// matching is case-insensitive substring matching on the id attribute.
type Catalog struct {
	// Axes marks the axes container group.
	Axes []string
	// XAxis and YAxis mark the horizontal and vertical axis groups inside
	// the axes container.
	XAxis []string
	YAxis []string
	// Tick marks tick groups inside an axis group; tick-label text is any
	// text element under a tick group.
	Tick []string
	// Patch marks the plot background shape inside the axes container.
	Patch []string
}

// DefaultCatalog returns the conventions of matplotlib's SVG backend.
func DefaultCatalog() Catalog {
	return Catalog{
		Axes:  []string{"axes"},
		XAxis: []string{"matplotlib.axis_1", "xaxis"},
		YAxis: []string{"matplotlib.axis_2", "yaxis"},
		Tick:  []string{"tick"},
		Patch: []string{"patch"},
	}
}

// Extent is a 1-D interval along one axis, in outer coordinates.
type Extent struct {
	Min, Max float64
}

// Length returns the extent's size.
func (e Extent) Length() float64 { return e.Max - e.Min }

// Set holds the features found for one panel. The Has flags distinguish a
// found feature from the zero value.
type Set struct {
	XSpine        Extent
	YSpine        Extent
	LabelBaseline float64
	PatchBottom   float64

	HasXSpine        bool
	HasYSpine        bool
	HasLabelBaseline bool
	HasPatchBottom   bool
}

// Value returns the scalar value of a feature: spine length for the spine
// kinds, the Y position for baseline and patch-bottom. ok is false when the
// feature was not found.
func (s Set) Value(kind Kind) (float64, bool) {
	switch kind {
	case KindXSpine:
		return s.XSpine.Length(), s.HasXSpine
	case KindYSpine:
		return s.YSpine.Length(), s.HasYSpine
	case KindLabelBaseline:
		return s.LabelBaseline, s.HasLabelBaseline
	case KindPatchBottom:
		return s.PatchBottom, s.HasPatchBottom
	}
	return 0, false
}

// Locate walks root and resolves every feature the catalog can match.
// Coordinates are expressed in the frame of base. Warnings from geometry
// resolution (malformed transforms) are returned alongside; they never
// abort the walk.
func Locate(root *svgdom.Element, base geom.Matrix, cat Catalog) (Set, []error) {
	var set Set
	var warnings []error

	// axesCTM excludes the container's own transform; sub-searches start
	// from the container element, so FindWithTransform composes it exactly
	// once on the way down.
	axes, axesCTM, ok := svgdom.FindWithTransform(root, base, idMatchesAny(cat.Axes))
	if !ok {
		return set, nil
	}

	if xAxis, ctm, found := svgdom.FindWithTransform(axes, axesCTM, idMatchesAny(cat.XAxis)); found {
		box, w := svgdom.Bounds(xAxis, ctm)
		warnings = append(warnings, w...)
		if !box.IsEmpty() {
			set.XSpine = Extent{Min: box.MinX, Max: box.MaxX}
			set.HasXSpine = true
		}
		if y, found := tickLabelBaseline(xAxis, ctm, cat.Tick); found {
			set.LabelBaseline = y
			set.HasLabelBaseline = true
		}
	}

	if yAxis, ctm, found := svgdom.FindWithTransform(axes, axesCTM, idMatchesAny(cat.YAxis)); found {
		box, w := svgdom.Bounds(yAxis, ctm)
		warnings = append(warnings, w...)
		if !box.IsEmpty() {
			set.YSpine = Extent{Min: box.MinY, Max: box.MaxY}
			set.HasYSpine = true
		}
	}

	if patch, ctm, found := svgdom.FindWithTransform(axes, axesCTM, idMatchesAny(cat.Patch)); found {
		box, w := svgdom.Bounds(patch, ctm)
		warnings = append(warnings, w...)
		if !box.IsEmpty() {
			set.PatchBottom = box.MaxY
			set.HasPatchBottom = true
		}
	}

	return set, warnings
}

// tickLabelBaseline returns the minimum transformed Y anchor among text
// elements inside tick groups under the axis group. Minimum Y is the topmost
// label in screen-down coordinates, which is the one closest to the spine.
// base excludes the axis group's own transform.
func tickLabelBaseline(axis *svgdom.Element, base geom.Matrix, tickIDs []string) (float64, bool) {
	minY := math.Inf(1)
	isTick := idMatchesAny(tickIDs)

	var walk func(el *svgdom.Element, ctm geom.Matrix, inTick bool)
	walk = func(el *svgdom.Element, ctm geom.Matrix, inTick bool) {
		local, err := el.Transform()
		if err != nil {
			local = geom.Identity()
		}
		ctm = ctm.Mul(local)
		inTick = inTick || isTick(el)

		if inTick && el.Name == "text" {
			_, y := ctm.Apply(el.FloatAttr("x", 0), el.FloatAttr("y", 0))
			minY = math.Min(minY, y)
		}
		for _, c := range el.Children {
			walk(c, ctm, inTick)
		}
	}
	walk(axis, base, false)

	if math.IsInf(minY, 1) {
		return 0, false
	}
	return minY, true
}

func idMatchesAny(subs []string) func(*svgdom.Element) bool {
	preds := make([]func(*svgdom.Element) bool, len(subs))
	for i, s := range subs {
		preds[i] = svgdom.HasIDSubstring(s)
	}
	return func(e *svgdom.Element) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}
