// Package panel models one input figure: its parsed document, native
// bounding box, located anchor features and the transform that places it on
// the composed page.
package panel

import (
	"math"

	"github.com/panelstitch/panelstitch/pkg/compose/feature"
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// Panel is one figure to be placed on the composed page.
//
// Native and Features are expressed in the panel's own coordinate frame and
// never change after construction. Target and Transform are written by the
// grid compositor and refined by the alignment pass; Transform maps native
// coordinates into page coordinates.
type Panel struct {
	// Name identifies the panel in warnings and layout output, typically
	// the input file basename.
	Name string

	Doc      *svgdom.Document
	Native   geom.Box
	Features feature.Set

	// Label is the sequential panel label ("a", "b", ...), empty when
	// labeling is disabled.
	Label string

	// Row and Col are the grid cell assigned by the compositor.
	Row, Col int

	Target    geom.Box
	Transform geom.Matrix
}

// New builds a Panel from a parsed document. The native box comes from the
// document's declared size, falling back to resolved geometry bounds. A
// panel without any drawable geometry is still usable (zero-area box at the
// origin) and surfaces an EMPTY_GEOMETRY warning instead of failing.
func New(name string, doc *svgdom.Document, cat feature.Catalog) (*Panel, []error) {
	p := &Panel{
		Name:      name,
		Doc:       doc,
		Transform: geom.Identity(),
	}

	var warnings []error
	if w, h, ok := doc.Size(); ok && w > 0 && h > 0 {
		p.Native = geom.NewBoxWH(0, 0, w, h)
	} else {
		box, warns := svgdom.Bounds(doc.Root, geom.Identity())
		warnings = append(warnings, wrapPanel(name, warns)...)
		if box.IsEmpty() {
			p.Native = geom.NewBoxWH(0, 0, 0, 0)
			warnings = append(warnings, errors.NewPanel(errors.ErrCodeEmptyGeometry,
				name, "no declared size and no drawable geometry"))
		} else {
			p.Native = box
		}
	}

	set, warns := feature.Locate(doc.Root, geom.Identity(), cat)
	warnings = append(warnings, wrapPanel(name, warns)...)
	p.Features = set

	return p, warnings
}

// SetPlacement records the target rectangle and computes the transform
// mapping the native box into it.
//
// With sharedScale <= 0 the panel scales by the smaller of the width and
// height ratios, preserving aspect. A positive sharedScale is used verbatim,
// which is how auto-match-scale forces one scale across panels. Either way
// any under-fill is centered inside the target rectangle.
func (p *Panel) SetPlacement(rect geom.Box, sharedScale float64) {
	p.Target = rect

	s := sharedScale
	if s <= 0 {
		s = FitScale(p.Native, rect.Width(), rect.Height())
	}

	tx := rect.MinX + (rect.Width()-s*p.Native.Width())/2 - s*p.Native.MinX
	ty := rect.MinY + (rect.Height()-s*p.Native.Height())/2 - s*p.Native.MinY
	p.Transform = geom.Translate(tx, ty).Mul(geom.Scale(s, s))
}

// RefineOffset translates the panel on the page without touching its scale.
func (p *Panel) RefineOffset(dx, dy float64) {
	p.Transform = geom.Translate(dx, dy).Mul(p.Transform)
}

// RescaleAround applies an additional page-frame scale about the given page
// point, so that the point stays fixed. Used by spine equalization, which
// must not move the panel's alignment anchor.
func (p *Panel) RescaleAround(sx, sy, cx, cy float64) {
	p.Transform = geom.ScaleAround(sx, sy, cx, cy).Mul(p.Transform)
}

// PlacedBox returns the native box mapped onto the page.
func (p *Panel) PlacedBox() geom.Box {
	return p.Transform.ApplyBox(p.Native)
}

// PageFeatures maps the panel's features into page coordinates through the
// current transform. Placement transforms are scale+translate only, so axis
// extents stay axis extents.
func (p *Panel) PageFeatures() feature.Set {
	out := p.Features
	if out.HasXSpine {
		x1, _ := p.Transform.Apply(p.Features.XSpine.Min, 0)
		x2, _ := p.Transform.Apply(p.Features.XSpine.Max, 0)
		out.XSpine = feature.Extent{Min: math.Min(x1, x2), Max: math.Max(x1, x2)}
	}
	if out.HasYSpine {
		_, y1 := p.Transform.Apply(0, p.Features.YSpine.Min)
		_, y2 := p.Transform.Apply(0, p.Features.YSpine.Max)
		out.YSpine = feature.Extent{Min: math.Min(y1, y2), Max: math.Max(y1, y2)}
	}
	if out.HasLabelBaseline {
		_, y := p.Transform.Apply(0, p.Features.LabelBaseline)
		out.LabelBaseline = y
	}
	if out.HasPatchBottom {
		_, y := p.Transform.Apply(0, p.Features.PatchBottom)
		out.PatchBottom = y
	}
	return out
}

// FitScale returns the aspect-preserving scale fitting box into a w×h cell.
// Degenerate boxes fall back to scale 1 so an empty panel still lands inside
// its cell instead of exploding the layout.
func FitScale(box geom.Box, w, h float64) float64 {
	wr, hr := math.Inf(1), math.Inf(1)
	if box.Width() > 0 {
		wr = w / box.Width()
	}
	if box.Height() > 0 {
		hr = h / box.Height()
	}
	s := math.Min(wr, hr)
	if math.IsInf(s, 1) || s <= 0 {
		return 1
	}
	return s
}

// wrapPanel attributes resolver warnings to a panel by name.
func wrapPanel(name string, warns []error) []error {
	out := make([]error, 0, len(warns))
	for _, w := range warns {
		out = append(out, errors.Attribute(w, name))
	}
	return out
}
