package extract

import (
	"math"
	"sort"

	"github.com/panelstitch/panelstitch/pkg/compose/feature"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/panel"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

// CompositePanel pairs a reconstructed panel model with the group element it
// was read from, so adjusted transforms can be written back.
type CompositePanel struct {
	Panel *panel.Panel
	Group *svgdom.Element

	// Base is the transform accumulated above the group, excluding the
	// group's own transform attribute.
	Base geom.Matrix
}

// Panels rebuilds panel models from a composed figure: one per panel group,
// with the native box and features resolved in the group's local frame and
// the group's placement as the panel transform. Rows and columns are
// inferred from the placed boxes, so alignment can be re-run on a composite
// that carries no layout metadata.
func Panels(doc *svgdom.Document, cat feature.Catalog) ([]CompositePanel, []error) {
	var out []CompositePanel
	var warnings []error
	seen := map[string]bool{}

	var walk func(e *svgdom.Element, ctm geom.Matrix)
	walk = func(e *svgdom.Element, ctm geom.Matrix) {
		if label, ok := panelLabel(e); ok && !seen[label] {
			seen[label] = true

			local, err := e.Transform()
			if err != nil {
				local = geom.Identity()
			}

			// Native geometry is resolved in the group's own frame.
			content := e.Clone()
			content.RemoveAttr("transform")
			native, werrs := svgdom.Bounds(content, geom.Identity())
			warnings = append(warnings, werrs...)
			feats, ferrs := feature.Locate(content, geom.Identity(), cat)
			warnings = append(warnings, ferrs...)

			out = append(out, CompositePanel{
				Panel: &panel.Panel{
					Name:      label,
					Label:     label,
					Native:    native,
					Features:  feats,
					Transform: ctm.Mul(local),
				},
				Group: e,
				Base:  ctm,
			})
			return // panels do not nest
		}

		local, err := e.Transform()
		if err != nil {
			local = geom.Identity()
		}
		child := ctm.Mul(local)
		for _, c := range e.Children {
			walk(c, child)
		}
	}
	walk(doc.Root, geom.Identity())

	assignGrid(out)
	return out, warnings
}

// ApplyTransforms writes each panel's transform back onto its group element.
// When a group sits below transformed ancestors, the written local transform
// compensates for them.
func ApplyTransforms(panels []CompositePanel) {
	for _, cp := range panels {
		local := cp.Panel.Transform
		if inv, ok := cp.Base.Invert(); ok {
			local = inv.Mul(cp.Panel.Transform)
		}
		cp.Group.SetAttr("transform", matrixAttr(local))
	}
}

// assignGrid clusters panels into rows by vertical overlap of their placed
// boxes, then orders columns left to right within each row.
func assignGrid(panels []CompositePanel) {
	idx := make([]int, len(panels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return panels[idx[a]].Panel.PlacedBox().MinY < panels[idx[b]].Panel.PlacedBox().MinY
	})

	row := -1
	rowMax := math.Inf(-1)
	rows := map[int][]int{}
	for _, i := range idx {
		box := panels[i].Panel.PlacedBox()
		if box.MinY >= rowMax {
			row++
			rowMax = box.MaxY
		} else if box.MaxY > rowMax {
			rowMax = box.MaxY
		}
		panels[i].Panel.Row = row
		rows[row] = append(rows[row], i)
	}

	for _, members := range rows {
		sort.SliceStable(members, func(a, b int) bool {
			return panels[members[a]].Panel.PlacedBox().MinX < panels[members[b]].Panel.PlacedBox().MinX
		})
		for col, i := range members {
			panels[i].Panel.Col = col
		}
	}
}
