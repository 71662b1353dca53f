package sink

import (
	"encoding/json"

	"github.com/panelstitch/panelstitch/pkg/compose/layout"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/panel"
)

// LayoutExport is the JSON shape of one composed layout.
type LayoutExport struct {
	Page   PageExport    `json:"page"`
	Panels []PanelExport `json:"panels"`
}

type PageExport struct {
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Scale      float64   `json:"scale"`
	ColWidths  []float64 `json:"col_widths"`
	RowHeights []float64  `json:"row_heights"`
}

type PanelExport struct {
	Name      string         `json:"name"`
	Label     string         `json:"label,omitempty"`
	Row       int            `json:"row"`
	Col       int            `json:"col"`
	Cell      RectExport     `json:"cell"`
	Placed    RectExport     `json:"placed"`
	Transform [6]float64     `json:"transform"`
	Features  FeatureExport  `json:"features"`
}

type RectExport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FeatureExport reports located features in page coordinates. Pointers stay
// nil for features that were not found.
type FeatureExport struct {
	XSpineLength  *float64 `json:"x_spine_length,omitempty"`
	YSpineLength  *float64 `json:"y_spine_length,omitempty"`
	LabelBaseline *float64 `json:"label_baseline,omitempty"`
	PatchBottom   *float64 `json:"patch_bottom,omitempty"`
}

// RenderLayoutJSON serializes the layout for inspection and debugging.
func RenderLayoutJSON(panels []*panel.Panel, g *layout.Grid) ([]byte, error) {
	export := LayoutExport{
		Page: PageExport{
			Width:      g.Width,
			Height:     g.Height,
			Rows:       g.Rows,
			Cols:       g.Cols,
			Scale:      g.Scale,
			ColWidths:  g.ColWidths,
			RowHeights: g.RowHeights,
		},
	}

	for i, p := range panels {
		m := p.Transform
		pe := PanelExport{
			Name:      p.Name,
			Label:     p.Label,
			Row:       p.Row,
			Col:       p.Col,
			Cell:      rectExport(g.Cells[i]),
			Placed:    rectExport(p.PlacedBox()),
			Transform: [6]float64{m.A, m.B, m.C, m.D, m.E, m.F},
		}

		feats := p.PageFeatures()
		if feats.HasXSpine {
			pe.Features.XSpineLength = ptr(feats.XSpine.Length())
		}
		if feats.HasYSpine {
			pe.Features.YSpineLength = ptr(feats.YSpine.Length())
		}
		if feats.HasLabelBaseline {
			pe.Features.LabelBaseline = ptr(feats.LabelBaseline)
		}
		if feats.HasPatchBottom {
			pe.Features.PatchBottom = ptr(feats.PatchBottom)
		}
		export.Panels = append(export.Panels, pe)
	}

	return json.MarshalIndent(export, "", "  ")
}

func rectExport(b geom.Box) RectExport {
	return RectExport{X: b.MinX, Y: b.MinY, Width: b.Width(), Height: b.Height()}
}

func ptr(v float64) *float64 { return &v }
