// Package sink renders a computed layout into output artifacts: the merged
// SVG document and a JSON description of the layout for debugging.
package sink

import (
	"strconv"
	"strings"

	"github.com/panelstitch/panelstitch/pkg/compose/layout"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/panel"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"

	// Label anchor offset from the panel's placement corner, page units.
	labelOffsetX = 5.0
	labelOffsetY = 15.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labelFontSize float64
	suffix        func() string
}

// WithLabelFontSize sets the font size for panel label text.
func WithLabelFontSize(size float64) SVGOption {
	return func(r *svgRenderer) { r.labelFontSize = size }
}

// WithSuffixFunc overrides id suffix generation, for deterministic output in
// tests.
func WithSuffixFunc(fn func() string) SVGOption {
	return func(r *svgRenderer) { r.suffix = fn }
}

// RenderSVG merges the placed panels into one document. Each panel's content
// is deep-copied under a group carrying the panel's page transform, with its
// ids rewritten to a unique suffix so merged defs never collide. Panels with
// a non-empty Label get a bold label glyph anchored near their placement
// corner, in page coordinates so labels keep their size regardless of panel
// scale.
func RenderSVG(panels []*panel.Panel, g *layout.Grid, opts ...SVGOption) *svgdom.Document {
	r := &svgRenderer{
		labelFontSize: 12,
		suffix:        svgdom.UniqueSuffix,
	}
	for _, opt := range opts {
		opt(r)
	}

	root := svgdom.NewElement("svg")
	root.SetAttr("xmlns", svgNS)
	root.SetAttr("xmlns:xlink", xlinkNS)
	doc := &svgdom.Document{Root: root}
	doc.SetSize(g.Width, g.Height)

	for i, p := range panels {
		group := svgdom.NewElement("g")
		group.SetAttr("id", panelGroupID(p, i))
		group.SetAttr("transform", matrixAttr(p))

		content := p.Doc.Root.Clone()
		svgdom.RewriteIDs(content, r.suffix())
		group.Append(content.Children...)

		root.Append(group)
	}

	// Labels go after all panel groups so they paint on top.
	for i, p := range panels {
		if p.Label == "" {
			continue
		}
		root.Append(r.labelText(p, g.Cells[i]))
	}

	return doc
}

func (r *svgRenderer) labelText(p *panel.Panel, cell geom.Box) *svgdom.Element {
	text := svgdom.NewElement("text")
	text.SetAttr("x", fmtNum(cell.MinX+labelOffsetX))
	text.SetAttr("y", fmtNum(cell.MinY+labelOffsetY))
	text.SetAttr("font-size", fmtNum(r.labelFontSize))
	text.SetAttr("font-weight", "bold")
	text.SetAttr("font-family", "Arial, sans-serif")
	text.Text = p.Label
	return text
}

// panelGroupID names a panel's wrapper group after its label when present.
func panelGroupID(p *panel.Panel, idx int) string {
	if p.Label != "" {
		return "panel-" + p.Label
	}
	return "panel-" + strconv.Itoa(idx+1)
}

// matrixAttr serializes the panel transform as a matrix() primitive.
func matrixAttr(p *panel.Panel) string {
	m := p.Transform
	parts := []string{
		fmtNum(m.A), fmtNum(m.B), fmtNum(m.C),
		fmtNum(m.D), fmtNum(m.E), fmtNum(m.F),
	}
	return "matrix(" + strings.Join(parts, ", ") + ")"
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
