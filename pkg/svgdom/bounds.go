package svgdom

import (
	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
)

// nonRenderedContainers are subtrees that define reusable or meta content
// and contribute no on-canvas geometry of their own.
var nonRenderedContainers = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"symbol":   true,
	"marker":   true,
	"mask":     true,
	"pattern":  true,
	"filter":   true,
	"metadata": true,
	"style":    true,
	"script":   true,
	"title":    true,
	"desc":     true,
}

// Bounds computes the axis-aligned bounding box, in the coordinate frame of
// base, enclosing every geometry-bearing descendant of el. Each element's
// transform attribute is composed top-down onto base.
//
// Text elements (and tspans and use references) contribute their anchor
// point only; glyph extents are not measured. Subtrees under defs, clipPath
// and similar non-rendered containers are skipped.
//
// An unparseable transform is surfaced as a MALFORMED_TRANSFORM warning and
// treated as identity; the walk continues. The returned box is empty when
// the subtree holds no geometry, which callers must treat as "not found"
// rather than as a usable zero box.
func Bounds(el *Element, base geom.Matrix) (geom.Box, []error) {
	r := &resolver{box: geom.EmptyBox()}
	r.walk(el, base)
	return r.box, r.warnings
}

type resolver struct {
	box      geom.Box
	warnings []error
}

func (r *resolver) walk(el *Element, ctm geom.Matrix) {
	if nonRenderedContainers[el.Name] {
		return
	}

	local, err := el.Transform()
	if err != nil {
		r.warnings = append(r.warnings, errors.Wrap(errors.ErrCodeMalformedTransform, err,
			"element <%s id=%q>: treating transform as identity", el.Name, el.ID()))
		local = geom.Identity()
	}
	ctm = ctm.Mul(local)

	switch el.Name {
	case "rect", "image":
		r.addBox(ctm, geom.NewBoxWH(
			el.FloatAttr("x", 0), el.FloatAttr("y", 0),
			el.FloatAttr("width", 0), el.FloatAttr("height", 0)))
	case "line":
		r.addPoint(ctm, el.FloatAttr("x1", 0), el.FloatAttr("y1", 0))
		r.addPoint(ctm, el.FloatAttr("x2", 0), el.FloatAttr("y2", 0))
	case "circle":
		cx, cy, rad := el.FloatAttr("cx", 0), el.FloatAttr("cy", 0), el.FloatAttr("r", 0)
		r.addBox(ctm, geom.NewBox(cx-rad, cy-rad, cx+rad, cy+rad))
	case "ellipse":
		cx, cy := el.FloatAttr("cx", 0), el.FloatAttr("cy", 0)
		rx, ry := el.FloatAttr("rx", 0), el.FloatAttr("ry", 0)
		r.addBox(ctm, geom.NewBox(cx-rx, cy-ry, cx+rx, cy+ry))
	case "polyline", "polygon":
		for _, p := range parsePoints(el.Attr("points")) {
			r.addPoint(ctm, p[0], p[1])
		}
	case "path":
		for _, p := range pathControlPoints(el.Attr("d")) {
			r.addPoint(ctm, p[0], p[1])
		}
	case "text", "tspan", "use":
		// Anchor point only; glyph extents are out of scope.
		r.addPoint(ctm, el.FloatAttr("x", 0), el.FloatAttr("y", 0))
	}

	for _, c := range el.Children {
		r.walk(c, ctm)
	}
}

func (r *resolver) addPoint(ctm geom.Matrix, x, y float64) {
	px, py := ctm.Apply(x, y)
	r.box = r.box.ExtendPoint(px, py)
}

func (r *resolver) addBox(ctm geom.Matrix, b geom.Box) {
	r.box = r.box.Union(ctm.ApplyBox(b))
}

// parsePoints reads a points attribute ("x1,y1 x2,y2 ...") into pairs.
// A trailing unpaired coordinate is dropped.
func parsePoints(s string) [][2]float64 {
	nums := scanNumbers(s)
	pts := make([][2]float64, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, [2]float64{nums[i], nums[i+1]})
	}
	return pts
}
