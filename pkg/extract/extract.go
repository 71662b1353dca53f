// Package extract pulls a single panel back out of a composite document,
// the inverse of composition. The panel's accumulated transform is baked
// into the extracted subtree and the result is translated to the origin as
// a standalone document.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

const (
	svgNS = "http://www.w3.org/2000/svg"

	// groupIDPrefix is how the compositor names panel wrapper groups.
	groupIDPrefix = "panel-"
)

// Info describes one extractable panel found in a composite.
type Info struct {
	// Label is the panel's single-letter label, lowercased.
	Label string
	// Index is the panel's 1-based position in document order.
	Index int
	// ID is the id of the panel's group element, when it has one.
	ID string
}

// List returns the extractable panels in document order. A group qualifies
// either by carrying a "panel-<label>" id (this tool's own composites) or by
// containing a direct single-letter text child (label glyphs placed inside
// the group by other compositors).
func List(doc *svgdom.Document) []Info {
	var infos []Info
	seen := map[string]bool{}

	svgdom.Walk(doc.Root, func(e *svgdom.Element) bool {
		label, ok := panelLabel(e)
		if !ok || seen[label] {
			return true
		}
		seen[label] = true
		infos = append(infos, Info{Label: label, Index: len(infos) + 1, ID: e.ID()})
		// Panels do not nest.
		return false
	})
	return infos
}

// Panel extracts one panel by identifier: its label ("a") or its 1-based
// index ("2"). The returned document is sized to the panel's resolved
// bounding box and its content carries one baked transform mapping the
// panel to the origin. Resolver warnings are returned alongside; a panel
// whose geometry cannot be resolved at all is an EMPTY_GEOMETRY error.
func Panel(doc *svgdom.Document, ident string) (*svgdom.Document, []error, error) {
	label, err := resolveIdent(doc, ident)
	if err != nil {
		return nil, nil, err
	}

	group, base, ok := svgdom.FindWithTransform(doc.Root, geom.Identity(), func(e *svgdom.Element) bool {
		l, found := panelLabel(e)
		return found && l == label
	})
	if !ok {
		return nil, nil, notFound(doc, ident)
	}

	box, warnings := svgdom.Bounds(group, base)
	if box.IsEmpty() {
		return nil, warnings, errors.New(errors.ErrCodeEmptyGeometry,
			"panel %q has no resolvable geometry", label)
	}

	local, terr := group.Transform()
	if terr != nil {
		local = geom.Identity()
	}
	baked := geom.Translate(-box.MinX, -box.MinY).Mul(base.Mul(local))

	root := svgdom.NewElement("svg")
	root.SetAttr("xmlns", svgNS)
	out := &svgdom.Document{Root: root}
	out.SetSize(box.Width(), box.Height())

	content := svgdom.NewElement("g")
	content.SetAttr("transform", matrixAttr(baked))
	for _, c := range group.Children {
		content.Append(c.Clone())
	}
	root.Append(content)

	return out, warnings, nil
}

// resolveIdent maps a label or 1-based index onto a panel label.
func resolveIdent(doc *svgdom.Document, ident string) (string, error) {
	infos := List(doc)

	if idx, err := strconv.Atoi(ident); err == nil {
		if idx < 1 || idx > len(infos) {
			return "", notFound(doc, ident)
		}
		return infos[idx-1].Label, nil
	}

	want := strings.ToLower(ident)
	for _, info := range infos {
		if info.Label == want {
			return info.Label, nil
		}
	}
	return "", notFound(doc, ident)
}

func notFound(doc *svgdom.Document, ident string) error {
	var labels []string
	for _, info := range List(doc) {
		labels = append(labels, info.Label)
	}
	sort.Strings(labels)
	return errors.New(errors.ErrCodePanelNotFound,
		"panel %q not found (available: %s)", ident, strings.Join(labels, ", "))
}

// panelLabel classifies an element as a panel group and returns its label.
func panelLabel(e *svgdom.Element) (string, bool) {
	if e.Name != "g" {
		return "", false
	}
	if id := e.ID(); strings.HasPrefix(id, groupIDPrefix) {
		label := strings.TrimPrefix(id, groupIDPrefix)
		if label != "" {
			return strings.ToLower(label), true
		}
	}
	for _, c := range e.Children {
		if c.Name == "text" && isLetter(strings.TrimSpace(c.Text)) {
			return strings.ToLower(strings.TrimSpace(c.Text)), true
		}
	}
	return "", false
}

func isLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func matrixAttr(m geom.Matrix) string {
	parts := []string{
		fmtNum(m.A), fmtNum(m.B), fmtNum(m.C),
		fmtNum(m.D), fmtNum(m.E), fmtNum(m.F),
	}
	return "matrix(" + strings.Join(parts, ", ") + ")"
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
