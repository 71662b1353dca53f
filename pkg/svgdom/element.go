package svgdom

import (
	"strconv"

	"github.com/panelstitch/panelstitch/pkg/geom"
)

// Attr is a single element attribute. Name carries the serialized form,
// prefix included (e.g. "xlink:href").
type Attr struct {
	Name  string
	Value string
}

// Element is one node of an SVG document tree.
type Element struct {
	// Name is the local tag name with any namespace prefix stripped
	// ("g", "rect", "text").
	Name string

	Attrs    []Attr
	Children []*Element

	// Text is the concatenated character data directly inside the element.
	Text string
}

// NewElement creates an element with the given tag name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces the named attribute, preserving attribute order.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Append adds children to the element.
func (e *Element) Append(children ...*Element) {
	e.Children = append(e.Children, children...)
}

// Clone returns a deep copy of the element and its subtree.
func (e *Element) Clone() *Element {
	c := &Element{Name: e.Name, Text: e.Text}
	if len(e.Attrs) > 0 {
		c.Attrs = append([]Attr(nil), e.Attrs...)
	}
	if len(e.Children) > 0 {
		c.Children = make([]*Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// Transform parses the element's transform attribute. A missing attribute
// is the identity, not an error.
func (e *Element) Transform() (geom.Matrix, error) {
	attr := e.Attr("transform")
	if attr == "" {
		return geom.Identity(), nil
	}
	return geom.ParseTransform(attr)
}

// FloatAttr returns the named attribute parsed as a float, or def when the
// attribute is absent or unparseable.
func (e *Element) FloatAttr(name string, def float64) float64 {
	s := e.Attr(name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(trimUnit(s), 64)
	if err != nil {
		return def
	}
	return v
}

// trimUnit strips a trailing "px" or "pt" unit suffix from a length value.
func trimUnit(s string) string {
	if len(s) > 2 {
		switch s[len(s)-2:] {
		case "px", "pt":
			return s[:len(s)-2]
		}
	}
	return s
}
