package svgdom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/panelstitch/panelstitch/pkg/errors"
)

// Document is one parsed SVG file.
type Document struct {
	// Root is the <svg> element.
	Root *Element
}

// Parse reads an SVG document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	// SVG files frequently declare non-UTF-8 charsets; pass bytes through.
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decoding XML")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			el.Attrs = make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New(errors.ErrCodeMalformedDocument,
						"multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New(errors.ErrCodeMalformedDocument,
					"unbalanced closing tag </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				if s := strings.TrimSpace(string(t)); s != "" {
					stack[len(stack)-1].Text += s
				}
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "no root element")
	}
	if root.Name != "svg" {
		return nil, errors.New(errors.ErrCodeMalformedDocument,
			"root element is <%s>, expected <svg>", root.Name)
	}
	return &Document{Root: root}, nil
}

// ParseFile reads an SVG document from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening %s", path)
		}
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parsing %s", path)
	}
	return doc, nil
}

// attrName reconstructs the serialized attribute name from the decoder's
// namespace-resolved form. Well-known namespace URLs map back to their
// conventional prefixes; unknown namespaces fall back to the local name.
func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case "http://www.w3.org/1999/xlink":
		return "xlink:" + n.Local
	case "http://www.w3.org/XML/1998/namespace":
		return "xml:" + n.Local
	case "http://www.w3.org/2000/svg":
		return n.Local
	}
	// Undeclared prefixes come through verbatim rather than as URLs.
	if !strings.ContainsAny(n.Space, "/.") {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// Size returns the document's width and height in user units. Explicit
// width/height attributes win (trailing px/pt suffixes are ignored); a
// viewBox supplies missing values. ok is false when neither source yields
// both dimensions.
func (d *Document) Size() (w, h float64, ok bool) {
	w, wOK := parseLength(d.Root.Attr("width"))
	h, hOK := parseLength(d.Root.Attr("height"))
	if wOK && hOK {
		return w, h, true
	}

	if vb, vbOK := d.ViewBox(); vbOK {
		if !wOK {
			w = vb[2]
		}
		if !hOK {
			h = vb[3]
		}
		return w, h, true
	}
	return 0, 0, false
}

// ViewBox returns the root viewBox as [minX, minY, width, height].
func (d *Document) ViewBox() ([4]float64, bool) {
	var vb [4]float64
	fields := strings.Fields(strings.ReplaceAll(d.Root.Attr("viewBox"), ",", " "))
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	return vb, true
}

// SetSize sets the root width, height and a matching origin viewBox.
func (d *Document) SetSize(w, h float64) {
	d.Root.SetAttr("width", formatFloat(w))
	d.Root.SetAttr("height", formatFloat(h))
	d.Root.SetAttr("viewBox", "0 0 "+formatFloat(w)+" "+formatFloat(h))
}

func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimUnit(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatFloat renders a coordinate compactly, dropping a trailing ".0".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
