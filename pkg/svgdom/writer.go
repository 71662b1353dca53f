package svgdom

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Bytes serializes the document with two-space indentation and an XML
// declaration.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	writeElement(&buf, d.Root, 0)
	return buf.Bytes()
}

// Write serializes the document to w.
func (d *Document) Write(w io.Writer) error {
	_, err := w.Write(d.Bytes())
	return err
}

// WriteFile serializes the document to path.
func (d *Document) WriteFile(path string) error {
	return os.WriteFile(path, d.Bytes(), 0644)
}

func writeElement(buf *bytes.Buffer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}

	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>\n")
		return
	}

	buf.WriteByte('>')
	if e.Text != "" {
		xml.EscapeText(buf, []byte(e.Text))
	}
	if len(e.Children) > 0 {
		buf.WriteByte('\n')
		for _, c := range e.Children {
			writeElement(buf, c, depth+1)
		}
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteString(">\n")
}
