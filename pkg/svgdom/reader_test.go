package svgdom

import (
	"strings"
	"testing"

	"github.com/panelstitch/panelstitch/pkg/errors"
)

const sampleSVG = `<?xml version="1.0" encoding="utf-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="360pt" height="288pt" viewBox="0 0 360 288">
  <g id="figure_1">
    <g id="axes_1" transform="translate(40, 20)">
      <rect x="0" y="0" width="100" height="80" fill="white"/>
      <text x="5" y="10">hello</text>
    </g>
  </g>
</svg>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleSVG))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if doc.Root.Name != "svg" {
		t.Errorf("root = %q, want svg", doc.Root.Name)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(doc.Root.Children))
	}

	fig := doc.Root.Children[0]
	if fig.ID() != "figure_1" {
		t.Errorf("first child id = %q, want figure_1", fig.ID())
	}

	axes := fig.Children[0]
	if axes.Attr("transform") != "translate(40, 20)" {
		t.Errorf("axes transform = %q", axes.Attr("transform"))
	}

	text, ok := Find(doc.Root, func(e *Element) bool { return e.Name == "text" })
	if !ok {
		t.Fatal("text element not found")
	}
	if text.Text != "hello" {
		t.Errorf("text content = %q, want hello", text.Text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not svg root", "<html></html>"},
		{"broken xml", "<svg><g></svg>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeMalformedDocument) {
				t.Errorf("error code = %v, want MALFORMED_DOCUMENT", errors.GetCode(err))
			}
		})
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name         string
		svg          string
		wantW, wantH float64
		wantOK       bool
	}{
		{
			name:  "explicit dimensions with pt suffix",
			svg:   `<svg width="360pt" height="288pt"/>`,
			wantW: 360, wantH: 288, wantOK: true,
		},
		{
			name:  "px suffix",
			svg:   `<svg width="100px" height="50px"/>`,
			wantW: 100, wantH: 50, wantOK: true,
		},
		{
			name:  "viewBox fallback",
			svg:   `<svg viewBox="0 0 640 480"/>`,
			wantW: 640, wantH: 480, wantOK: true,
		},
		{
			name:  "partial attributes fall back to viewBox",
			svg:   `<svg width="100" viewBox="0 0 640 480"/>`,
			wantW: 100, wantH: 480, wantOK: true,
		},
		{
			name:   "no dimension information",
			svg:    `<svg/>`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.svg))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			w, h, ok := doc.Size()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (w != tt.wantW || h != tt.wantH) {
				t.Errorf("Size = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSetSize(t *testing.T) {
	doc, _ := Parse(strings.NewReader(`<svg width="10" height="10"/>`))
	doc.SetSize(200, 100.5)

	if got := doc.Root.Attr("width"); got != "200" {
		t.Errorf("width = %q, want 200", got)
	}
	if got := doc.Root.Attr("viewBox"); got != "0 0 200 100.5" {
		t.Errorf("viewBox = %q", got)
	}
}
