package extract

import (
	"strings"
	"testing"

	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
	"github.com/panelstitch/panelstitch/pkg/svgdom"
)

func parseDoc(t *testing.T, src string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

const composite = `<svg width="200" height="80" viewBox="0 0 200 80">
	<g id="panel-a" transform="matrix(1, 0, 0, 1, 0, 0)"><rect width="100" height="80"/></g>
	<g id="panel-b" transform="matrix(1, 0, 0, 1, 100, 0)"><rect width="100" height="80"/></g>
	<text x="5" y="15" font-weight="bold">a</text>
	<text x="105" y="15" font-weight="bold">b</text>
</svg>`

func TestList(t *testing.T) {
	infos := List(parseDoc(t, composite))

	if len(infos) != 2 {
		t.Fatalf("found %d panels, want 2: %+v", len(infos), infos)
	}
	if infos[0].Label != "a" || infos[0].Index != 1 || infos[0].ID != "panel-a" {
		t.Errorf("first panel = %+v", infos[0])
	}
	if infos[1].Label != "b" || infos[1].Index != 2 {
		t.Errorf("second panel = %+v", infos[1])
	}
}

func TestListInnerLabelConvention(t *testing.T) {
	// Composites from other tools carry the label glyph inside the group.
	doc := parseDoc(t, `<svg>
		<g transform="translate(10, 10)">
			<rect width="50" height="50"/>
			<text x="5" y="15">C</text>
		</g>
	</svg>`)

	infos := List(doc)
	if len(infos) != 1 || infos[0].Label != "c" {
		t.Fatalf("infos = %+v, want single panel c", infos)
	}
}

func TestPanelRoundTrip(t *testing.T) {
	out, warnings, err := Panel(parseDoc(t, composite), "b")
	if err != nil {
		t.Fatalf("Panel: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}

	// The extracted panel re-resolves to its pre-composite native box.
	reparsed := parseDoc(t, string(out.Bytes()))
	box, _ := svgdom.Bounds(reparsed.Root, geom.Identity())
	if !box.Near(geom.NewBoxWH(0, 0, 100, 80), 1e-9) {
		t.Errorf("extracted bounds = %+v, want 0,0,100,80", box)
	}

	if w, h, ok := out.Size(); !ok || w != 100 || h != 80 {
		t.Errorf("extracted size = %v x %v (%v), want 100x80", w, h, ok)
	}
}

func TestPanelBakesScale(t *testing.T) {
	doc := parseDoc(t, `<svg width="200" height="40">
		<g id="panel-a" transform="matrix(0.5, 0, 0, 0.5, 100, 0)">
			<rect width="100" height="80"/>
		</g>
	</svg>`)

	out, _, err := Panel(doc, "a")
	if err != nil {
		t.Fatalf("Panel: %v", err)
	}

	box, _ := svgdom.Bounds(out.Root, geom.Identity())
	if !box.Near(geom.NewBoxWH(0, 0, 50, 40), 1e-9) {
		t.Errorf("extracted bounds = %+v, want 0,0,50,40", box)
	}
}

func TestPanelByIndex(t *testing.T) {
	out, _, err := Panel(parseDoc(t, composite), "2")
	if err != nil {
		t.Fatalf("Panel by index: %v", err)
	}
	if w, _, _ := out.Size(); w != 100 {
		t.Errorf("extracted width = %v, want 100", w)
	}

	_, _, err = Panel(parseDoc(t, composite), "3")
	if errors.GetCode(err) != errors.ErrCodePanelNotFound {
		t.Errorf("out-of-range index code = %v, want %v", errors.GetCode(err), errors.ErrCodePanelNotFound)
	}
}

func TestPanelNotFound(t *testing.T) {
	_, _, err := Panel(parseDoc(t, composite), "z")
	if errors.GetCode(err) != errors.ErrCodePanelNotFound {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.ErrCodePanelNotFound)
	}
	if msg := err.Error(); !strings.Contains(msg, "a, b") {
		t.Errorf("error does not list available panels: %v", msg)
	}
}

func TestPanelEmptyGeometry(t *testing.T) {
	doc := parseDoc(t, `<svg><g id="panel-a"><g id="hollow"/></g></svg>`)

	_, _, err := Panel(doc, "a")
	if errors.GetCode(err) != errors.ErrCodeEmptyGeometry {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeEmptyGeometry)
	}
}
