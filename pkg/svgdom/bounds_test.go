package svgdom

import (
	"strings"
	"testing"
	"time"

	"github.com/panelstitch/panelstitch/pkg/errors"
	"github.com/panelstitch/panelstitch/pkg/geom"
)

const tol = 1e-9

func parseTest(t *testing.T, svg string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(svg))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return doc
}

func TestBoundsRectUnderTransformChain(t *testing.T) {
	// rect(10,20 30x40) under scale(2) under translate(100,50):
	// scaled corners (20,40)-(80,120), then shifted to (120,90)-(180,170).
	doc := parseTest(t, `<svg>
		<g transform="translate(100, 50)">
			<g transform="scale(2)">
				<rect x="10" y="20" width="30" height="40"/>
			</g>
		</g>
	</svg>`)

	box, warns := Bounds(doc.Root, geom.Identity())
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	want := geom.NewBox(120, 90, 180, 170)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsLine(t *testing.T) {
	doc := parseTest(t, `<svg><line x1="50" y1="10" x2="5" y2="90"/></svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(5, 10, 50, 90)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsCircleAndEllipse(t *testing.T) {
	doc := parseTest(t, `<svg>
		<circle cx="10" cy="10" r="5"/>
		<ellipse cx="100" cy="0" rx="20" ry="10"/>
	</svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(5, -10, 120, 15)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsPolygonAndPath(t *testing.T) {
	doc := parseTest(t, `<svg>
		<polygon points="0,0 10,0 10,10"/>
		<path d="M 20 20 L 40 25 L 30 40 Z"/>
	</svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(0, 0, 40, 40)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsTextAnchorOnly(t *testing.T) {
	// Text contributes a single anchor point, no glyph extent.
	doc := parseTest(t, `<svg><text x="15" y="25">wide label text</text></svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(15, 25, 15, 25)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsSkipsDefs(t *testing.T) {
	doc := parseTest(t, `<svg>
		<defs><rect x="-1000" y="-1000" width="1" height="1"/></defs>
		<rect x="0" y="0" width="10" height="10"/>
	</svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(0, 0, 10, 10)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsEmptySubtree(t *testing.T) {
	doc := parseTest(t, `<svg><g id="empty"><g/></g></svg>`)
	box, warns := Bounds(doc.Root, geom.Identity())
	if !box.IsEmpty() {
		t.Errorf("box = %+v, want empty", box)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v, want none", warns)
	}
}

func TestBoundsMalformedTransformRecovers(t *testing.T) {
	doc := parseTest(t, `<svg>
		<g id="bad" transform="frobnicate(1,2)">
			<rect x="0" y="0" width="10" height="10"/>
		</g>
	</svg>`)

	box, warns := Bounds(doc.Root, geom.Identity())
	if len(warns) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warns))
	}
	if !errors.Is(warns[0], errors.ErrCodeMalformedTransform) {
		t.Errorf("warning code = %v, want MALFORMED_TRANSFORM", errors.GetCode(warns[0]))
	}
	// The subtree is still resolved with the transform treated as identity.
	want := geom.NewBox(0, 0, 10, 10)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsWithBaseTransform(t *testing.T) {
	doc := parseTest(t, `<svg><rect x="0" y="0" width="10" height="10"/></svg>`)
	box, _ := Bounds(doc.Root, geom.Translate(100, 200))
	want := geom.NewBox(100, 200, 110, 210)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsRelativePathCommands(t *testing.T) {
	doc := parseTest(t, `<svg><path d="m 10 10 l 20 0 l 0 30"/></svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(10, 10, 30, 40)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}

func TestBoundsCubicControlPointsIncluded(t *testing.T) {
	// Control point at y=100 pulls the conservative box below the endpoints.
	doc := parseTest(t, `<svg><path d="M 0 0 C 5 100 15 100 20 0"/></svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	if box.MaxY != 100 {
		t.Errorf("MaxY = %v, want 100 (control points included)", box.MaxY)
	}
	if box.MinX != 0 || box.MaxX != 20 {
		t.Errorf("x span = [%v, %v], want [0, 20]", box.MinX, box.MaxX)
	}
}

func TestPathControlPointsMalformedCurveTerminates(t *testing.T) {
	// Scanning must stop at the first non-numeric segment and keep the
	// points collected so far, for every curve command family.
	tests := []struct {
		name string
		d    string
		want int // points scanned before the bad segment
	}{
		{"cubic garbage args", "M 0 0 C # 5", 1},
		{"cubic truncated", "M 0 0 C 1 2 3", 2},
		{"smooth garbage args", "M 0 0 S x y 1 2", 1},
		{"quadratic garbage args", "M 0 0 Q 1 2 #", 2},
		{"relative cubic garbage", "m 5 5 c 1 2 #", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan [][2]float64, 1)
			go func() { done <- pathControlPoints(tt.d) }()
			select {
			case pts := <-done:
				if len(pts) != tt.want {
					t.Errorf("got %d points, want %d (%v)", len(pts), tt.want, pts)
				}
			case <-time.After(2 * time.Second):
				t.Fatalf("pathControlPoints(%q) did not terminate", tt.d)
			}
		})
	}
}

func TestBoundsMalformedPathDataDegrades(t *testing.T) {
	// A path that goes bad mid-curve still contributes its valid prefix.
	doc := parseTest(t, `<svg>
		<path d="M 0 0 L 20 30 C # # # # # #"/>
		<rect x="50" y="50" width="10" height="10"/>
	</svg>`)
	box, _ := Bounds(doc.Root, geom.Identity())
	want := geom.NewBox(0, 0, 60, 60)
	if !box.Near(want, tol) {
		t.Errorf("box = %+v, want %+v", box, want)
	}
}
