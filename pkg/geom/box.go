package geom

import "math"

// Box is an axis-aligned bounding box. A box is either empty (no geometry)
// or normalized so Min <= Max on both axes. The zero value of Box is a
// zero-area box at the origin, which is a valid, non-empty box; use
// [EmptyBox] for the "no geometry" state.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBox returns the box representing "no geometry found". It is the
// neutral element of [Box.Union].
func EmptyBox() Box {
	return Box{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// NewBox returns a normalized box spanning the two corner points.
func NewBox(x1, y1, x2, y2 float64) Box {
	return Box{
		MinX: math.Min(x1, x2), MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2), MaxY: math.Max(y1, y2),
	}
}

// NewBoxWH returns the box at (x, y) with the given width and height.
func NewBoxWH(x, y, w, h float64) Box {
	return NewBox(x, y, x+w, y+h)
}

// IsEmpty reports whether the box holds no geometry. A zero-area box
// (a single point) is not empty.
func (b Box) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Width returns the horizontal span, or 0 for an empty box.
func (b Box) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical span, or 0 for an empty box.
func (b Box) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Union returns the smallest box containing both b and o. Empty boxes
// are neutral.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// ExtendPoint returns the box grown to include the point (x, y).
func (b Box) ExtendPoint(x, y float64) Box {
	return b.Union(Box{MinX: x, MinY: y, MaxX: x, MaxY: y})
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{
		MinX: b.MinX + dx, MinY: b.MinY + dy,
		MaxX: b.MaxX + dx, MaxY: b.MaxY + dy,
	}
}

// Near reports whether two boxes agree edge-wise within tol. Two empty
// boxes are always near.
func (b Box) Near(o Box, tol float64) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return b.IsEmpty() && o.IsEmpty()
	}
	return math.Abs(b.MinX-o.MinX) <= tol && math.Abs(b.MinY-o.MinY) <= tol &&
		math.Abs(b.MaxX-o.MaxX) <= tol && math.Abs(b.MaxY-o.MaxY) <= tol
}
