package geom

import "math"

// Matrix is a 2-D affine transform in SVG coefficient order:
//
//	| A  C  E |
//	| B  D  F |
//
// mapping (x, y) to (A*x + C*y + E, B*x + D*y + F).
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the neutral transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns a rotation about the origin. The angle is in degrees,
// matching the SVG rotate() primitive.
func Rotate(deg float64) Matrix {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// RotateAround returns a rotation by deg degrees about (cx, cy).
func RotateAround(deg, cx, cy float64) Matrix {
	return Translate(cx, cy).Mul(Rotate(deg)).Mul(Translate(-cx, -cy))
}

// SkewX returns a skew along the x axis by deg degrees.
func SkewX(deg float64) Matrix {
	return Matrix{A: 1, C: math.Tan(deg * math.Pi / 180), D: 1}
}

// SkewY returns a skew along the y axis by deg degrees.
func SkewY(deg float64) Matrix {
	return Matrix{A: 1, B: math.Tan(deg * math.Pi / 180), D: 1}
}

// ScaleAround returns a scale by (sx, sy) that leaves (cx, cy) fixed.
func ScaleAround(sx, sy, cx, cy float64) Matrix {
	return Translate(cx, cy).Mul(Scale(sx, sy)).Mul(Translate(-cx, -cy))
}

// Mul composes two transforms: m.Mul(u) applies u first, then m.
// This is the point-to-root composition order when m belongs to an
// ancestor of u's element.
func (m Matrix) Mul(u Matrix) Matrix {
	return Matrix{
		A: m.A*u.A + m.C*u.B,
		B: m.B*u.A + m.D*u.B,
		C: m.A*u.C + m.C*u.D,
		D: m.B*u.C + m.D*u.D,
		E: m.A*u.E + m.C*u.F + m.E,
		F: m.B*u.E + m.D*u.F + m.F,
	}
}

// Apply maps a point through the transform.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyBox maps a box through the transform by transforming all four
// corners and taking the axis-aligned min/max. Under rotation or skew
// this over-approximates the true extent. Empty boxes stay empty.
func (m Matrix) ApplyBox(b Box) Box {
	if b.IsEmpty() {
		return EmptyBox()
	}
	out := EmptyBox()
	for _, c := range [4][2]float64{
		{b.MinX, b.MinY},
		{b.MaxX, b.MinY},
		{b.MinX, b.MaxY},
		{b.MaxX, b.MaxY},
	} {
		x, y := m.Apply(c[0], c[1])
		out = out.ExtendPoint(x, y)
	}
	return out
}

// IsIdentity reports whether the matrix is the identity within tolerance.
func (m Matrix) IsIdentity() bool {
	const eps = 1e-12
	return math.Abs(m.A-1) < eps && math.Abs(m.B) < eps &&
		math.Abs(m.C) < eps && math.Abs(m.D-1) < eps &&
		math.Abs(m.E) < eps && math.Abs(m.F) < eps
}

// HasSkew reports whether the transform carries a nonzero off-diagonal
// component (rotation or skew). Box mapping is exact only when this is false.
func (m Matrix) HasSkew() bool {
	const eps = 1e-12
	return math.Abs(m.B) > eps || math.Abs(m.C) > eps
}

// Determinant returns the determinant of the linear 2x2 part.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform and whether it exists.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1 / det
	return Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, true
}

// Near reports whether two matrices agree coefficient-wise within tol.
func (m Matrix) Near(u Matrix, tol float64) bool {
	return math.Abs(m.A-u.A) <= tol && math.Abs(m.B-u.B) <= tol &&
		math.Abs(m.C-u.C) <= tol && math.Abs(m.D-u.D) <= tol &&
		math.Abs(m.E-u.E) <= tol && math.Abs(m.F-u.F) <= tol
}
