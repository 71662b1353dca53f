// Package geom implements the 2-D affine transform algebra and bounding-box
// arithmetic underlying panel composition.
//
// # Transforms
//
// [Matrix] holds the six coefficients of an affine transform in SVG order:
//
//	| A  C  E |   x' = A*x + C*y + E
//	| B  D  F |   y' = B*x + D*y + F
//
// Transforms are composed with [Matrix.Mul]; m.Mul(u) applies u first and m
// second, matching how an ancestor's transform wraps a child's. Composition is
// associative but not commutative.
//
// # Bounding boxes
//
// [Box] is an axis-aligned rectangle with an explicit empty state. An empty
// box means "no geometry found" and is distinct from a zero-area box at a
// point. Transforming a box maps all four corners and re-takes the axis-
// aligned min/max, which over-approximates under rotation or skew; that is
// the only representable behavior and callers must not tighten it.
//
// # Parsing
//
// [ParseTransform] converts an SVG transform attribute (a chain of matrix,
// translate, scale, rotate, skewX, skewY primitives) into a single Matrix.
package geom
