// Package svgdom provides a generic SVG element tree with parsing,
// serialization, traversal, and geometry resolution.
//
// The tree is deliberately domain-agnostic: an [Element] is just a tag name,
// ordered attributes, text, and children. Structural conventions (which group
// is an axes container, which path is a spine) are classified elsewhere, so
// geometry resolution here stays reusable and testable on its own.
//
// # Geometry
//
// [Bounds] computes the axis-aligned bounding box of every geometry-bearing
// descendant of an element, composing each ancestor's transform attribute
// top-down. Text elements contribute their anchor point only; full glyph
// extents are not measured. A subtree without geometry yields an empty box,
// which is distinct from a zero-area box.
//
// # Identifier hygiene
//
// Merging several standalone documents into one composite can collide on id
// attributes (clip paths especially). [RewriteIDs] appends a unique suffix to
// every id and fixes url(#...) and href references accordingly.
package svgdom
