// Package geo defines the coordinate primitives shared across the
// georeferencing pipeline: pixel-space points, projected world-space points,
// and the 2D affine transform that maps one onto the other.
//
// The Affine type follows the (a, b, c, d, e, f) coefficient convention where
// a pixel (x, y) maps to world (a·x + b·y + c, d·x + e·y + f). Composition is
// plain matrix multiplication with transforms acting on column vectors, so
// Mul(A, B) applies B first. All operations are pure; transforms are value
// types and never mutated in place.
package geo
