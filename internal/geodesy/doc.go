// Package geodesy provides the geodetic pieces of the georeferencing pipeline:
// the grid-convergence approximation applied to orientation measurements and
// the Projector abstraction that converts WGS84 coordinates into a projected
// CRS and back.
//
// Projection is deliberately kept behind a small interface so the rest of the
// system treats it as a black box; the package ships the one implementation
// the default target CRS needs (PL-1992, EPSG:2180) alongside a WGS84
// passthrough. Everything here is pure computation with no shared state.
package geodesy
