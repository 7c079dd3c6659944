// Package georef turns a completed measurement session into a georeferencing
// transform and sequences the whole interactive pipeline around it.
//
// Compose is the critical mathematics: it builds the pixel→world affine
// transform by sequential composition (origin offset, scale with Y flip,
// rotation, world translation) and guarantees that the reference pixel maps
// exactly onto the entrance's projected coordinate. The Orchestrator wires
// the projector, the convergence correction, the session, and the composer
// into one run that ends in exactly one of success, cancellation, or failure.
package georef
