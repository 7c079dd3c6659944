package georef

import (
	"fmt"
	"math"

	"caveplan/internal/geo"
	"caveplan/internal/session"
)

// anchorTolerance bounds the relative error allowed when re-applying the
// finished transform to the reference pixel.
const anchorTolerance = 1e-9

// Compose builds the pixel→world transform from a completed session's
// measurements, the projected world coordinate of the reference point, and
// the grid convergence at that point in degrees.
//
// The transform is composed sequentially, applied right to left:
//
//  1. translate the reference pixel to the origin,
//  2. scale pixels to meters, negating Y because pixel Y grows downward
//     while world Y grows northward,
//  3. rotate by the negated total clockwise angle (orientation + manual
//     declination + convergence, all clockwise corrections, summed),
//  4. translate the origin onto the reference world coordinate.
//
// Step 1 pins the reference pixel to the origin and steps 2–3 fix the
// origin, so the reference pixel is guaranteed to land exactly on the world
// coordinate; Compose re-checks that anchor before returning.
func Compose(m *session.Measurements, world geo.WorldPoint, convergenceDeg float64) (geo.Affine, error) {
	if err := m.Validate(); err != nil {
		return geo.Affine{}, Wrap(ErrInvalidMeasurement, "compose", "measurements rejected", err)
	}

	pixelsPerMeter := m.Scale.PixelsPerMeter()
	if pixelsPerMeter <= 0 {
		return geo.Affine{}, Wrap(ErrInvalidMeasurement, "compose",
			fmt.Sprintf("scale of %v pixels per meter is not positive", pixelsPerMeter), nil)
	}
	metersPerPixel := 1 / pixelsPerMeter

	totalClockwiseDeg := m.Orientation.AngleFromTopDegrees() + m.DeclinationDeg + convergenceDeg

	originOffset := geo.Translation(-float64(m.Reference.X), -float64(m.Reference.Y))
	scale := geo.Scaling(metersPerPixel, -metersPerPixel)
	// Rotation takes counter-clockwise degrees, the collected angles are
	// clockwise corrections.
	rotate := geo.Rotation(-totalClockwiseDeg)
	worldShift := geo.Translation(world.X, world.Y)

	transform := worldShift.Mul(rotate).Mul(scale).Mul(originOffset)

	if err := verifyAnchor(transform, m.Reference, world); err != nil {
		return geo.Affine{}, err
	}
	return transform, nil
}

// verifyAnchor confirms the reference pixel maps onto the reference world
// point. The composition makes this hold by construction; the check guards
// against callers invoking Compose with measurements mutated after capture.
func verifyAnchor(t geo.Affine, refPixel geo.PixelPoint, world geo.WorldPoint) error {
	got := t.ApplyPixel(refPixel)
	if !withinRelative(got.X, world.X) || !withinRelative(got.Y, world.Y) {
		return Wrap(ErrInvalidMeasurement, "compose",
			fmt.Sprintf("anchor check failed: reference pixel %v maps to %v, want %v", refPixel, got, world), nil)
	}
	return nil
}

func withinRelative(got, want float64) bool {
	scale := math.Max(math.Abs(want), 1)
	return math.Abs(got-want) <= anchorTolerance*scale
}
