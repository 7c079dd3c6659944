package session

import (
	"errors"
	"fmt"
	"math"

	"caveplan/internal/geo"
)

// ErrInvalidMeasurement marks measurements that cannot produce a transform:
// a zero-length scale line or a non-positive real-world distance.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// ScaleMeasurement is a scale bar marked on the plan: two distinct pixel
// points and the real-world length of the segment between them.
type ScaleMeasurement struct {
	P1     geo.PixelPoint
	P2     geo.PixelPoint
	Meters float64
}

// PixelDistance returns the length of the marked segment in pixels.
func (s ScaleMeasurement) PixelDistance() float64 {
	return s.P1.DistanceTo(s.P2)
}

// PixelsPerMeter returns the plan scale derived from the measurement.
func (s ScaleMeasurement) PixelsPerMeter() float64 {
	if s.Meters <= 0 {
		return 0
	}
	return s.PixelDistance() / s.Meters
}

// Validate checks the measurement invariants.
func (s ScaleMeasurement) Validate() error {
	if s.PixelDistance() == 0 {
		return fmt.Errorf("%w: scale points %v and %v coincide", ErrInvalidMeasurement, s.P1, s.P2)
	}
	if s.Meters <= 0 {
		return fmt.Errorf("%w: scale distance %v m is not positive", ErrInvalidMeasurement, s.Meters)
	}
	return nil
}

// Orientation is the outcome of the north-direction step: either skipped
// (north assumed straight up) or measured from a base→tip arrow. The zero
// value is the skipped variant; measured values only exist through
// MeasuredOrientation, so exactly one path is taken by construction.
type Orientation struct {
	measured bool
	base     geo.PixelPoint
	tip      geo.PixelPoint
}

// SkippedOrientation reports that north is already straight up on the plan.
func SkippedOrientation() Orientation {
	return Orientation{}
}

// MeasuredOrientation records a north arrow from base to tip in pixel space.
func MeasuredOrientation(base, tip geo.PixelPoint) Orientation {
	return Orientation{measured: true, base: base, tip: tip}
}

// Measured returns the arrow endpoints when the orientation was marked.
func (o Orientation) Measured() (base, tip geo.PixelPoint, ok bool) {
	return o.base, o.tip, o.measured
}

// AngleFromTopDegrees returns the clockwise angle from straight up (the
// negative-y pixel direction) to the marked arrow, in degrees. A skipped
// orientation contributes 0.
func (o Orientation) AngleFromTopDegrees() float64 {
	if !o.measured {
		return 0
	}
	dx := float64(o.tip.X - o.base.X)
	dy := float64(o.tip.Y - o.base.Y)
	// atan2(dx, -dy) measures clockwise from image top because pixel y
	// grows downward.
	return math.Atan2(dx, -dy) * 180 / math.Pi
}

// Measurements is the complete output of one session, consumed exactly once
// by the transform composer.
type Measurements struct {
	Reference      geo.PixelPoint
	Scale          ScaleMeasurement
	Orientation    Orientation
	DeclinationDeg float64
}

// Validate re-checks the invariants a finished session guarantees.
func (m *Measurements) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: no measurements", ErrInvalidMeasurement)
	}
	return m.Scale.Validate()
}
