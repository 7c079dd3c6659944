package geo

import (
	"fmt"
	"math"
)

// Affine is a 2D affine transform with coefficients
//
//	| A B C |
//	| D E F |
//	| 0 0 1 |
//
// mapping (x, y) to (A·x + B·y + C, D·x + E·y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation returns a transform that shifts by (tx, ty).
func Translation(tx, ty float64) Affine {
	return Affine{A: 1, C: tx, E: 1, F: ty}
}

// Scaling returns a transform that scales by (sx, sy) about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Rotation returns a transform that rotates counter-clockwise by the given
// angle in degrees, about the origin, in a Y-up coordinate system.
func Rotation(degCCW float64) Affine {
	rad := degCCW * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// Mul composes t with other so that the resulting transform applies other
// first: (t.Mul(other)).Apply(p) == t.Apply(other.Apply(p)).
func (t Affine) Mul(other Affine) Affine {
	return Affine{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply maps the point (x, y) through the transform.
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// ApplyPixel maps a pixel point to world space.
func (t Affine) ApplyPixel(p PixelPoint) WorldPoint {
	x, y := t.Apply(float64(p.X), float64(p.Y))
	return WorldPoint{X: x, Y: y}
}

// Determinant returns the determinant of the linear part.
func (t Affine) Determinant() float64 {
	return t.A*t.E - t.B*t.D
}

// Invertible reports whether the transform can be inverted.
func (t Affine) Invertible() bool {
	return t.Determinant() != 0
}

// Invert returns the inverse transform. It fails when the linear part is
// singular.
func (t Affine) Invert() (Affine, error) {
	det := t.Determinant()
	if det == 0 {
		return Affine{}, fmt.Errorf("affine: transform %v is singular", t)
	}
	idet := 1 / det
	inv := Affine{
		A: t.E * idet,
		B: -t.B * idet,
		D: -t.D * idet,
		E: t.A * idet,
	}
	inv.C = -(inv.A*t.C + inv.B*t.F)
	inv.F = -(inv.D*t.C + inv.E*t.F)
	return inv, nil
}

// Coefficients returns the six coefficients in (a, b, c, d, e, f) order.
func (t Affine) Coefficients() [6]float64 {
	return [6]float64{t.A, t.B, t.C, t.D, t.E, t.F}
}

func (t Affine) String() string {
	return fmt.Sprintf("|%.6f %.6f %.2f|\n|%.6f %.6f %.2f|", t.A, t.B, t.C, t.D, t.E, t.F)
}
