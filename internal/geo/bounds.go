package geo

import "math"

// Bounds is an axis-aligned bounding box in projected world coordinates.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// ImageBounds returns the projected bounding box covered by an image of the
// given pixel dimensions under the transform. The four image corners are
// mapped and the min/max taken, so the box is correct under any rotation.
func ImageBounds(t Affine, width, height int) Bounds {
	w := float64(width)
	h := float64(height)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, c := range corners {
		x, y := t.Apply(c[0], c[1])
		b.MinX = math.Min(b.MinX, x)
		b.MinY = math.Min(b.MinY, y)
		b.MaxX = math.Max(b.MaxX, x)
		b.MaxY = math.Max(b.MaxY, y)
	}
	return b
}
