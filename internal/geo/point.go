package geo

import (
	"fmt"
	"math"
)

// PixelPoint is a location in image space. The origin is the top-left corner
// and Y grows downward.
type PixelPoint struct {
	X int
	Y int
}

func (p PixelPoint) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// DistanceTo returns the Euclidean distance to other in pixels.
func (p PixelPoint) DistanceTo(other PixelPoint) float64 {
	dx := float64(other.X - p.X)
	dy := float64(other.Y - p.Y)
	return math.Hypot(dx, dy)
}

// WorldPoint is a location in a projected CRS, in meters. Y grows northward.
type WorldPoint struct {
	X float64
	Y float64
}

func (p WorldPoint) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// GeoCoordinate is a WGS84 geographic position in degrees.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// IsZero reports whether both components are exactly zero, the upstream
// catalog's marker for "no coordinate available".
func (c GeoCoordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Valid reports whether the coordinate lies inside the WGS84 domain.
func (c GeoCoordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
