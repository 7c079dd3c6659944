package geodesy

import "math"

// Central meridian of PL-1992 (EPSG:2180), in degrees east.
const pl1992CentralMeridianDeg = 19.0

// Convergence approximates the grid (meridian) convergence at the given WGS84
// position for the target CRS, in degrees. The returned angle is the clockwise
// rotation of the projection's grid north relative to true north and is meant
// to be added to a clockwise-from-image-top orientation angle.
//
// The small-angle approximation (λ0 − λ)·sin(φ) is accurate well under a
// degree across Poland, which is sufficient for plan georeferencing. Only
// EPSG:2180 has an entry; any other CRS yields 0.0, meaning no grid
// correction is applied rather than signalling an error.
func Convergence(latDeg, lonDeg float64, targetCRS string) float64 {
	switch targetCRS {
	case CRSPL1992:
		return (pl1992CentralMeridianDeg - lonDeg) * math.Sin(latDeg*math.Pi/180)
	default:
		return 0.0
	}
}
