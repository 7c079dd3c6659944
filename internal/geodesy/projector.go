package geodesy

import "fmt"

// Supported CRS identifiers.
const (
	CRSWGS84  = "EPSG:4326"
	CRSPL1992 = "EPSG:2180"
)

// Projector converts between WGS84 geographic coordinates (degrees) and a
// projected CRS (meters, easting/northing).
type Projector interface {
	// Forward projects a WGS84 latitude/longitude to projected (x, y).
	Forward(latDeg, lonDeg float64) (x, y float64)

	// Inverse converts projected (x, y) back to WGS84 latitude/longitude.
	Inverse(x, y float64) (latDeg, lonDeg float64)

	// CRS returns the identifier of the projected system.
	CRS() string
}

// ForCRS returns the projector for the given CRS identifier.
func ForCRS(code string) (Projector, error) {
	switch code {
	case CRSPL1992:
		return PL1992{}, nil
	case CRSWGS84:
		return WGS84{}, nil
	default:
		return nil, fmt.Errorf("geodesy: no projector for CRS %q", code)
	}
}

// WGS84 is the identity projector for data that stays geographic. The
// "projected" x is longitude and y is latitude, both in degrees.
type WGS84 struct{}

func (WGS84) Forward(latDeg, lonDeg float64) (float64, float64) { return lonDeg, latDeg }
func (WGS84) Inverse(x, y float64) (float64, float64)           { return y, x }
func (WGS84) CRS() string                                       { return CRSWGS84 }
