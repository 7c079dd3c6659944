package geodesy

import "math"

// GRS80 ellipsoid.
const (
	grs80A = 6378137.0
	grs80F = 1.0 / 298.257222101
)

// PL-1992 transverse Mercator parameters (EPSG:2180).
const (
	pl1992ScaleFactor  = 0.9993
	pl1992FalseEasting = 500000.0
	pl1992FalseNorth   = -5300000.0
)

// PL1992 projects WGS84 coordinates to the PL-1992 plane (EPSG:2180), the
// national metric system for Poland. It is a transverse Mercator projection on
// GRS80 with central meridian 19°E, implemented with the usual series
// expansions; the error against a full PROJ evaluation stays below a
// centimeter inside the projection's area of use.
//
// The WGS84 and ETRS89/GRS80 datums are treated as coincident, which holds to
// well under a meter and is far below plan-scan accuracy.
type PL1992 struct{}

func (PL1992) CRS() string { return CRSPL1992 }

// Forward projects latitude/longitude in degrees to (easting, northing) in
// meters.
func (PL1992) Forward(latDeg, lonDeg float64) (float64, float64) {
	e2 := grs80F * (2 - grs80F)
	ep2 := e2 / (1 - e2)

	phi := latDeg * math.Pi / 180
	dLambda := (lonDeg - pl1992CentralMeridianDeg) * math.Pi / 180

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := grs80A / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := dLambda * cosPhi

	m := meridianArc(phi, e2)

	a2 := a * a
	a3 := a2 * a
	a4 := a2 * a2
	a5 := a4 * a
	a6 := a4 * a2

	x := pl1992FalseEasting + pl1992ScaleFactor*n*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*ep2)*a5/120)

	y := pl1992FalseNorth + pl1992ScaleFactor*(m+
		n*tanPhi*(a2/2+
			(5-t+9*c+4*c*c)*a4/24+
			(61-58*t+t*t+600*c-330*ep2)*a6/720))

	return x, y
}

// Inverse converts (easting, northing) in meters back to latitude/longitude
// in degrees.
func (PL1992) Inverse(x, y float64) (float64, float64) {
	e2 := grs80F * (2 - grs80F)
	ep2 := e2 / (1 - e2)

	m := (y - pl1992FalseNorth) / pl1992ScaleFactor
	mu := m / (grs80A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := grs80A / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := grs80A * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := (x - pl1992FalseEasting) / (n1 * pl1992ScaleFactor)

	d2 := d * d
	d3 := d2 * d
	d4 := d2 * d2
	d5 := d4 * d
	d6 := d4 * d2

	phi := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)

	lambda := (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120) / cosPhi1

	latDeg := phi * 180 / math.Pi
	lonDeg := pl1992CentralMeridianDeg + lambda*180/math.Pi
	return latDeg, lonDeg
}

// meridianArc returns the meridian arc length from the equator to latitude
// phi (radians) on an ellipsoid with eccentricity squared e2.
func meridianArc(phi, e2 float64) float64 {
	e4 := e2 * e2
	e6 := e4 * e2
	return grs80A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
