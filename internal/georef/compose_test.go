package georef_test

import (
	"errors"
	"math"
	"testing"

	"caveplan/internal/geo"
	"caveplan/internal/georef"
	"caveplan/internal/session"
)

func baseMeasurements() *session.Measurements {
	return &session.Measurements{
		Reference: geo.PixelPoint{X: 500, Y: 500},
		Scale: session.ScaleMeasurement{
			P1:     geo.PixelPoint{X: 500, Y: 500},
			P2:     geo.PixelPoint{X: 500, Y: 600},
			Meters: 50,
		},
		Orientation: session.SkippedOrientation(),
	}
}

func mustCompose(t *testing.T, m *session.Measurements, world geo.WorldPoint, conv float64) geo.Affine {
	t.Helper()
	transform, err := georef.Compose(m, world, conv)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	return transform
}

func assertMaps(t *testing.T, transform geo.Affine, px geo.PixelPoint, want geo.WorldPoint) {
	t.Helper()
	got := transform.ApplyPixel(px)
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Fatalf("pixel %v maps to %v, want %v", px, got, want)
	}
}

func TestComposeReferenceScenario(t *testing.T) {
	// 100 px scale line for 50 m gives 0.5 m/px; north up, no corrections.
	world := geo.WorldPoint{X: 1000, Y: 2000}
	transform := mustCompose(t, baseMeasurements(), world, 0)

	assertMaps(t, transform, geo.PixelPoint{X: 500, Y: 500}, world)
	// 100 px up in the image is 50 m north.
	assertMaps(t, transform, geo.PixelPoint{X: 500, Y: 400}, geo.WorldPoint{X: 1000, Y: 2050})
	// 100 px right is 50 m east.
	assertMaps(t, transform, geo.PixelPoint{X: 600, Y: 500}, geo.WorldPoint{X: 1050, Y: 2000})
}

func TestComposeRotatedScenario(t *testing.T) {
	// North arrow points right: 90° clockwise. The "up" vector in the image
	// must now map east.
	m := baseMeasurements()
	m.Orientation = session.MeasuredOrientation(geo.PixelPoint{X: 100, Y: 100}, geo.PixelPoint{X: 200, Y: 100})
	world := geo.WorldPoint{X: 1000, Y: 2000}
	transform := mustCompose(t, m, world, 0)

	assertMaps(t, transform, geo.PixelPoint{X: 500, Y: 500}, world)
	assertMaps(t, transform, geo.PixelPoint{X: 500, Y: 400}, geo.WorldPoint{X: 1050, Y: 2000})
}

func TestAnchorInvarianceAcrossInputs(t *testing.T) {
	worlds := []geo.WorldPoint{
		{X: 0, Y: 0},
		{X: 571234.5, Y: 246789.25},
		{X: -12345.6, Y: 9876543.2},
	}
	angles := []float64{0, 13.7, -91.2, 359}
	convergences := []float64{0, 0.45, -0.61}

	for _, world := range worlds {
		for _, angle := range angles {
			for _, conv := range convergences {
				m := baseMeasurements()
				m.DeclinationDeg = angle
				transform := mustCompose(t, m, world, conv)
				got := transform.ApplyPixel(m.Reference)
				relX := math.Abs(got.X-world.X) / math.Max(math.Abs(world.X), 1)
				relY := math.Abs(got.Y-world.Y) / math.Max(math.Abs(world.Y), 1)
				if relX > 1e-9 || relY > 1e-9 {
					t.Fatalf("anchor drifted: world=%v angle=%v conv=%v got=%v", world, angle, conv, got)
				}
			}
		}
	}
}

func TestAxisFlip(t *testing.T) {
	world := geo.WorldPoint{X: 100, Y: 100}
	transform := mustCompose(t, baseMeasurements(), world, 0)

	ref := transform.ApplyPixel(geo.PixelPoint{X: 500, Y: 500})
	down := transform.ApplyPixel(geo.PixelPoint{X: 500, Y: 510})
	right := transform.ApplyPixel(geo.PixelPoint{X: 510, Y: 500})

	if down.Y >= ref.Y {
		t.Fatalf("moving down the image must move south: ref=%v down=%v", ref, down)
	}
	if right.X <= ref.X {
		t.Fatalf("moving right must move east: ref=%v right=%v", ref, right)
	}
}

func TestScaleLinearity(t *testing.T) {
	world := geo.WorldPoint{}
	m := baseMeasurements()
	t1 := mustCompose(t, m, world, 0)

	m2 := baseMeasurements()
	m2.Scale.Meters *= 2
	t2 := mustCompose(t, m2, world, 0)

	// Doubling the real-world distance doubles meters-per-pixel and all
	// offsets from the reference point.
	p := geo.PixelPoint{X: 620, Y: 455}
	w1 := t1.ApplyPixel(p)
	w2 := t2.ApplyPixel(p)
	if math.Abs(w2.X-2*w1.X) > 1e-9 || math.Abs(w2.Y-2*w1.Y) > 1e-9 {
		t.Fatalf("offsets did not scale linearly: %v vs %v", w1, w2)
	}
}

func TestOrientationAdditivity(t *testing.T) {
	world := geo.WorldPoint{X: 500, Y: 500}

	// 30° measured arrow + 5° declination + (−2°) convergence …
	m := baseMeasurements()
	m.Orientation = measuredAtAngle(30)
	m.DeclinationDeg = 5
	split := mustCompose(t, m, world, -2)

	// … must equal a single 33° rotation.
	combined := baseMeasurements()
	combined.Orientation = measuredAtAngle(33)
	whole := mustCompose(t, combined, world, 0)

	p := geo.PixelPoint{X: 700, Y: 300}
	got := split.ApplyPixel(p)
	want := whole.ApplyPixel(p)
	// The arrow endpoints are integer pixels, so each synthesized angle
	// carries sub-microdegree rounding; compare at millimeter precision.
	if math.Abs(got.X-want.X) > 1e-3 || math.Abs(got.Y-want.Y) > 1e-3 {
		t.Fatalf("split rotation %v differs from combined %v", got, want)
	}
}

// measuredAtAngle builds an orientation whose arrow sits at the given
// clockwise angle from image top.
func measuredAtAngle(deg float64) session.Orientation {
	rad := deg * math.Pi / 180
	base := geo.PixelPoint{X: 0, Y: 0}
	tip := geo.PixelPoint{
		X: int(math.Round(1e6 * math.Sin(rad))),
		Y: int(math.Round(-1e6 * math.Cos(rad))),
	}
	return session.MeasuredOrientation(base, tip)
}

func TestComposeRejectsDegenerateScale(t *testing.T) {
	m := baseMeasurements()
	m.Scale.P2 = m.Scale.P1
	if _, err := georef.Compose(m, geo.WorldPoint{}, 0); !errors.Is(err, georef.ErrInvalidMeasurement) {
		t.Fatalf("expected ErrInvalidMeasurement, got %v", err)
	}

	m = baseMeasurements()
	m.Scale.Meters = -1
	if _, err := georef.Compose(m, geo.WorldPoint{}, 0); !errors.Is(err, georef.ErrInvalidMeasurement) {
		t.Fatalf("expected ErrInvalidMeasurement, got %v", err)
	}

	if _, err := georef.Compose(nil, geo.WorldPoint{}, 0); !errors.Is(err, georef.ErrInvalidMeasurement) {
		t.Fatalf("expected ErrInvalidMeasurement for nil measurements, got %v", err)
	}
}
