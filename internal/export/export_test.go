package export_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"caveplan/internal/catalog"
	"caveplan/internal/export"
	"caveplan/internal/geo"
	"caveplan/internal/geodesy"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestWorldFileRoundTrip(t *testing.T) {
	transform := geo.Affine{
		A: 0.5, B: -0.0123456789, C: 571234.5678,
		D: 0.0123456789, E: -0.5, F: 212345.1234,
	}

	path := filepath.Join(t.TempDir(), "plan.tfw")
	if err := export.WriteWorldFile(path, transform); err != nil {
		t.Fatalf("WriteWorldFile: %v", err)
	}

	got, err := export.ParseWorldFile(path)
	if err != nil {
		t.Fatalf("ParseWorldFile: %v", err)
	}
	if diff := cmp.Diff(transform, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWorldFileRejectsShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.tfw")
	if err := writeFile(path, "0.5\n0\n0\n-0.5\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := export.ParseWorldFile(path); err == nil {
		t.Fatal("expected error for world file with fewer than 6 lines")
	}
}

func TestWorldFilePathByExtension(t *testing.T) {
	cases := []struct {
		image string
		want  string
	}{
		{"plan.tif", "plan.tfw"},
		{"plan.TIFF", "plan.tfw"},
		{"plan.jpg", "plan.jgw"},
		{"plan.jpeg", "plan.jgw"},
		{"plan.png", "plan.pgw"},
		{"plan.webp", "plan.wld"},
	}
	for _, tc := range cases {
		if got := export.WorldFilePath(tc.image); got != tc.want {
			t.Errorf("WorldFilePath(%q) = %q, want %q", tc.image, got, tc.want)
		}
	}
}

func TestFindWorldFilePrefersTFW(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "plan.jpg")
	tfw := filepath.Join(dir, "plan.tfw")
	jgw := filepath.Join(dir, "plan.jgw")
	for _, p := range []string{tfw, jgw} {
		if err := writeFile(p, "0.5\n0\n0\n-0.5\n0\n0\n"); err != nil {
			t.Fatal(err)
		}
	}

	got, err := export.FindWorldFile(image)
	if err != nil {
		t.Fatalf("FindWorldFile: %v", err)
	}
	if got != tfw {
		t.Errorf("FindWorldFile = %q, want %q", got, tfw)
	}
}

func TestOverlayBoundsWGS84Identity(t *testing.T) {
	// 0.001 degrees per pixel, north-up, anchored at lon 19.5, lat 49.3.
	transform := geo.Affine{A: 0.001, C: 19.5, E: -0.001, F: 49.3}

	box := export.OverlayBounds(transform, 100, 200, geodesy.WGS84{})

	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	if !approx(box.West, 19.5) || !approx(box.East, 19.6) {
		t.Errorf("east/west = %v/%v, want 19.6/19.5", box.East, box.West)
	}
	if !approx(box.North, 49.3) || !approx(box.South, 49.1) {
		t.Errorf("north/south = %v/%v, want 49.3/49.1", box.North, box.South)
	}
}

func TestOverlayBoundsPL1992(t *testing.T) {
	projector, err := geodesy.ForCRS(geodesy.CRSPL1992)
	if err != nil {
		t.Fatal(err)
	}

	// Anchor the image near Zakopane and give it a 0.5 m pixel.
	x, y := projector.Forward(49.27, 19.95)
	transform := geo.Affine{A: 0.5, C: x, E: -0.5, F: y}

	box := export.OverlayBounds(transform, 1000, 800, projector)

	if box.North <= box.South {
		t.Errorf("north %v not above south %v", box.North, box.South)
	}
	if box.East <= box.West {
		t.Errorf("east %v not east of west %v", box.East, box.West)
	}
	// A 500x400 m image spans well under a tenth of a degree.
	if span := box.North - box.South; span <= 0 || span > 0.1 {
		t.Errorf("latitude span %v out of range", span)
	}
	if box.South > 49.27 || box.North < 49.27 {
		t.Errorf("box [%v, %v] does not straddle anchor latitude", box.South, box.North)
	}
}

func TestWriteKML(t *testing.T) {
	var buf strings.Builder
	box := export.LatLonBox{North: 49.3, South: 49.1, East: 19.6, West: 19.5}

	if err := export.WriteKML(&buf, "Jaskinia Miętusia Plan", "plan.png", box); err != nil {
		t.Fatalf("WriteKML: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`xmlns="http://www.opengis.net/kml/2.2"`,
		"<GroundOverlay>",
		"<href>plan.png</href>",
		"<north>49.3</north>",
		"<west>19.5</west>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("KML output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteGPXSkipsCavesWithoutCoordinates(t *testing.T) {
	caves := []catalog.Cave{
		{
			CaveID:          "J.Mg.01.01",
			Name:            "Jaskinia Miętusia",
			InventoryNumber: "J.Mg.01.01",
			Region:          "Tatry",
			Commune:         "Kościelisko",
			Latitude:        49.2528,
			Longitude:       19.9067,
		},
		{CaveID: "X.00.00", Name: "Bez lokalizacji"},
	}

	var buf strings.Builder
	n, err := export.WriteGPX(&buf, caves)
	if err != nil {
		t.Fatalf("WriteGPX: %v", err)
	}
	if n != 1 {
		t.Errorf("wrote %d waypoints, want 1", n)
	}

	out := buf.String()
	for _, want := range []string{
		`version="1.1"`,
		`lat="49.2528"`,
		"<name>Jaskinia Miętusia</name>",
		"Inventory: J.Mg.01.01 | Region: Tatry | Commune: Kościelisko",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GPX output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bez lokalizacji") {
		t.Error("GPX output includes cave without coordinates")
	}
}
