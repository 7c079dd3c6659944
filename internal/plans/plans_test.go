package plans_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"caveplan/internal/plans"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestOpenDecodesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, 320, 200)

	img, size, err := plans.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img == nil {
		t.Fatal("Open returned nil image")
	}
	if size.Width != 320 || size.Height != 200 {
		t.Errorf("size = %dx%d, want 320x200", size.Width, size.Height)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, _, err := plans.Open(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProbeReadsDimensionsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, 1024, 768)

	size, err := plans.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if size.Width != 1024 || size.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", size.Width, size.Height)
	}
}

func TestFindPlanFilePrefersCaveSubdirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "J.Mg.01.01", "plan.png")
	flat := filepath.Join(dir, "plan.png")
	writePNG(t, nested, 10, 10)
	writePNG(t, flat, 10, 10)

	got, err := plans.FindPlanFile(dir, "J.Mg.01.01", "https://example.org/media/plan.png")
	if err != nil {
		t.Fatalf("FindPlanFile: %v", err)
	}
	if got != nested {
		t.Errorf("resolved %s, want %s", got, nested)
	}
}

func TestFindPlanFileFallsBackToFlatLayout(t *testing.T) {
	dir := t.TempDir()
	flat := filepath.Join(dir, "plan.png")
	writePNG(t, flat, 10, 10)

	got, err := plans.FindPlanFile(dir, "J.Mg.01.01", "plan.png")
	if err != nil {
		t.Fatalf("FindPlanFile: %v", err)
	}
	if got != flat {
		t.Errorf("resolved %s, want %s", got, flat)
	}
}

func TestFindPlanFileMissing(t *testing.T) {
	if _, err := plans.FindPlanFile(t.TempDir(), "X.01", "gone.png"); err == nil {
		t.Fatal("expected error when no candidate exists")
	}
}
