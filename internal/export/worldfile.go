// Package export writes the georeferencing artifacts: ESRI world files for
// the raster transform, KML ground overlays for map viewers, and GPX
// waypoints for the whole catalog.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"caveplan/internal/geo"
)

// World file line order is A, D, B, E, C, F. C and F name the world
// coordinate of the upper-left pixel.
const worldFileLines = 6

// worldFileExt maps a raster extension to its world file sidecar extension.
var worldFileExt = map[string]string{
	".tif":  ".tfw",
	".tiff": ".tfw",
	".jpg":  ".jgw",
	".jpeg": ".jgw",
	".png":  ".pgw",
}

// WorldFilePath returns the sidecar world file path for the given image.
// Unknown raster extensions fall back to the generic .wld suffix.
func WorldFilePath(imagePath string) string {
	ext := strings.ToLower(filepath.Ext(imagePath))
	sidecar, ok := worldFileExt[ext]
	if !ok {
		sidecar = ".wld"
	}
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + sidecar
}

// WriteWorldFile writes the transform as a six-line world file.
func WriteWorldFile(path string, t geo.Affine) error {
	var b strings.Builder
	for _, v := range []float64{t.A, t.D, t.B, t.E, t.C, t.F} {
		fmt.Fprintf(&b, "%.10f\n", v)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write world file: %w", err)
	}
	return nil
}

// ParseWorldFile reads a world file back into an affine transform. Blank
// lines are ignored, matching what other GIS tools emit.
func ParseWorldFile(path string) (geo.Affine, error) {
	file, err := os.Open(path)
	if err != nil {
		return geo.Affine{}, fmt.Errorf("open world file: %w", err)
	}
	defer file.Close()

	var values []float64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return geo.Affine{}, fmt.Errorf("world file %s: bad line %q: %w", path, line, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return geo.Affine{}, fmt.Errorf("read world file: %w", err)
	}
	if len(values) < worldFileLines {
		return geo.Affine{}, fmt.Errorf("world file %s: need %d lines, got %d", path, worldFileLines, len(values))
	}

	return geo.Affine{
		A: values[0],
		D: values[1],
		B: values[2],
		E: values[3],
		C: values[4],
		F: values[5],
	}, nil
}

// FindWorldFile locates the world file sidecar for an image, trying the
// common extensions in order.
func FindWorldFile(imagePath string) (string, error) {
	stem := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	for _, ext := range []string{".tfw", ".jgw", ".pgw", ".wld"} {
		candidate := stem + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no world file found for %s", imagePath)
}
