// Package plans loads scanned cave-plan rasters and resolves their on-disk
// locations. The georeferencing core only needs the pixel coordinate space,
// so the package exposes image dimensions cheaply alongside full decoding.
package plans

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // register webp config decoding
)

// Size is an image's pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// Open decodes a plan raster. The upscaling pipeline emits webp alongside
// the scanner's png/jpeg, so webp gets a dedicated decoder; everything else
// goes through the standard registered formats.
func Open(path string) (image.Image, Size, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, Size{}, fmt.Errorf("read plan image: %w", err)
		}
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, Size{}, fmt.Errorf("decode webp plan %s: %w", path, err)
		}
		bounds := img.Bounds()
		return img, Size{Width: bounds.Dx(), Height: bounds.Dy()}, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, Size{}, fmt.Errorf("decode plan %s: %w", path, err)
	}
	bounds := img.Bounds()
	return img, Size{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// Probe reads only the image header and returns the pixel dimensions.
func Probe(path string) (Size, error) {
	file, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("open plan image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Size{}, fmt.Errorf("probe plan %s: %w", path, err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// FindPlanFile resolves a catalog image path against the local image
// directory: first imageDir/caveID/filename, then imageDir/filename.
func FindPlanFile(imageDir, caveID, imagePath string) (string, error) {
	name := filepath.Base(imagePath)

	candidates := []string{
		filepath.Join(imageDir, caveID, name),
		filepath.Join(imageDir, name),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("plan image %s not found under %s", name, imageDir)
}
