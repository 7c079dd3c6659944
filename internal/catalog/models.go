package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"caveplan/internal/geo"
)

// Plan graphics types accepted as georeferenceable plans.
var planGraphicsTypes = map[string]struct{}{
	"plan":            {},
	"plan i przekrój": {},
}

// PlanImage describes one scanned graphic attached to a cave record.
type PlanImage struct {
	Path     string            `json:"image_path"`
	Metadata PlanImageMetadata `json:"metadata"`
}

// PlanImageMetadata carries the scraper's classification of the graphic.
type PlanImageMetadata struct {
	GraphicsType string `json:"graphics_type_name"`
}

// IsPlan reports whether the graphic is a cave plan (possibly combined with
// a section) rather than a photo or cross-section.
func (p PlanImage) IsPlan() bool {
	_, ok := planGraphicsTypes[strings.ToLower(strings.TrimSpace(p.Metadata.GraphicsType))]
	return ok
}

// Cave is one record of the scraped cave inventory.
type Cave struct {
	CaveID          string      `json:"cave_id"`
	Name            string      `json:"name"`
	InventoryNumber string      `json:"inventory_number"`
	Region          string      `json:"region"`
	Commune         string      `json:"commune"`
	Latitude        float64     `json:"latitude"`
	Longitude       float64     `json:"longitude"`
	Images          []PlanImage `json:"images"`
}

// Coordinate returns the WGS84 entrance coordinate.
func (c *Cave) Coordinate() geo.GeoCoordinate {
	return geo.GeoCoordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

// HasCoordinates reports whether the record carries a usable entrance
// position. The upstream pipeline writes (0, 0) when geocoding failed.
func (c *Cave) HasCoordinates() bool {
	return !c.Coordinate().IsZero()
}

// PlanImages returns only the graphics suitable for georeferencing, in
// catalog order.
func (c *Cave) PlanImages() []PlanImage {
	plans := make([]PlanImage, 0, len(c.Images))
	for _, img := range c.Images {
		if img.IsPlan() {
			plans = append(plans, img)
		}
	}
	return plans
}

// Slug returns a filesystem-safe identifier built from the cave id and the
// inventory number, with Polish diacritics folded to ASCII.
func (c *Cave) Slug() string {
	parts := []string{c.CaveID}
	if inv := strings.TrimSpace(c.InventoryNumber); inv != "" {
		parts = append(parts, inv)
	}
	return slugify(strings.Join(parts, "_"))
}

var polishFold = strings.NewReplacer("ł", "l", "Ł", "L")

func slugify(s string) string {
	// NFD + mark removal folds ą→a, ś→s and friends; ł is a distinct letter
	// rather than a composed one and needs its own mapping.
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		polishFold.Replace(s))
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '_' || unicode.IsSpace(r) || r == '/':
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
