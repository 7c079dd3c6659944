package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"caveplan/internal/geo"
	"caveplan/internal/geodesy"
)

// LatLonBox is a WGS84 bounding box for a KML ground overlay.
type LatLonBox struct {
	North float64 `xml:"north"`
	South float64 `xml:"south"`
	East  float64 `xml:"east"`
	West  float64 `xml:"west"`
}

type kmlIcon struct {
	Href string `xml:"href"`
}

type kmlGroundOverlay struct {
	Name      string    `xml:"name"`
	Icon      kmlIcon   `xml:"Icon"`
	LatLonBox LatLonBox `xml:"LatLonBox"`
}

type kmlDocument struct {
	XMLName xml.Name         `xml:"kml"`
	XMLNS   string           `xml:"xmlns,attr"`
	Overlay kmlGroundOverlay `xml:"GroundOverlay"`
}

// OverlayBounds computes the WGS84 bounding box of an image under the
// transform. The projected corners are mapped back through the projector
// and the min/max taken, so the box stays correct when the projection
// grid is not axis-aligned with WGS84.
func OverlayBounds(t geo.Affine, width, height int, projector geodesy.Projector) LatLonBox {
	bounds := geo.ImageBounds(t, width, height)

	corners := [4][2]float64{
		{bounds.MinX, bounds.MinY},
		{bounds.MaxX, bounds.MinY},
		{bounds.MinX, bounds.MaxY},
		{bounds.MaxX, bounds.MaxY},
	}

	box := LatLonBox{
		North: math.Inf(-1), South: math.Inf(1),
		East: math.Inf(-1), West: math.Inf(1),
	}
	for _, c := range corners {
		lat, lon := projector.Inverse(c[0], c[1])
		box.North = math.Max(box.North, lat)
		box.South = math.Min(box.South, lat)
		box.East = math.Max(box.East, lon)
		box.West = math.Min(box.West, lon)
	}
	return box
}

// WriteKML writes a KML ground overlay document. iconHref should be the
// raster's file name relative to the KML, which is how map viewers resolve
// overlay images shipped alongside the document.
func WriteKML(w io.Writer, name, iconHref string, box LatLonBox) error {
	doc := kmlDocument{
		XMLNS: "http://www.opengis.net/kml/2.2",
		Overlay: kmlGroundOverlay{
			Name:      name,
			Icon:      kmlIcon{Href: iconHref},
			LatLonBox: box,
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode kml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}
