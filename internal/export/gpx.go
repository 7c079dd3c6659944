package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"caveplan/internal/catalog"
)

type gpxWaypoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Name string  `xml:"name,omitempty"`
	Desc string  `xml:"desc,omitempty"`
}

type gpxDocument struct {
	XMLName   xml.Name      `xml:"gpx"`
	Version   string        `xml:"version,attr"`
	Creator   string        `xml:"creator,attr"`
	XMLNS     string        `xml:"xmlns,attr"`
	Waypoints []gpxWaypoint `xml:"wpt"`
}

// WriteGPX writes catalog entries as GPX 1.1 waypoints. Caves without
// entrance coordinates are skipped; the count of written waypoints is
// returned.
func WriteGPX(w io.Writer, caves []catalog.Cave) (int, error) {
	doc := gpxDocument{
		Version: "1.1",
		Creator: "caveplan",
		XMLNS:   "http://www.topografix.com/GPX/1/1",
	}

	for _, cave := range caves {
		if !cave.HasCoordinates() {
			continue
		}
		doc.Waypoints = append(doc.Waypoints, gpxWaypoint{
			Lat:  cave.Latitude,
			Lon:  cave.Longitude,
			Name: cave.Name,
			Desc: waypointDescription(cave),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return 0, fmt.Errorf("write gpx: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode gpx: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return 0, fmt.Errorf("write gpx: %w", err)
	}
	return len(doc.Waypoints), nil
}

func waypointDescription(cave catalog.Cave) string {
	var parts []string
	if cave.InventoryNumber != "" {
		parts = append(parts, "Inventory: "+cave.InventoryNumber)
	}
	if cave.Region != "" {
		parts = append(parts, "Region: "+cave.Region)
	}
	if cave.Commune != "" {
		parts = append(parts, "Commune: "+cave.Commune)
	}
	return strings.Join(parts, " | ")
}
