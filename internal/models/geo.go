package models

import (
	"fmt"
	"math"
	"strings"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is a usable map position.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// BoundingBox is a rectangular lat/lon region used to scope marker queries.
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// Valid reports whether both corners are in range and properly ordered.
func (b BoundingBox) Valid() bool {
	min := Coordinate{Lat: b.MinLat, Lon: b.MinLon}
	max := Coordinate{Lat: b.MaxLat, Lon: b.MaxLon}
	return min.Valid() && max.Valid() && b.MinLat <= b.MaxLat && b.MinLon <= b.MaxLon
}

// Contains reports whether c lies inside the box, borders included.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// QuantizedKey rounds the four corners to the given number of decimal
// degrees and returns a comparison key. Two boxes that differ by less than
// the quantization step share a key, so pan jitter below the step never
// looks like a bounds change.
func (b BoundingBox) QuantizedKey(precision int) string {
	if precision < 0 {
		precision = 0
	}
	return fmt.Sprintf("%.*f,%.*f,%.*f,%.*f",
		precision, b.MinLat,
		precision, b.MinLon,
		precision, b.MaxLat,
		precision, b.MaxLon,
	)
}

// MarkerOrigin distinguishes the two marker sources fed to the map.
type MarkerOrigin string

const (
	// OriginStatic marks entities held locally (e.g. explicitly selected
	// parishes projected onto the map).
	OriginStatic MarkerOrigin = "static"
	// OriginFetched marks markers returned by an in-view bounds query.
	OriginFetched MarkerOrigin = "fetched"
)

// Marker is the lightweight map projection of a parish: enough to place a
// pin and route a click, nothing more. It never carries services.
type Marker struct {
	ID       string       `json:"id"`
	Position Coordinate   `json:"position"`
	Title    string       `json:"title"`
	Location string       `json:"location"`
	Muted    bool         `json:"muted"` // renders with the secondary glyph
	Origin   MarkerOrigin `json:"origin"`
}

// RenderKey namespaces the marker id by origin. Static entities and fetched
// markers live in different upstream key spaces, so the same real-world
// parish may legitimately appear once per origin on the render list.
func (m Marker) RenderKey() string {
	return string(m.Origin) + ":" + m.ID
}

// MarkerFilters are the attribute filters sent along with a bounds query.
type MarkerFilters struct {
	Country  string   `json:"country,omitempty"`
	Services []string `json:"services,omitempty"`
}

// Key folds the filters into a stable string for bounds-key comparison.
func (f MarkerFilters) Key() string {
	return f.Country + "|" + strings.Join(f.Services, ",")
}
