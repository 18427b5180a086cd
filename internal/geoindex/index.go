// Package geoindex holds the parish collection behind an R-Tree so that
// viewport bounding-box queries stay cheap as the dataset grows.
package geoindex

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/dhconnelly/rtreego"

	"pastoral-bknd/internal/models"
)

const (
	tolerance   = 0.0001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
	earthRadius = 6371.0 // km
)

// spatialItem wraps a parish id for R-Tree indexing.
type spatialItem struct {
	id   string
	rect *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is a thread-safe R-Tree backed parish store. Parishes are loaded
// wholesale; there is no per-field mutation.
type Index struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	byID  map[string]models.Parish
	order []string
}

// New creates an empty index.
func New() *Index {
	return &Index{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
		byID: map[string]models.Parish{},
	}
}

// Load replaces the whole collection. Records with invalid coordinates or
// duplicate ids are skipped.
func (ix *Index) Load(parishes []models.Parish) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	ix.byID = make(map[string]models.Parish, len(parishes))
	ix.order = ix.order[:0]

	for _, p := range parishes {
		if p.ID == "" || !p.Location.Valid() {
			continue
		}
		if _, dup := ix.byID[p.ID]; dup {
			continue
		}
		rect := rtreego.Point{p.Location.Lat, p.Location.Lon}.ToRect(tolerance)
		ix.tree.Insert(&spatialItem{id: p.ID, rect: rect})
		ix.byID[p.ID] = p
		ix.order = append(ix.order, p.ID)
	}
}

// All returns the collection in load order.
func (ix *Index) All() []models.Parish {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]models.Parish, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byID[id])
	}
	return out
}

// Get returns the full record for an id.
func (ix *Index) Get(id string) (models.Parish, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	p, ok := ix.byID[id]
	return p, ok
}

// Count returns the number of indexed parishes.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.order)
}

// SearchBox returns all parishes inside the bounding box. The R-Tree yields
// intersection candidates; results are post-filtered for exact containment.
func (ix *Index) SearchBox(box models.BoundingBox) ([]models.Parish, error) {
	if !box.Valid() {
		return nil, fmt.Errorf("invalid bounding box: %+v", box)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	bottomLeft := rtreego.Point{box.MinLat, box.MinLon}
	lengths := []float64{box.MaxLat - box.MinLat, box.MaxLon - box.MinLon}
	// A degenerate (zero-area) box would make rtreego reject the rect.
	for i := range lengths {
		if lengths[i] <= 0 {
			lengths[i] = tolerance
		}
	}

	bounds, err := rtreego.NewRect(bottomLeft, lengths)
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	results := ix.tree.SearchIntersect(bounds)
	parishes := make([]models.Parish, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok {
			continue
		}
		p, ok := ix.byID[item.id]
		if !ok || !box.Contains(p.Location) {
			continue
		}
		parishes = append(parishes, p)
	}

	// rtreego traversal order is structural; callers expect stable output.
	sort.Slice(parishes, func(i, j int) bool { return parishes[i].ID < parishes[j].ID })
	return parishes, nil
}

// Search matches the query case-insensitively against parish names and
// location labels, mirroring the public search endpoint.
func (ix *Index) Search(query string) []models.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var results []models.SearchResult
	for _, id := range ix.order {
		p := ix.byID[id]
		label := p.LocationLabel()
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(label), q) {
			continue
		}
		results = append(results, models.SearchResult{
			ID:       p.ID,
			Name:     p.Name,
			Location: label,
			Position: p.Location,
		})
	}
	return results
}

// Nearest returns up to n parishes ordered by haversine distance from c.
func (ix *Index) Nearest(c models.Coordinate, n int) []models.Parish {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	parishes := make([]models.Parish, 0, len(ix.order))
	for _, id := range ix.order {
		parishes = append(parishes, ix.byID[id])
	}
	sort.SliceStable(parishes, func(i, j int) bool {
		return HaversineKm(c, parishes[i].Location) < HaversineKm(c, parishes[j].Location)
	})
	if n > 0 && len(parishes) > n {
		parishes = parishes[:n]
	}
	return parishes
}

// MarkersInBounds answers a bounds query with attribute filters applied,
// projecting matches down to markers. It lets the server act as its own
// marker source when no remote parish API is configured.
func (ix *Index) MarkersInBounds(ctx context.Context, box models.BoundingBox, filters models.MarkerFilters) ([]models.Marker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parishes, err := ix.SearchBox(box)
	if err != nil {
		return nil, err
	}

	markers := make([]models.Marker, 0, len(parishes))
	for _, p := range parishes {
		if filters.Country != "" && filters.Country != models.FilterAll &&
			p.Country != filters.Country {
			continue
		}
		if len(filters.Services) > 0 && !hasAnyService(p, filters.Services) {
			continue
		}
		m := p.ToMarker(models.OriginFetched)
		m.Muted = len(p.Services) == 0
		markers = append(markers, m)
	}
	return markers, nil
}

// Detail returns the full record for an id, or models.ErrNotFound.
func (ix *Index) Detail(ctx context.Context, id string) (models.Parish, error) {
	if err := ctx.Err(); err != nil {
		return models.Parish{}, err
	}
	p, ok := ix.Get(id)
	if !ok {
		return models.Parish{}, models.ErrNotFound
	}
	return p, nil
}

func hasAnyService(p models.Parish, wanted []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(strings.TrimSpace(w))
		if lw == "" || lw == models.FilterAll {
			return true
		}
		for _, s := range p.Services {
			if strings.Contains(strings.ToLower(s.Type), lw) ||
				strings.Contains(strings.ToLower(s.Name), lw) {
				return true
			}
		}
	}
	return false
}

// HaversineKm calculates the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lon1 := a.Lon * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	lon2 := b.Lon * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadius * c
}
