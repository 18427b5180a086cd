package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pastoral-bknd/internal/models"
)

// ParishAPIClient talks to the black-box parish data source over HTTP/JSON.
// Upstream ids are numeric; they are converted to the canonical string key
// here, at the edge, so nothing inside the core ever compares mixed key
// types.
type ParishAPIClient struct {
	baseURL string
	httpc   *http.Client
}

func NewParishAPIClient(baseURL string, timeout time.Duration) *ParishAPIClient {
	return &ParishAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// upstream wire shapes
type apiCoordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type apiSearchResult struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	Coordinates apiCoordinates `json:"coordinates"`
}

type apiSearchResponse struct {
	Parishes []apiSearchResult `json:"parishes"`
}

type apiMarker struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	Coordinates apiCoordinates `json:"coordinates"`
	Muted       bool           `json:"muted"`
}

type apiMarkersResponse struct {
	Markers []apiMarker `json:"markers"`
}

// Search queries parishes by name or location.
func (c *ParishAPIClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s/public/parish?name-or-location=%s", c.baseURL, url.QueryEscape(query))

	var resp apiSearchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("parish search: %w", err)
	}

	results := make([]models.SearchResult, 0, len(resp.Parishes))
	for _, p := range resp.Parishes {
		results = append(results, models.SearchResult{
			ID:       strconv.FormatInt(p.ID, 10),
			Name:     p.Name,
			Location: p.Location,
			Position: models.Coordinate{Lat: p.Coordinates.Lat, Lon: p.Coordinates.Long},
		})
	}
	return results, nil
}

// MarkersInBounds fetches the markers inside a bounding box, with the
// active attribute filters as query parameters.
func (c *ParishAPIClient) MarkersInBounds(ctx context.Context, box models.BoundingBox, filters models.MarkerFilters) ([]models.Marker, error) {
	q := url.Values{}
	q.Set("min-lat", strconv.FormatFloat(box.MinLat, 'f', -1, 64))
	q.Set("min-long", strconv.FormatFloat(box.MinLon, 'f', -1, 64))
	q.Set("max-lat", strconv.FormatFloat(box.MaxLat, 'f', -1, 64))
	q.Set("max-long", strconv.FormatFloat(box.MaxLon, 'f', -1, 64))
	if filters.Country != "" && filters.Country != models.FilterAll {
		q.Set("country", filters.Country)
	}
	if len(filters.Services) > 0 {
		q.Set("services", strings.Join(filters.Services, ","))
	}

	var resp apiMarkersResponse
	u := c.baseURL + "/public/parish/markers?" + q.Encode()
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("markers in bounds: %w", err)
	}

	markers := make([]models.Marker, 0, len(resp.Markers))
	for _, m := range resp.Markers {
		markers = append(markers, models.Marker{
			ID:       strconv.FormatInt(m.ID, 10),
			Position: models.Coordinate{Lat: m.Coordinates.Lat, Lon: m.Coordinates.Long},
			Title:    m.Name,
			Location: m.Location,
			Muted:    m.Muted,
			Origin:   models.OriginFetched,
		})
	}
	return markers, nil
}

// Detail fetches the full record by key. A 404 maps to models.ErrNotFound.
func (c *ParishAPIClient) Detail(ctx context.Context, id string) (models.Parish, error) {
	u := c.baseURL + "/public/parish/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Parish{}, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.Parish{}, fmt.Errorf("parish detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.Parish{}, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return models.Parish{}, fmt.Errorf("parish detail: unexpected status %d", resp.StatusCode)
	}

	var p models.Parish
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.Parish{}, fmt.Errorf("parish detail: %w", err)
	}
	if p.ID == "" {
		return models.Parish{}, models.ErrNotFound
	}
	return p, nil
}

func (c *ParishAPIClient) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
