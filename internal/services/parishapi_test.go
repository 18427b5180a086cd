package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

// TestParishAPIClient_MarkersInBounds: upstream numeric ids become canonical
// string keys at the edge, and the box plus filters travel as query params.
func TestParishAPIClient_MarkersInBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/public/parish/markers", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "-35", q.Get("min-lat"))
		assert.Equal(t, "Argentina", q.Get("country"))
		assert.Equal(t, "misa,bautismo", q.Get("services"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"markers":[
			{"id":17,"name":"Parroquia X","location":"CABA, Argentina","coordinates":{"lat":-34.6,"long":-58.4},"muted":true}
		]}`))
	}))
	defer srv.Close()

	c := services.NewParishAPIClient(srv.URL, time.Second)
	got, err := c.MarkersInBounds(context.Background(),
		models.BoundingBox{MinLat: -35, MinLon: -59, MaxLat: -34, MaxLon: -58},
		models.MarkerFilters{Country: "Argentina", Services: []string{"misa", "bautismo"}})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "17", got[0].ID)
	assert.Equal(t, models.OriginFetched, got[0].Origin)
	assert.True(t, got[0].Muted)
	assert.Equal(t, models.Coordinate{Lat: -34.6, Lon: -58.4}, got[0].Position)
}

func TestParishAPIClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/public/parish", r.URL.Path)
		assert.Equal(t, "san josé", r.URL.Query().Get("name-or-location"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"parishes":[
			{"id":3,"name":"Parroquia San José","location":"CABA, Buenos Aires, Argentina","coordinates":{"lat":-34.6,"long":-58.38}}
		]}`))
	}))
	defer srv.Close()

	c := services.NewParishAPIClient(srv.URL, time.Second)
	got, err := c.Search(context.Background(), "san josé")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestParishAPIClient_DetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := services.NewParishAPIClient(srv.URL, time.Second)
	_, err := c.Detail(context.Background(), "999")
	require.ErrorIs(t, err, models.ErrNotFound)
}
