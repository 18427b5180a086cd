package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

// TestMergeMarkers_BothSourcesRenderedSideBySide: the same real-world
// parish appearing in both key spaces is kept twice, distinguished by
// origin-scoped render keys — never silently dropped.
func TestMergeMarkers_BothSourcesRenderedSideBySide(t *testing.T) {
	static := []models.Parish{
		{ID: "ba-001", Name: "Parroquia San José", Location: models.Coordinate{Lat: -34.6, Lon: -58.38}},
	}
	fetched := []models.Marker{
		{ID: "ba-001", Title: "Parroquia San José", Position: models.Coordinate{Lat: -34.6, Lon: -58.38}, Muted: true},
		{ID: "12", Title: "Otra", Position: models.Coordinate{Lat: -31.4, Lon: -64.2}},
	}

	got := services.MergeMarkers(static, fetched)
	require.Len(t, got, 3)

	assert.Equal(t, models.OriginStatic, got[0].Origin)
	assert.Equal(t, models.OriginFetched, got[1].Origin)
	assert.NotEqual(t, got[0].RenderKey(), got[1].RenderKey())

	// the muted glyph flag of the fetched record is carried through untouched
	assert.False(t, got[0].Muted)
	assert.True(t, got[1].Muted)
}

func TestMergeMarkers_SkipsInvalidPositions(t *testing.T) {
	static := []models.Parish{{ID: "bad", Location: models.Coordinate{Lat: 999, Lon: 0}}}
	fetched := []models.Marker{{ID: "alsobad", Position: models.Coordinate{Lat: 0, Lon: -999}}}

	got := services.MergeMarkers(static, fetched)
	assert.Empty(t, got)
}
