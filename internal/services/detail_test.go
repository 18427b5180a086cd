package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

func TestResolve_LocalHitIsSynchronous(t *testing.T) {
	ix := geoindex.New()
	ix.Load([]models.Parish{{
		ID: "ba-001", Name: "Parroquia San José", Pastor: "Pbro. Juan Pérez",
		Location: models.Coordinate{Lat: -34.6, Lon: -58.38},
	}})
	remote := &fakeDetailSource{}
	r := services.NewDetailResolver(ix, remote, zap.NewNop())

	got := r.Resolve(context.Background(), models.Marker{ID: "ba-001", Title: "stale title"})
	assert.Equal(t, "Parroquia San José", got.Name)
	assert.Zero(t, remote.calls, "local hit must not fetch")
}

func TestResolve_RemoteFetchOnLocalMiss(t *testing.T) {
	ix := geoindex.New()
	remote := &fakeDetailSource{records: map[string]models.Parish{
		"42": {ID: "42", Name: "Parroquia Remota", Pastor: "Pbro. X"},
	}}
	r := services.NewDetailResolver(ix, remote, zap.NewNop())

	got := r.Resolve(context.Background(), models.Marker{ID: "42"})
	assert.Equal(t, "Parroquia Remota", got.Name)
}

// TestResolve_SynthesizesOnTotalMiss: unknown key locally and a failing
// remote fetch still yield a displayable record built from marker fields,
// never an error.
func TestResolve_SynthesizesOnTotalMiss(t *testing.T) {
	ix := geoindex.New()
	remote := &fakeDetailSource{err: errors.New("upstream down")}
	r := services.NewDetailResolver(ix, remote, zap.NewNop())

	m := models.Marker{
		ID:       "77",
		Title:    "Iglesia Santa Lucía",
		Location: "Montevideo, Uruguay",
		Position: models.Coordinate{Lat: -34.9011, Lon: -56.1645},
	}
	got := r.Resolve(context.Background(), m)

	require.Equal(t, "77", got.ID)
	assert.Equal(t, m.Title, got.Name)
	assert.Equal(t, m.Location, got.Address)
	assert.Equal(t, m.Position, got.Location)
	assert.Equal(t, "Información no disponible", got.Pastor)
	assert.Equal(t, "Información no disponible", got.Contact.Phone)
	assert.Empty(t, got.Services)
}

func TestResolve_NotFoundAlsoSynthesizes(t *testing.T) {
	ix := geoindex.New()
	remote := &fakeDetailSource{records: map[string]models.Parish{}}
	r := services.NewDetailResolver(ix, remote, zap.NewNop())

	got := r.Resolve(context.Background(), models.Marker{ID: "missing", Title: "X"})
	assert.Equal(t, "missing", got.ID)
	assert.Equal(t, "X", got.Name)
}
