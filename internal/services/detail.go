package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
)

// Placeholder shown for fields a synthesized record cannot fill.
const detailUnavailable = "Información no disponible"

// LocalDetailSource is a synchronous lookup into the currently loaded
// collection.
type LocalDetailSource interface {
	Get(id string) (models.Parish, bool)
}

// DetailSource performs the on-demand remote detail fetch.
type DetailSource interface {
	Detail(ctx context.Context, id string) (models.Parish, error)
}

// DetailResolver turns a marker selection into a displayable full record.
// It never fails: local hit, then remote fetch, then a record synthesized
// from the marker's own fields.
type DetailResolver struct {
	local  LocalDetailSource
	remote DetailSource
	log    *zap.Logger
}

func NewDetailResolver(local LocalDetailSource, remote DetailSource, log *zap.Logger) *DetailResolver {
	return &DetailResolver{local: local, remote: remote, log: log}
}

// Resolve returns the detail record for a marker. Selecting any visible
// marker always yields something displayable, never an error.
func (r *DetailResolver) Resolve(ctx context.Context, m models.Marker) models.Parish {
	if r.local != nil {
		if p, ok := r.local.Get(m.ID); ok {
			return p
		}
	}

	if r.remote != nil {
		p, err := r.remote.Detail(ctx, m.ID)
		switch {
		case err == nil && p.ID != "":
			return p
		case err != nil && !errors.Is(err, models.ErrNotFound):
			r.log.Warn("detail fetch failed, synthesizing record",
				zap.String("id", m.ID), zap.Error(err))
		}
	}

	return synthesize(m)
}

// synthesize builds the minimal record available from marker-only fields.
func synthesize(m models.Marker) models.Parish {
	return models.Parish{
		ID:       m.ID,
		Name:     m.Title,
		Pastor:   detailUnavailable,
		Address:  m.Location,
		Location: m.Position,
		Contact: models.Contact{
			Phone: detailUnavailable,
			Email: detailUnavailable,
		},
		Services: nil, // renders as "no schedule published"
	}
}
