package services

import "pastoral-bknd/internal/models"

// MergeMarkers reconciles the two marker sources into one render-ready
// list: locally held parishes first, then the markers fetched for the
// current bounds. The two sets come from different upstream key spaces, so
// both are rendered side by side (no silent dropping); RenderKey keeps the
// list keys distinct per origin. Selection routing differs by origin: a
// static marker resolves to its full record directly, a fetched one goes
// through the detail resolver. The Muted glyph flag of fetched markers is
// carried through untouched, never recomputed here.
func MergeMarkers(static []models.Parish, fetched []models.Marker) []models.Marker {
	out := make([]models.Marker, 0, len(static)+len(fetched))

	for _, p := range static {
		if !p.Location.Valid() {
			continue
		}
		out = append(out, p.ToMarker(models.OriginStatic))
	}

	for _, m := range fetched {
		m.Origin = models.OriginFetched
		if !m.Position.Valid() {
			continue
		}
		out = append(out, m)
	}

	return out
}
