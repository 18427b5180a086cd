package handlers

import (
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/services"
)

// MetaHandler serves the filter option lists the panel is built from.
type MetaHandler struct {
	index *geoindex.Index
	logr  *zap.Logger
}

func NewMetaHandler(index *geoindex.Index, logr *zap.Logger) *MetaHandler {
	return &MetaHandler{index: index, logr: logr}
}

// GetServices handles GET /meta/services — the distinct service types
// present in the collection.
func (h *MetaHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	seen := map[string]bool{}
	for _, p := range h.index.All() {
		for _, s := range p.Services {
			t := strings.ToLower(strings.TrimSpace(s.Type))
			if t != "" {
				seen[t] = true
			}
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)

	writeJSON(w, http.StatusOK, map[string]any{
		"services": types,
		"count":    len(types),
	})
}

// GetCountries handles GET /meta/countries
func (h *MetaHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries := services.Countries()
	writeJSON(w, http.StatusOK, map[string]any{
		"countries": countries,
		"count":     len(countries),
	})
}

// GetProvinces handles GET /meta/provinces?country=
func (h *MetaHandler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if strings.TrimSpace(country) == "" {
		writeError(w, http.StatusBadRequest, "country parameter is required")
		return
	}

	provinces := services.Provinces(country)
	writeJSON(w, http.StatusOK, map[string]any{
		"country":   country,
		"provinces": provinces,
		"count":     len(provinces),
	})
}
