package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
	"pastoral-bknd/internal/utils"
)

// Searcher answers free-text parish queries against the remote parish API.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// ParishHandler serves the non-session parish surface: search, detail and
// the stateless filtered list.
type ParishHandler struct {
	index    *geoindex.Index
	remote   services.DetailSource
	searcher Searcher // nil = built-in index only
	logr     *zap.Logger
}

func NewParishHandler(index *geoindex.Index, remote services.DetailSource, searcher Searcher, logr *zap.Logger) *ParishHandler {
	return &ParishHandler{index: index, remote: remote, searcher: searcher, logr: logr}
}

// Filter handles GET /parishes/filter — a stateless projection of the
// filter core over the loaded collection, for clients that do not hold a
// session.
func (h *ParishHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := models.FilterState{
		Search:      q.Get("search"),
		SelectedIDs: utils.ParseQueryList(q, "selected"),
		Services:    utils.ParseQueryList(q, "services"),
		Country:     q.Get("country"),
		Province:    q.Get("province"),
		City:        q.Get("city"),
		DayTime:     q.Get("dayTime"),
	}

	parishes := services.FilterParishes(h.index.All(), f)
	writeJSON(w, http.StatusOK, map[string]any{
		"parishes": parishes,
		"count":    len(parishes),
	})
}

// Search handles GET /parishes?q=. The remote parish API serves the query
// when configured; a remote failure falls back to the built-in index so the
// endpoint keeps answering.
func (h *ParishHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var results []models.SearchResult
	if h.searcher != nil {
		remote, err := h.searcher.Search(r.Context(), query)
		if err != nil {
			h.logr.Warn("remote parish search failed", zap.String("query", query), zap.Error(err))
		} else {
			results = remote
		}
	}
	if results == nil {
		results = h.index.Search(query)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"parishes": results,
		"count":    len(results),
	})
}

// GetByID handles GET /parishes/{id}. The detail resolver guarantees a
// displayable record for any id that at least looks like a marker key, so
// a plain miss is the only 404 case.
func (h *ParishHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if p, ok := h.index.Get(id); ok {
		writeJSON(w, http.StatusOK, p)
		return
	}

	if h.remote != nil {
		p := h.resolveRemote(r.Context(), id)
		if p != nil {
			writeJSON(w, http.StatusOK, *p)
			return
		}
	}

	writeError(w, http.StatusNotFound, "parish not found")
}

func (h *ParishHandler) resolveRemote(ctx context.Context, id string) *models.Parish {
	p, err := h.remote.Detail(ctx, id)
	if err != nil {
		h.logr.Warn("remote parish detail failed", zap.String("id", id), zap.Error(err))
		return nil
	}
	return &p
}
