package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

// SessionHandler exposes the interactive session core: lifecycle, filter
// state, viewport events and marker snapshots.
type SessionHandler struct {
	manager *services.SessionManager
	logr    *zap.Logger
}

func NewSessionHandler(manager *services.SessionManager, logr *zap.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logr: logr}
}

type createSessionRequest struct {
	Device *models.Coordinate `json:"device,omitempty"`
}

type sessionResponse struct {
	ID       string             `json:"id"`
	Filters  models.FilterState `json:"filters"`
	Viewport viewportResponse   `json:"viewport"`
}

type viewportResponse struct {
	Target  *models.Target `json:"target,omitempty"`
	Version uint64         `json:"version"`
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.Device != nil && !req.Device.Valid() {
		writeError(w, http.StatusBadRequest, "device coordinate out of range")
		return
	}

	s := h.manager.Create(r.Context(), req.Device)
	h.logr.Info("session created", zap.String("session", s.ID))

	writeJSON(w, http.StatusCreated, h.sessionResponse(s))
}

// DeleteSession handles DELETE /sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.manager.Remove(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SetFilters handles PUT /sessions/{id}/filters
func (h *SessionHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var f models.FilterState
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	applied := s.SetFilters(f)
	writeJSON(w, http.StatusOK, map[string]any{
		"filters":  applied,
		"viewport": h.viewportResponse(s),
	})
}

type boundsRequest struct {
	Bounds models.BoundingBox `json:"bounds"`
}

// BoundsChanged handles POST /sessions/{id}/viewport/bounds
func (h *SessionHandler) BoundsChanged(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req boundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Bounds.Valid() {
		writeError(w, http.StatusBadRequest, "invalid bounding box")
		return
	}

	s.BoundsChanged(req.Bounds)
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true})
}

// Ready handles POST /sessions/{id}/viewport/ready
func (h *SessionHandler) Ready(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req boundsRequest
	var box *models.BoundingBox
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Bounds.Valid() {
			box = &req.Bounds
		}
	}

	s.Ready(box)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"viewport": h.viewportResponse(s),
	})
}

// GetViewport handles GET /sessions/{id}/viewport
func (h *SessionHandler) GetViewport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"state":   s.ViewportState(),
		"pending": h.viewportResponse(s),
	})
}

// GetMarkers handles GET /sessions/{id}/markers
func (h *SessionHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	markers := s.Markers()
	writeJSON(w, http.StatusOK, map[string]any{
		"markers":  markers,
		"count":    len(markers),
		"viewport": h.viewportResponse(s),
	})
}

// GetParishes handles GET /sessions/{id}/parishes
func (h *SessionHandler) GetParishes(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	parishes := s.Parishes()
	writeJSON(w, http.StatusOK, map[string]any{
		"parishes": parishes,
		"count":    len(parishes),
	})
}

type selectRequest struct {
	Marker models.Marker `json:"marker"`
}

// Select handles POST /sessions/{id}/selection
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Marker.ID == "" {
		writeError(w, http.StatusBadRequest, "marker id is required")
		return
	}

	detail := s.Select(r.Context(), req.Marker)
	writeJSON(w, http.StatusOK, map[string]any{
		"parish":   detail,
		"viewport": h.viewportResponse(s),
	})
}

// ClearSelection handles DELETE /sessions/{id}/selection
func (h *SessionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.ClearSelection()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"viewport": h.viewportResponse(s),
	})
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	id := chi.URLParam(r, "id")
	s, err := h.manager.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
		} else {
			h.logr.Error("failed to load session", zap.String("session", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load session")
		}
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) sessionResponse(s *services.Session) sessionResponse {
	return sessionResponse{
		ID:       s.ID,
		Filters:  s.Filters(),
		Viewport: h.viewportResponse(s),
	}
}

func (h *SessionHandler) viewportResponse(s *services.Session) viewportResponse {
	resp := viewportResponse{}
	if target, version, ok := s.Viewport(); ok {
		t := target
		resp.Target = &t
		resp.Version = version
	}
	return resp
}
