package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

// AppointmentHandler accepts appointment requests from the schedule modal.
type AppointmentHandler struct {
	service *services.AppointmentService
	logr    *zap.Logger
}

func NewAppointmentHandler(svc *services.AppointmentService, logr *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: svc, logr: logr}
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, models.AppointmentAck{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	ack, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.logr.Warn("appointment rejected", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, ack)
		return
	}

	h.logr.Info("appointment accepted",
		zap.String("ack_id", ack.ID),
		zap.String("parish_id", req.ParishID),
		zap.String("service", req.Service))

	writeJSON(w, http.StatusOK, ack)
}
