package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
)

// AppointmentService accepts appointment requests and forwards them to the
// configured sink, fire-and-forget. Nothing is persisted here; the caller
// gets an acknowledgement id for its confirmation message.
type AppointmentService struct {
	sinkURL string
	httpc   *http.Client
	log     *zap.Logger
}

func NewAppointmentService(sinkURL string, timeout time.Duration, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		sinkURL: sinkURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Submit validates the request, forwards it in the background and returns
// the acknowledgement. Forwarding failures are logged, never surfaced.
func (s *AppointmentService) Submit(ctx context.Context, req models.AppointmentRequest) (models.AppointmentAck, error) {
	if err := validateAppointment(req); err != nil {
		return models.AppointmentAck{Success: false, Message: err.Error()}, err
	}

	ack := models.AppointmentAck{
		ID:      uuid.NewString(),
		Success: true,
		Message: "Solicitud de turno recibida",
	}

	if s.sinkURL != "" {
		go s.forward(ack.ID, req)
	} else {
		s.log.Info("appointment accepted (no sink configured)",
			zap.String("ack_id", ack.ID),
			zap.String("parish_id", req.ParishID),
			zap.String("service", req.Service))
	}

	return ack, nil
}

func (s *AppointmentService) forward(ackID string, req models.AppointmentRequest) {
	body, err := json.Marshal(req)
	if err != nil {
		s.log.Error("failed to encode appointment", zap.String("ack_id", ackID), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.httpc.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sinkURL, bytes.NewReader(body))
	if err != nil {
		s.log.Error("failed to build appointment request", zap.String("ack_id", ackID), zap.Error(err))
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(httpReq)
	if err != nil {
		s.log.Warn("appointment forward failed", zap.String("ack_id", ackID), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.log.Warn("appointment sink rejected request",
			zap.String("ack_id", ackID), zap.Int("status", resp.StatusCode))
		return
	}
	s.log.Info("appointment forwarded", zap.String("ack_id", ackID))
}

func validateAppointment(req models.AppointmentRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("a valid email is required")
	}
	if strings.TrimSpace(req.ParishID) == "" {
		return fmt.Errorf("parish is required")
	}
	if strings.TrimSpace(req.Service) == "" {
		return fmt.Errorf("service is required")
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return fmt.Errorf("date and time are required")
	}
	return nil
}
