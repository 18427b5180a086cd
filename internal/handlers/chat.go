package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

// Visible apology when the assistant cannot answer; chat is the one place
// where a transient failure is surfaced to the user.
const chatApology = "Lo siento, no puedo responder en este momento. Intentá de nuevo en unos minutos."

// ChatHandler relays utterances to the conversational endpoint and streams
// answer fragments back to the client as newline-delimited JSON.
type ChatHandler struct {
	relay *services.ChatRelay
	logr  *zap.Logger
}

func NewChatHandler(relay *services.ChatRelay, logr *zap.Logger) *ChatHandler {
	return &ChatHandler{relay: relay, logr: logr}
}

type chatPostRequest struct {
	Message string `json:"message"`
}

type chatStreamEvent struct {
	Turn  int    `json:"turn"`
	Delta string `json:"delta,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Error bool   `json:"error,omitempty"`
}

// Ask handles POST /sessions/{id}/chat for a SessionHandler-owned session.
// The assistant turn index travels with every fragment so the client always
// appends to the right message.
func (h *ChatHandler) Ask(sessions *SessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessions.session(w, r)
		if !ok {
			return
		}

		var req chatPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		s.AppendUserMessage(req.Message)
		turn := s.BeginAssistantTurn()

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)

		enc := json.NewEncoder(w)
		emit := func(ev chatStreamEvent) {
			_ = enc.Encode(ev)
			if flusher != nil {
				flusher.Flush()
			}
		}

		convID, err := h.relay.Ask(r.Context(), s.ConversationID(), req.Message, func(delta string) {
			s.AppendFragment(turn, delta)
			emit(chatStreamEvent{Turn: turn, Delta: delta})
		})
		s.SetConversationID(convID)

		if err != nil {
			h.logr.Warn("chat relay failed", zap.String("session", s.ID), zap.Error(err))
			s.AppendFragment(turn, chatApology)
			emit(chatStreamEvent{Turn: turn, Delta: chatApology, Error: true})
		}
		emit(chatStreamEvent{Turn: turn, Done: true})
	}
}

// Transcript handles GET /sessions/{id}/chat
func (h *ChatHandler) Transcript(sessions *SessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessions.session(w, r)
		if !ok {
			return
		}

		transcript := s.Transcript()
		if transcript == nil {
			transcript = []models.ChatMessage{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"conversationId": s.ConversationID(),
			"messages":       transcript,
			"count":          len(transcript),
		})
	}
}
