package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pastoral-bknd/internal/services"
)

func TestChatRelay_StreamsFragmentsAndCapturesConversationID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"delta":"Hay misa ","conversationId":"conv-9"}` + "\n"))
		_, _ = w.Write([]byte("not json at all\n")) // malformed: skipped, not fatal
		_, _ = w.Write([]byte(`{"delta":"el domingo a las 09:00."}` + "\n"))
		_, _ = w.Write([]byte(`{"done":true}` + "\n"))
	}))
	defer srv.Close()

	relay := services.NewChatRelay(srv.URL, time.Second, zap.NewNop())

	var b strings.Builder
	convID, err := relay.Ask(context.Background(), "", "¿dónde hay misa hoy?", func(delta string) {
		b.WriteString(delta)
	})

	require.NoError(t, err)
	assert.Equal(t, "conv-9", convID)
	assert.Equal(t, "Hay misa el domingo a las 09:00.", b.String())
}

func TestChatRelay_UpstreamErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	relay := services.NewChatRelay(srv.URL, time.Second, zap.NewNop())
	convID, err := relay.Ask(context.Background(), "conv-1", "hola", nil)

	require.Error(t, err)
	// the caller keeps its conversation id for the next attempt
	assert.Equal(t, "conv-1", convID)
}

func TestChatRelay_Unconfigured(t *testing.T) {
	relay := services.NewChatRelay("", time.Second, zap.NewNop())
	_, err := relay.Ask(context.Background(), "", "hola", nil)
	require.Error(t, err)
}
