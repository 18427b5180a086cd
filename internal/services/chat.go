package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
)

// ChatRelay streams assistant answers from the external conversational
// endpoint. The endpoint returns newline-delimited JSON fragments; each
// fragment's delta is appended to the current assistant turn through the
// callback. Malformed fragments are skipped, not fatal.
type ChatRelay struct {
	url   string
	httpc *http.Client
	log   *zap.Logger
}

func NewChatRelay(url string, timeout time.Duration, log *zap.Logger) *ChatRelay {
	return &ChatRelay{
		url: url,
		// Streaming responses can legitimately outlive a whole-request
		// timeout; only the response-header phase is bounded here.
		httpc: &http.Client{
			Transport: &http.Transport{ResponseHeaderTimeout: timeout},
		},
		log: log,
	}
}

// Ask sends the utterance plus the conversation id and streams answer
// fragments to onFragment. It returns the conversation id to use for the
// next turn (the relay may mint a new one on the first turn).
func (c *ChatRelay) Ask(ctx context.Context, conversationID, utterance string, onFragment func(delta string)) (string, error) {
	if c.url == "" {
		return conversationID, fmt.Errorf("chat relay not configured")
	}

	body, err := json.Marshal(models.ChatRequest{
		Message:        utterance,
		ConversationID: conversationID,
	})
	if err != nil {
		return conversationID, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return conversationID, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return conversationID, fmt.Errorf("chat relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return conversationID, fmt.Errorf("chat relay: unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var frag models.ChatFragment
		if err := json.Unmarshal([]byte(line), &frag); err != nil {
			c.log.Debug("skipping malformed chat fragment", zap.String("line", line))
			continue
		}
		if frag.ConversationID != "" {
			conversationID = frag.ConversationID
		}
		if frag.Delta != "" && onFragment != nil {
			onFragment(frag.Delta)
		}
		if frag.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		// A broken stream mid-answer: whatever arrived has already been
		// appended; report the failure so the caller can apologize.
		return conversationID, fmt.Errorf("chat relay stream: %w", err)
	}

	return conversationID, nil
}
