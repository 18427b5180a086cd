package models

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the assistant transcript. Turn carries the
// message identity explicitly so streamed fragments are appended to the
// right assistant turn instead of being prefix-matched against it.
type ChatMessage struct {
	Turn    int    `json:"turn"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the utterance a client sends to the assistant.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ChatFragment is one streamed chunk of an assistant answer.
type ChatFragment struct {
	Delta          string `json:"delta"`
	ConversationID string `json:"conversationId,omitempty"`
	Done           bool   `json:"done,omitempty"`
}
