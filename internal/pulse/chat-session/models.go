// internal/pulse/chat-session/models.go
package chatsession

import (
	"time"

	synthesizeresponse "deal-pulse/internal/pulse/synthesize-response"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is an entry in the append-only conversation log. Treat it as
// read-only once handed out.
type Message struct {
	ID        int64                      `json:"id"`
	Role      Role                       `json:"role"`
	Text      string                     `json:"text"`
	Payload   synthesizeresponse.Payload `json:"payload,omitempty"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// Kind is the payload kind, KindNone for user messages and plain text.
func (m Message) Kind() synthesizeresponse.Kind {
	return synthesizeresponse.KindOf(m.Payload)
}

// Observer is notified after the log or the composing flag changes.
// Callbacks run in order on the goroutine that made the change and must not
// call Submit, Reset or Close.
type Observer interface {
	MessageAppended(msg Message)
	ComposingChanged(composing bool)
	SessionReset(messages []Message)
}

// SuggestedQueries are pre-filled prompts a renderer can offer as shortcuts.
var SuggestedQueries = []string{
	"Show me companies raising next quarter",
	"Which founders are likely to succeed?",
	"Which startups are at risk?",
	"What's our conviction history on fintech deals?",
	"Who in our network knows these founders?",
	"Detect outliers in our deal flow",
}
