package domain

import (
	"time"
)

// ConversationTurn is a single exchange in a conversation: the user's query
// and the assistant's response, tagged with the domain that handled it.
// Turns are immutable once created.
type ConversationTurn struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Domain    Domain    `json:"domain"`
	Timestamp time.Time `json:"timestamp"`
}

// NewConversationTurn creates a turn stamped with the current time.
func NewConversationTurn(query, response string, d Domain) ConversationTurn {
	return ConversationTurn{
		Query:     query,
		Response:  response,
		Domain:    d,
		Timestamp: time.Now().UTC(),
	}
}

// Session groups the turns of one conversation. Sessions are created
// implicitly on first write and owned exclusively by the conversation store;
// the turn slice is bounded by the store's sliding window.
type Session struct {
	SessionID    string             `json:"session_id"`
	Turns        []ConversationTurn `json:"turns"`
	CreatedAt    time.Time          `json:"created_at"`
	LastActivity time.Time          `json:"last_activity"`
}
