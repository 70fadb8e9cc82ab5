package store

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jpcarmona/atenea/internal/domain"
)

// ConversationStats holds read-only diagnostics about the conversation store.
type ConversationStats struct {
	ActiveSessions int           `json:"active_sessions"`
	MaxTurns       int           `json:"max_turns"`
	TTL            time.Duration `json:"ttl_seconds"`
}

// ConversationStore is a thread-safe in-memory store of conversation
// sessions, giving domain handlers short-term memory across requests.
//
// History lookups sit on the request path, so operations hold the lock only
// for in-memory mutation and the returned history is always a copy. Expired
// sessions are removed lazily during access; there is no background sweep.
type ConversationStore struct {
	mu          sync.Mutex
	sessions    map[string]*domain.Session
	maxTurns    int
	ttl         time.Duration
	maxSessions int
	logger      *slog.Logger
}

// NewConversationStore creates a conversation store keeping the last maxTurns
// turns per session, expiring idle sessions after ttl, and cleaning up when
// more than maxSessions sessions accumulate.
func NewConversationStore(maxTurns int, ttl time.Duration, maxSessions int, logger *slog.Logger) *ConversationStore {
	return &ConversationStore{
		sessions:    make(map[string]*domain.Session),
		maxTurns:    maxTurns,
		ttl:         ttl,
		maxSessions: maxSessions,
		logger:      logger.With("component", "conversation_store"),
	}
}

// History returns a copy of the session's turns in chronological order.
// It returns an empty slice if the session does not exist or has expired;
// an expired session is deleted on access. A successful read refreshes the
// session's activity timestamp.
func (s *ConversationStore) History(sessionID string) []domain.ConversationTurn {
	if sessionID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}

	now := time.Now().UTC()
	if now.Sub(session.LastActivity) > s.ttl {
		delete(s.sessions, sessionID)
		return nil
	}

	session.LastActivity = now

	out := make([]domain.ConversationTurn, len(session.Turns))
	copy(out, session.Turns)
	return out
}

// AddTurn appends a turn to the session, creating the session if absent, and
// truncates to the sliding window of the last maxTurns turns.
func (s *ConversationStore) AddTurn(sessionID, query, response string, d domain.Domain) {
	if sessionID == "" {
		return
	}

	turn := domain.NewConversationTurn(query, response, d)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) > s.maxSessions {
		s.cleanupLocked()
	}

	session, ok := s.sessions[sessionID]
	if !ok {
		now := time.Now().UTC()
		session = &domain.Session{
			SessionID:    sessionID,
			CreatedAt:    now,
			LastActivity: now,
		}
		s.sessions[sessionID] = session
	}

	session.LastActivity = time.Now().UTC()
	session.Turns = append(session.Turns, turn)

	if len(session.Turns) > s.maxTurns {
		session.Turns = session.Turns[len(session.Turns)-s.maxTurns:]
	}
}

// Clear removes a session unconditionally.
func (s *ConversationStore) Clear(sessionID string) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Stats returns read-only diagnostics for monitoring.
func (s *ConversationStore) Stats() ConversationStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ConversationStats{
		ActiveSessions: len(s.sessions),
		MaxTurns:       s.maxTurns,
		TTL:            s.ttl,
	}
}

// cleanupLocked removes expired sessions, then the least recently active
// sessions if the store is still over capacity. Callers must hold s.mu.
func (s *ConversationStore) cleanupLocked() {
	now := time.Now().UTC()

	for id, session := range s.sessions {
		if now.Sub(session.LastActivity) > s.ttl {
			delete(s.sessions, id)
		}
	}

	if len(s.sessions) <= s.maxSessions {
		return
	}

	remaining := make([]*domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		remaining = append(remaining, session)
	}
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].LastActivity.Before(remaining[j].LastActivity)
	})

	excess := len(remaining) - s.maxSessions
	for _, session := range remaining[:excess] {
		delete(s.sessions, session.SessionID)
	}

	s.logger.Debug("conversation store trimmed to capacity",
		"evicted", excess,
		"session_count", len(s.sessions))
}
