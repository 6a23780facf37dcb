package httpadapter

import (
	"context"
	"sync"
	"time"

	"github.com/ggh0223/lias-client-sub001/internal/core/ports"
	"github.com/ggh0223/lias-client-sub001/internal/core/usecase"
)

// Session is the pair of stores holding one signed-in user's state.
type Session struct {
	Documents *usecase.DocumentStore
	Approvals *usecase.ApprovalStore
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// Sessions lazily creates a store pair per bearer token and evicts pairs
// idle past the TTL. The token is held only as the map key; every remote
// call re-presents it, so eviction costs one re-fetch, never a re-login.
type Sessions struct {
	documents ports.DocumentGateway
	approvals ports.ApprovalGateway
	ttl       time.Duration

	mu      sync.Mutex
	byToken map[string]*sessionEntry
}

func NewSessions(documents ports.DocumentGateway, approvals ports.ApprovalGateway, ttl time.Duration) *Sessions {
	return &Sessions{
		documents: documents,
		approvals: approvals,
		ttl:       ttl,
		byToken:   make(map[string]*sessionEntry),
	}
}

// Get returns the token's session, creating it on first use.
func (s *Sessions) Get(token string) *Session {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictStaleLocked(now)

	entry, ok := s.byToken[token]
	if !ok {
		entry = &sessionEntry{
			session: &Session{
				Documents: usecase.NewDocumentStore(s.documents),
				Approvals: usecase.NewApprovalStore(s.approvals),
			},
		}
		s.byToken[token] = entry
	}
	entry.lastSeen = now
	return entry.session
}

// RefreshAllPending refetches every active session's pending queue. Engine
// step events do not identify gateway sessions, so all of them refresh.
func (s *Sessions) RefreshAllPending(ctx context.Context) {
	s.mu.Lock()
	tokens := make([]string, 0, len(s.byToken))
	sessions := make([]*Session, 0, len(s.byToken))
	for token, entry := range s.byToken {
		tokens = append(tokens, token)
		sessions = append(sessions, entry.session)
	}
	s.mu.Unlock()

	for i, session := range sessions {
		// Best effort: a session whose token expired drops out on its
		// own next request.
		_ = session.Approvals.RefreshPending(ctx, tokens[i])
	}
}

func (s *Sessions) evictStaleLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for token, entry := range s.byToken {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.byToken, token)
		}
	}
}
