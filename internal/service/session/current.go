package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Current returns the session registered under sessionID, or the
// anonymous session when there is none or it has expired. Expired entries
// are removed.
func (s *Service) Current(_ context.Context, sessionID uuid.UUID) domain.Session {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return domain.AnonymousSession()
	}
	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return domain.AnonymousSession()
	}
	return cloneSession(e.session)
}

// Resolve maps a cookie value to its session. Invalid, expired or unknown
// tokens resolve to the anonymous session.
func (s *Service) Resolve(ctx context.Context, token string) domain.Session {
	if token == "" {
		return domain.AnonymousSession()
	}

	sessionID, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "session token rejected")
		return domain.AnonymousSession()
	}

	return s.Current(ctx, sessionID)
}
