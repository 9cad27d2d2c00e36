package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Logout forgets the session. Unknown ids are ignored.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) {
	s.mu.Lock()
	_, existed := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if existed {
		s.log.InfoContext(ctx, "user logged out", slog.String("session_id", sessionID.String()))
	}
}
