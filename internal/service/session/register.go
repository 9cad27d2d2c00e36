package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Register starts an authenticated session for the submitted name and
// email. No account is created, nothing is checked for uniqueness and the
// password is ignored.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	result, err := s.start(domain.SessionUser{Email: input.Email, Name: input.Name})
	if err != nil {
		return nil, fmt.Errorf("session.Register: %w", err)
	}

	s.log.WarnContext(ctx, "placeholder registration accepted without validation",
		slog.String("session_id", result.Session.ID.String()),
		slog.String("email", input.Email))

	return result, nil
}
