package session

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Login authenticates the single built-in credential and starts a new
// session. Any other pair yields domain.ErrUnauthorized and changes nothing.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Result, error) {
	if input.Email != s.demoEmail ||
		bcrypt.CompareHashAndPassword(s.demoHash, []byte(input.Password)) != nil {
		s.rec.LoginAttempt(false)
		s.log.InfoContext(ctx, "login rejected", slog.String("email", input.Email))
		return nil, domain.ErrUnauthorized
	}

	result, err := s.start(domain.SessionUser{Email: s.demoEmail, Name: s.demoName})
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	s.rec.LoginAttempt(true)
	s.log.InfoContext(ctx, "user logged in",
		slog.String("session_id", result.Session.ID.String()),
		slog.String("email", s.demoEmail))

	return result, nil
}
