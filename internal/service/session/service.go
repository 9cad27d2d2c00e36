// Package session keeps the authentication state of dashboard browser
// sessions. The registry is in memory only, so a restart signs everybody out.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/reputation-manager/internal/config"
	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// tokenManager signs and validates the session cookie value.
type tokenManager interface {
	GenerateSessionToken(sessionID uuid.UUID) (string, error)
	ValidateSessionToken(token string) (uuid.UUID, error)
}

// loginRecorder observes login attempts.
type loginRecorder interface {
	LoginAttempt(success bool)
}

// Service implements login, registration, logout and session lookup.
type Service struct {
	log    *slog.Logger
	tokens tokenManager
	rec    loginRecorder

	demoEmail string
	demoName  string
	demoHash  []byte

	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	sessions  map[uuid.UUID]entry
	lastSweep time.Time
}

// entry is a registered session and the moment its cookie stops being valid.
type entry struct {
	session   domain.Session
	expiresAt time.Time
}

const defaultTTL = 12 * time.Hour

// NewService creates a session service. The demo password is hashed once
// here and never kept in plain text.
func NewService(logger *slog.Logger, tokens tokenManager, rec loginRecorder, cfg config.AuthConfig) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("session: hash demo password: %w", err)
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Service{
		log:       logger.With("service", "session"),
		tokens:    tokens,
		rec:       rec,
		demoEmail: cfg.DemoEmail,
		demoName:  cfg.DemoName,
		demoHash:  hash,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]entry),
	}, nil
}

// start registers a new authenticated session and issues its token.
func (s *Service) start(user domain.SessionUser) (*Result, error) {
	sess := domain.Session{
		ID:            uuid.New(),
		Authenticated: true,
		User:          &user,
	}

	token, err := s.tokens.GenerateSessionToken(sess.ID)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := s.now()
	s.mu.Lock()
	s.sweepLocked(now)
	s.sessions[sess.ID] = entry{session: sess, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	return &Result{Session: cloneSession(sess), Token: token}, nil
}

// sweepLocked drops expired sessions, at most once per TTL. Callers hold s.mu.
func (s *Service) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func cloneSession(sess domain.Session) domain.Session {
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}
