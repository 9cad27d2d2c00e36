package oauthflow

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reputation-manager/internal/auth"
)

// MessageTypeCode is the type of the message the redirect page relays back
// to the opener window.
const MessageTypeCode = "GOOGLE_OAUTH_CODE"

// Message is a cross-window message relayed by the browser.
type Message struct {
	Origin string
	Type   string
	Code   string
	State  string
}

// Pending is a started consent flow.
type Pending struct {
	ID      string
	State   string
	AuthURL string

	createdAt  time.Time
	closed     atomic.Bool
	waited     atomic.Bool
	mismatched atomic.Bool

	once sync.Once
	done chan struct{}
	code string
	err  error
}

// resolve settles the flow. Only the first call has an effect.
func (p *Pending) resolve(code string, err error) bool {
	won := false
	p.once.Do(func() {
		p.code, p.err = code, err
		close(p.done)
		won = true
	})
	return won
}

// Begin starts a consent flow and returns the URL to open in the popup.
func (s *Service) Begin(ctx context.Context) (*Pending, error) {
	if s.cfg.ClientID == "" {
		return nil, fmt.Errorf("oauthflow.Begin: %w", ErrMissingClientID)
	}

	state, err := auth.RandomToken(24)
	if err != nil {
		return nil, fmt.Errorf("oauthflow.Begin: %w", err)
	}

	authURL, err := s.buildAuthURL(state)
	if err != nil {
		return nil, fmt.Errorf("oauthflow.Begin: %w", err)
	}

	p := &Pending{
		ID:        uuid.NewString(),
		State:     state,
		AuthURL:   authURL,
		createdAt: s.now(),
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.sweepLocked()
	s.byID[p.ID] = p
	s.byState[p.State] = p
	s.mu.Unlock()

	s.log.InfoContext(ctx, "oauth flow started", slog.String("flow_id", p.ID))
	return p, nil
}

func (s *Service) buildAuthURL(state string) (string, error) {
	u, err := url.Parse(s.cfg.AuthURL)
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}
	q := u.Query()
	q.Set("client_id", s.cfg.ClientID)
	q.Set("redirect_uri", s.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", s.cfg.Scope)
	q.Set("state", state)
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DeliverMessage feeds a relayed message to the flow. Messages from another
// origin, of another type, without a code or carrying another state are
// ignored. A mismatched state is remembered: if the flow later ends with the
// popup closed it fails with ErrStateMismatch. It reports whether the
// message resolved the flow.
func (s *Service) DeliverMessage(ctx context.Context, flowID string, msg Message) bool {
	if msg.Origin != s.cfg.AppOrigin || msg.Type != MessageTypeCode || msg.Code == "" {
		s.log.DebugContext(ctx, "oauth message ignored",
			slog.String("origin", msg.Origin), slog.String("type", msg.Type))
		return false
	}

	p := s.lookup(flowID)
	if p == nil {
		return false
	}

	if msg.State != p.State {
		s.log.WarnContext(ctx, "oauth message with mismatched state ignored", slog.String("flow_id", flowID))
		p.mismatched.Store(true)
		return false
	}
	return s.settle(ctx, p, msg.Code, nil)
}

// ObserveURL feeds a redirect URL to the flow whose state it carries. URLs
// without a known state are ignored. It reports whether the URL resolved a
// flow.
func (s *Service) ObserveURL(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	q := u.Query()
	state := q.Get("state")
	if state == "" {
		return false
	}

	s.mu.Lock()
	p := s.byState[state]
	s.mu.Unlock()
	if p == nil {
		return false
	}

	if denied := q.Get("error"); denied != "" {
		s.log.WarnContext(ctx, "oauth consent denied", slog.String("error", denied))
		return s.settle(ctx, p, "", ErrAccessDenied)
	}

	code := q.Get("code")
	if code == "" {
		return false
	}
	return s.settle(ctx, p, code, nil)
}

// MarkClosed records that the popup window was closed. The waiting side
// notices it on its next poll.
func (s *Service) MarkClosed(flowID string) bool {
	p := s.lookup(flowID)
	if p == nil {
		return false
	}
	p.closed.Store(true)
	return true
}

// Wait blocks until the flow resolves and returns the authorization code.
// Cancelling ctx fails the flow with ErrCancelled. A waited flow is never
// swept.
func (s *Service) Wait(ctx context.Context, flowID string) (string, error) {
	p := s.claim(flowID)
	if p == nil {
		return "", fmt.Errorf("oauthflow.Wait: %w", ErrFlowNotFound)
	}
	defer s.forget(p)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if s.cfg.FlowTimeout > 0 {
		timer := time.NewTimer(s.cfg.FlowTimeout - s.now().Sub(p.createdAt))
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-p.done:
			return p.code, p.err
		case <-ticker.C:
			if p.closed.Load() {
				s.settle(ctx, p, "", p.closedErr())
			}
		case <-deadline:
			s.settle(ctx, p, "", ErrTimeout)
		case <-ctx.Done():
			s.settle(ctx, p, "", ErrCancelled)
		}
	}
}

// settle resolves p, unregisters its state and records the outcome.
func (s *Service) settle(ctx context.Context, p *Pending, code string, err error) bool {
	if !p.resolve(code, err) {
		return false
	}

	s.mu.Lock()
	delete(s.byState, p.State)
	s.mu.Unlock()

	result := flowResult(err)
	if s.rec != nil {
		s.rec.OAuthFlow(result)
	}
	s.log.InfoContext(ctx, "oauth flow resolved",
		slog.String("flow_id", p.ID), slog.String("result", result))
	return true
}

func (s *Service) lookup(flowID string) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[flowID]
}

// claim looks up the flow and marks it waited under the registry lock, so a
// concurrent sweep cannot drop it.
func (s *Service) claim(flowID string) *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.byID[flowID]
	if p != nil {
		p.waited.Store(true)
	}
	return p
}

// closedErr is the failure of a flow whose popup went away.
func (p *Pending) closedErr() error {
	if p.mismatched.Load() {
		return ErrStateMismatch
	}
	return ErrPopupClosed
}

func (s *Service) forget(p *Pending) {
	s.mu.Lock()
	delete(s.byID, p.ID)
	delete(s.byState, p.State)
	s.mu.Unlock()
}

// sweepLocked drops flows older than PendingTTL that nobody waits on.
// Callers hold s.mu.
func (s *Service) sweepLocked() {
	cutoff := s.now().Add(-s.cfg.PendingTTL)
	for id, p := range s.byID {
		if !p.waited.Load() && p.createdAt.Before(cutoff) {
			p.resolve("", ErrTimeout)
			delete(s.byID, id)
			delete(s.byState, p.State)
		}
	}
}
