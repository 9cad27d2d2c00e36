// Package oauthflow runs the Google consent flow as a single cancellable
// operation: a pending flow is resolved exactly once by the first of a
// relayed message, an observed redirect URL, a closed popup, a timeout or
// cancellation of the waiting request.
package oauthflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/connection"
)

// tokenClient talks to the Google token and userinfo endpoints.
type tokenClient interface {
	ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.OAuthToken, error)
	FetchUserinfo(ctx context.Context, accessToken string) (*domain.Account, error)
}

// connector links the fetched account to the workspace.
type connector interface {
	Connect(ctx context.Context, in connection.ConnectInput) error
}

// flowRecorder observes how flows end.
type flowRecorder interface {
	OAuthFlow(result string)
}

// Config holds the OAuth client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
	AuthURL      string
	PollInterval time.Duration

	// AppOrigin is the only origin whose relayed messages are accepted.
	AppOrigin string

	// FlowTimeout bounds a flow measured from Begin. Zero means no ceiling.
	FlowTimeout time.Duration

	// PendingTTL drops flows nobody waited for.
	PendingTTL time.Duration
}

const (
	defaultAuthURL      = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultScope        = "https://www.googleapis.com/auth/business.manage"
	defaultPollInterval = time.Second
	defaultPendingTTL   = 15 * time.Minute
)

// Service owns the pending flows of the process.
type Service struct {
	log       *slog.Logger
	cfg       Config
	tokens    tokenClient
	connector connector
	rec       flowRecorder
	now       func() time.Time

	mu      sync.Mutex
	byID    map[string]*Pending
	byState map[string]*Pending
}

// NewService creates the flow service.
func NewService(logger *slog.Logger, cfg Config, tokens tokenClient, conn connector, rec flowRecorder) *Service {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.Scope == "" {
		cfg.Scope = defaultScope
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = defaultPendingTTL
	}
	return &Service{
		log:       logger.With("service", "oauthflow"),
		cfg:       cfg,
		tokens:    tokens,
		connector: conn,
		rec:       rec,
		now:       time.Now,
		byID:      make(map[string]*Pending),
		byState:   make(map[string]*Pending),
	}
}

// CanExchange reports whether both client credentials are configured.
func (s *Service) CanExchange() bool {
	return s.cfg.ClientID != "" && s.cfg.ClientSecret != ""
}

// RedirectURI returns the configured redirect URI.
func (s *Service) RedirectURI() string {
	return s.cfg.RedirectURI
}
