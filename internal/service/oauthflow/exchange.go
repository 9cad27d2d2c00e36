package oauthflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/connection"
)

// oauthCoder is implemented by token endpoint errors.
type oauthCoder interface {
	OAuthErrorCode() string
}

func (s *Service) checkCredentials() error {
	if s.cfg.ClientID == "" {
		return ErrMissingClientID
	}
	if s.cfg.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	return nil
}

// ExchangeCode exchanges an authorization code for tokens.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	if err := s.checkCredentials(); err != nil {
		s.log.WarnContext(ctx, "code exchange refused", slog.String("error", err.Error()))
		return nil, fmt.Errorf("oauthflow.ExchangeCode: %w", err)
	}
	if code == "" {
		return nil, fmt.Errorf("oauthflow.ExchangeCode: %w", domain.NewValidationError("code", "required"))
	}

	token, err := s.tokens.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauthflow.ExchangeCode: %w", s.mapTokenError(ctx, err))
	}
	return token, nil
}

// RefreshToken obtains a fresh access token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*domain.OAuthToken, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, fmt.Errorf("oauthflow.RefreshToken: %w", err)
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("oauthflow.RefreshToken: %w", domain.NewValidationError("refresh_token", "required"))
	}

	token, err := s.tokens.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("oauthflow.RefreshToken: %w", s.mapTokenError(ctx, err))
	}
	return token, nil
}

func (s *Service) mapTokenError(ctx context.Context, err error) error {
	var coded oauthCoder
	if errors.As(err, &coded) && coded.OAuthErrorCode() == "redirect_uri_mismatch" {
		s.log.ErrorContext(ctx, "google rejected the redirect uri",
			slog.String("redirect_uri", s.cfg.RedirectURI))
		return &RedirectURIMismatchError{RedirectURI: s.cfg.RedirectURI}
	}
	return err
}

// CompleteFlow exchanges code, reads the profile of the consenting account
// and connects it to the workspace.
func (s *Service) CompleteFlow(ctx context.Context, code string) (*domain.Account, error) {
	token, err := s.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	account, err := s.tokens.FetchUserinfo(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("oauthflow.CompleteFlow: %w", err)
	}
	account.AccessToken = token.AccessToken
	account.RefreshToken = token.RefreshToken

	if err := s.connector.Connect(ctx, connection.ConnectInput{
		Account:     account,
		AccessToken: token.AccessToken,
	}); err != nil {
		return nil, fmt.Errorf("oauthflow.CompleteFlow: %w", err)
	}

	s.log.InfoContext(ctx, "google account linked", slog.String("email", account.Email))
	return account, nil
}
