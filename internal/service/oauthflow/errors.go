package oauthflow

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Flow and credential errors. Configuration failures wrap
// domain.ErrNotConfigured; an abandoned or tampered flow wraps
// domain.ErrConflict.
var (
	ErrMissingClientID     = fmt.Errorf("google client id is not configured: %w", domain.ErrNotConfigured)
	ErrMissingClientSecret = fmt.Errorf("google client secret is not configured, code exchange must run on a server holding it: %w", domain.ErrNotConfigured)
	ErrRedirectURIMismatch = fmt.Errorf("redirect_uri_mismatch: %w", domain.ErrNotConfigured)

	ErrPopupClosed   = fmt.Errorf("oauth popup closed by user: %w", domain.ErrConflict)
	ErrStateMismatch = fmt.Errorf("oauth state mismatch: %w", domain.ErrConflict)
	ErrAccessDenied  = fmt.Errorf("oauth consent denied: %w", domain.ErrConflict)
	ErrFlowNotFound  = fmt.Errorf("oauth flow: %w", domain.ErrNotFound)

	ErrTimeout   = errors.New("oauth flow timed out")
	ErrCancelled = errors.New("oauth flow cancelled")
)

// RedirectURIMismatchError is returned when Google rejects the configured
// redirect URI. Guidance tells the operator what to register.
type RedirectURIMismatchError struct {
	RedirectURI string
}

func (e *RedirectURIMismatchError) Error() string {
	return fmt.Sprintf("redirect_uri_mismatch: %q is not an authorized redirect URI", e.RedirectURI)
}

func (e *RedirectURIMismatchError) Unwrap() error { return ErrRedirectURIMismatch }

// Guidance is a remediation hint for the settings page.
func (e *RedirectURIMismatchError) Guidance() string {
	return fmt.Sprintf(
		"Add %s to the Authorized redirect URIs of the OAuth client in the Google Cloud Console "+
			"(APIs & Services > Credentials), then retry.", e.RedirectURI)
}

// flowResult returns the metrics label for how a flow ended.
func flowResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrPopupClosed):
		return "popup_closed"
	case errors.Is(err, ErrStateMismatch):
		return "state_mismatch"
	case errors.Is(err, ErrAccessDenied):
		return "denied"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	default:
		return "error"
	}
}
