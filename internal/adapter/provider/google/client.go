package google

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProviderUnauthorized means Google rejected the access token,
	// usually because it lacks the business.manage scope.
	ErrProviderUnauthorized = errors.New("unauthorized: access token lacks the business.manage scope")
	// ErrProviderForbidden means the Google account has no access to
	// business data.
	ErrProviderForbidden = errors.New("forbidden: account does not have permission to access business data")
)

// Recorder observes the outcome of each call to a Google API.
type Recorder interface {
	ProviderCall(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ProviderCall(string, string) {}

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// StatusError is returned for non-2xx responses that have no dedicated
// sentinel.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("google %s request failed: %d %s", e.Operation, e.StatusCode, http.StatusText(e.StatusCode))
}

// statusToError maps auth failures to sentinels; other codes yield nil and
// are handled by the caller.
func statusToError(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrProviderUnauthorized
	case http.StatusForbidden:
		return ErrProviderForbidden
	}
	return nil
}

func isAuthError(err error) bool {
	return errors.Is(err, ErrProviderUnauthorized) || errors.Is(err, ErrProviderForbidden)
}
