package connection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// ErrNotConnected is returned by operations that need a connected account.
var ErrNotConnected = fmt.Errorf("google account not connected: %w", domain.ErrConflict)

// RefreshLocations re-fetches the location list with the stored access
// token. Fetch failures yield an empty list, as in Connect.
func (s *Service) RefreshLocations(ctx context.Context) ([]domain.Location, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	connected, account := s.connected, s.account
	s.mu.RUnlock()
	if !connected || account == nil {
		return nil, fmt.Errorf("connection.RefreshLocations: %w", ErrNotConnected)
	}

	locations := s.fetchLocations(ctx, account.AccessToken)

	raw, err := encodeLocations(locations)
	if err != nil {
		return nil, fmt.Errorf("connection.RefreshLocations: %w", err)
	}
	if err := s.store.Set(ctx, KeyLocations, raw); err != nil {
		return nil, fmt.Errorf("connection.RefreshLocations: %w", err)
	}

	s.apply(true, account, locations)
	s.log.InfoContext(ctx, "google business locations refreshed", slog.Int("locations", len(locations)))

	return locations, nil
}

// UpdateTokens replaces the stored access token (and refresh token when
// non-empty) of the connected account.
func (s *Service) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	connected, current := s.connected, s.account
	locations := s.locations
	s.mu.RUnlock()
	if !connected || current == nil {
		return fmt.Errorf("connection.UpdateTokens: %w", ErrNotConnected)
	}

	account := *current
	account.AccessToken = accessToken
	if refreshToken != "" {
		account.RefreshToken = refreshToken
	}

	raw, err := encodeAccount(&account)
	if err != nil {
		return fmt.Errorf("connection.UpdateTokens: %w", err)
	}
	if err := s.store.Set(ctx, KeyAccount, raw); err != nil {
		return fmt.Errorf("connection.UpdateTokens: %w", err)
	}

	s.apply(true, &account, locations)
	return nil
}
