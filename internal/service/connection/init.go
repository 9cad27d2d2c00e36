package connection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Init loads the persisted entries. Only the first call does any work, and
// Loading turns false when it returns whatever the outcome. The connection
// is restored only when the account entry parses and the connected flag is
// "true"; a malformed locations entry is logged and leaves the list empty.
func (s *Service) Init(ctx context.Context) error {
	var initErr error
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()
		initErr = s.load(ctx)
	})
	return initErr
}

func (s *Service) load(ctx context.Context) error {
	rawAccount, hasAccount, err := s.store.Get(ctx, KeyAccount)
	if err != nil {
		return fmt.Errorf("connection.Init read %s: %w", KeyAccount, err)
	}
	rawConnected, _, err := s.store.Get(ctx, KeyConnected)
	if err != nil {
		return fmt.Errorf("connection.Init read %s: %w", KeyConnected, err)
	}
	rawLocations, hasLocations, err := s.store.Get(ctx, KeyLocations)
	if err != nil {
		return fmt.Errorf("connection.Init read %s: %w", KeyLocations, err)
	}

	if !hasAccount || rawConnected != connectedValue {
		s.log.InfoContext(ctx, "no stored connection")
		return nil
	}

	account, err := decodeAccount(rawAccount)
	if err != nil {
		s.log.ErrorContext(ctx, "stored account is malformed", slog.String("error", err.Error()))
		return nil
	}

	locations := []domain.Location{}
	if hasLocations {
		parsed, err := decodeLocations(rawLocations)
		if err != nil {
			s.log.ErrorContext(ctx, "stored locations are malformed", slog.String("error", err.Error()))
		} else {
			locations = parsed
		}
	}

	s.apply(true, account, locations)
	s.log.InfoContext(ctx, "connection restored",
		slog.String("email", account.Email),
		slog.Int("locations", len(locations)))

	return nil
}
