package connection

import (
	"context"
	"log/slog"
)

// Disconnect clears the connection and removes the three entries. It always
// succeeds; storage errors are logged.
func (s *Service) Disconnect(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.apply(false, nil, nil)

	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		for _, key := range []string{KeyAccount, KeyConnected, KeyLocations} {
			if err := s.store.Remove(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to remove stored connection", slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "google account disconnected")
}
