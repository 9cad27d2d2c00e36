package connection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// ConnectInput describes a connection attempt. Either Account or Email is
// set; both empty means the user cancelled the prompt for an email.
type ConnectInput struct {
	Account     *domain.Account
	Email       string
	AccessToken string
}

// Connect links the workspace to an account and fetches its locations.
// A failed location fetch is logged and yields an empty list; the
// connection still succeeds. The three entries are written in one
// transaction, and the in-memory state changes only after they are stored.
func (s *Service) Connect(ctx context.Context, in ConnectInput) error {
	account := accountFromInput(in)
	if account == nil {
		s.log.InfoContext(ctx, "connect cancelled: no account supplied")
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	locations := s.fetchLocations(ctx, account.AccessToken)

	if err := s.persist(ctx, account, locations); err != nil {
		s.log.ErrorContext(ctx, "failed to persist connection", slog.String("error", err.Error()))
		return fmt.Errorf("connection.Connect: %w", err)
	}

	s.apply(true, account, locations)
	s.log.InfoContext(ctx, "google account connected",
		slog.String("email", account.Email),
		slog.Bool("has_token", account.AccessToken != ""),
		slog.Int("locations", len(locations)))

	return nil
}

func accountFromInput(in ConnectInput) *domain.Account {
	var account domain.Account
	switch {
	case in.Account != nil:
		account = *in.Account
	case strings.TrimSpace(in.Email) != "":
		email := strings.TrimSpace(in.Email)
		name, _, _ := strings.Cut(email, "@")
		account = domain.Account{Email: email, Name: name}
	default:
		return nil
	}

	if in.AccessToken != "" {
		account.AccessToken = in.AccessToken
	}
	return &account
}

// fetchLocations never fails: errors are logged and yield an empty list.
func (s *Service) fetchLocations(ctx context.Context, accessToken string) []domain.Location {
	if accessToken == "" {
		s.log.WarnContext(ctx, "no access token, skipping location fetch")
		return []domain.Location{}
	}

	locations, err := s.fetcher.FetchLocations(ctx, accessToken)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to fetch google business locations", slog.String("error", err.Error()))
		return []domain.Location{}
	}
	if locations == nil {
		return []domain.Location{}
	}
	return locations
}

func (s *Service) persist(ctx context.Context, account *domain.Account, locations []domain.Location) error {
	rawAccount, err := encodeAccount(account)
	if err != nil {
		return err
	}
	rawLocations, err := encodeLocations(locations)
	if err != nil {
		return err
	}

	return s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Set(ctx, KeyAccount, rawAccount); err != nil {
			return fmt.Errorf("write %s: %w", KeyAccount, err)
		}
		if err := s.store.Set(ctx, KeyConnected, connectedValue); err != nil {
			return fmt.Errorf("write %s: %w", KeyConnected, err)
		}
		if err := s.store.Set(ctx, KeyLocations, rawLocations); err != nil {
			return fmt.Errorf("write %s: %w", KeyLocations, err)
		}
		return nil
	})
}
