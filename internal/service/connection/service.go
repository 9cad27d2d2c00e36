// Package connection owns the link between this workspace and a Google
// Business Profile account: the account, the connected flag and the
// fetched location list, persisted as three separate storage entries.
package connection

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Storage keys of the persisted entries.
const (
	KeyAccount   = "googleUser"
	KeyConnected = "isGoogleConnected"
	KeyLocations = "googleBusinessPlaces"
)

// kvStore is the key-value capability the connection is persisted with.
type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// locationFetcher lists the provider locations visible to an access token.
type locationFetcher interface {
	FetchLocations(ctx context.Context, accessToken string) ([]domain.Location, error)
}

// State is a snapshot of the connection.
// Invariants: Connected implies Account != nil; Locations is empty unless
// Connected.
type State struct {
	Connected bool
	Account   *domain.Account
	Locations []domain.Location
	Loading   bool
}

// Service is the single connection store of the process.
type Service struct {
	log     *slog.Logger
	store   kvStore
	fetcher locationFetcher

	// writeMu serialises Connect, Disconnect and RefreshLocations.
	writeMu sync.Mutex

	mu        sync.RWMutex
	connected bool
	account   *domain.Account
	locations []domain.Location
	loading   bool

	initOnce sync.Once
}

// NewService creates the store in the loading state. Call Init once before
// serving requests.
func NewService(logger *slog.Logger, store kvStore, fetcher locationFetcher) *Service {
	return &Service{
		log:       logger.With("service", "connection"),
		store:     store,
		fetcher:   fetcher,
		locations: []domain.Location{},
		loading:   true,
	}
}

// State returns a snapshot of the connection.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Connected: s.connected,
		Locations: slices.Clone(s.locations),
		Loading:   s.loading,
	}
	if st.Locations == nil {
		st.Locations = []domain.Location{}
	}
	if s.account != nil {
		acc := *s.account
		st.Account = &acc
	}
	return st
}

// Loading reports whether Init has not finished yet.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ActiveLocations returns the connected flag and the provider locations.
func (s *Service) ActiveLocations() (bool, []domain.Location) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected, slices.Clone(s.locations)
}

func (s *Service) apply(connected bool, account *domain.Account, locations []domain.Location) {
	if locations == nil || !connected {
		locations = []domain.Location{}
	}
	s.mu.Lock()
	s.connected = connected
	s.account = account
	s.locations = locations
	s.mu.Unlock()
}
