// Package location decides which location list the dashboard works with.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// connectionReader exposes the provider locations of the connection.
type connectionReader interface {
	ActiveLocations() (bool, []domain.Location)
}

// Listing is the active location list and where it came from.
type Listing struct {
	Source    domain.LocationSource
	Locations []domain.Location
}

// Service switches between the built-in list and the provider list.
type Service struct {
	log     *slog.Logger
	builtin []domain.Location
	conn    connectionReader
}

// NewService creates a location service.
func NewService(logger *slog.Logger, builtin []domain.Location, conn connectionReader) *Service {
	return &Service{
		log:     logger.With("service", "location"),
		builtin: slices.Clone(builtin),
		conn:    conn,
	}
}

// List returns the provider locations while connected, even when that list
// is empty, and the built-in locations otherwise. The lists are never
// merged.
func (s *Service) List(_ context.Context) Listing {
	if connected, locations := s.conn.ActiveLocations(); connected {
		if locations == nil {
			locations = []domain.Location{}
		}
		return Listing{Source: domain.LocationSourceGoogle, Locations: locations}
	}
	return Listing{Source: domain.LocationSourceBuiltin, Locations: slices.Clone(s.builtin)}
}

// Resolve picks a location from the active list. An empty id selects the
// first one; when the list is empty as well it returns nil and no error.
func (s *Service) Resolve(ctx context.Context, id string) (*domain.Location, error) {
	listing := s.List(ctx)

	if id == "" {
		if len(listing.Locations) == 0 {
			return nil, nil
		}
		loc := listing.Locations[0]
		return &loc, nil
	}

	for i := range listing.Locations {
		if listing.Locations[i].ID == id {
			loc := listing.Locations[i]
			return &loc, nil
		}
	}

	s.log.DebugContext(ctx, "location not in active list",
		slog.String("location_id", id), slog.String("source", listing.Source.String()))
	return nil, fmt.Errorf("location.Resolve: location %q: %w", id, domain.ErrNotFound)
}
