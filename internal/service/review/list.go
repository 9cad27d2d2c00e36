package review

import (
	"context"
	"fmt"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Inbox is the filtered review list of one location.
type Inbox struct {
	Location *domain.Location
	Reviews  []domain.Review
}

// List returns the reviews of the selected location that pass the filters,
// in catalog order.
func (s *Service) List(ctx context.Context, in ListInput) (*Inbox, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("review.List: %w", err)
	}

	loc, err := s.locations.Resolve(ctx, in.LocationID)
	if err != nil {
		return nil, fmt.Errorf("review.List: %w", err)
	}

	all := s.reviewsFor(ctx, loc)
	filtered := make([]domain.Review, 0, len(all))
	for i := range all {
		if in.Rating > 0 && all[i].Rating != in.Rating {
			continue
		}
		if !in.Replied.Match(&all[i]) {
			continue
		}
		filtered = append(filtered, all[i])
	}

	return &Inbox{Location: loc, Reviews: filtered}, nil
}
