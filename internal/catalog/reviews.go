package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// ReviewRepo is an in-memory review store. Reviews keep their seed order.
type ReviewRepo struct {
	mu      sync.RWMutex
	order   []string
	reviews map[string]*domain.Review
}

// NewReviewRepo creates a repository holding copies of reviews.
func NewReviewRepo(reviews []domain.Review) (*ReviewRepo, error) {
	r := &ReviewRepo{
		order:   make([]string, 0, len(reviews)),
		reviews: make(map[string]*domain.Review, len(reviews)),
	}
	for _, rev := range reviews {
		if _, dup := r.reviews[rev.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate review %q", rev.ID)
		}
		c := cloneReview(&rev)
		r.order = append(r.order, rev.ID)
		r.reviews[rev.ID] = &c
	}
	return r, nil
}

// ListByLocation returns the reviews of a location. An empty locationID
// returns every review.
func (r *ReviewRepo) ListByLocation(_ context.Context, locationID string) []domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Review, 0, len(r.order))
	for _, id := range r.order {
		rev := r.reviews[id]
		if locationID != "" && rev.LocationID != locationID {
			continue
		}
		out = append(out, cloneReview(rev))
	}
	return out
}

// GetByID returns a review or domain.ErrNotFound.
func (r *ReviewRepo) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	c := cloneReview(rev)
	return &c, nil
}

// SetResponse attaches a response to a review that has none. It returns
// domain.ErrNotFound for an unknown id and domain.ErrConflict when the
// review is already answered.
func (r *ReviewRepo) SetResponse(_ context.Context, id string, resp domain.ReviewResponse) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	if rev.HasResponse() {
		return nil, fmt.Errorf("review %s already answered: %w", id, domain.ErrConflict)
	}

	rev.Response = &resp
	c := cloneReview(rev)
	return &c, nil
}

func cloneReview(r *domain.Review) domain.Review {
	c := *r
	if r.Response != nil {
		resp := *r.Response
		c.Response = &resp
	}
	return c
}
