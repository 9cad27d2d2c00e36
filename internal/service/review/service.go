// Package review implements the review inbox, replies and the dashboard
// figures derived from the review list.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// reviewRepo stores the reviews.
type reviewRepo interface {
	ListByLocation(ctx context.Context, locationID string) []domain.Review
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	SetResponse(ctx context.Context, id string, resp domain.ReviewResponse) (*domain.Review, error)
}

// locationResolver picks a location from the active list.
type locationResolver interface {
	Resolve(ctx context.Context, id string) (*domain.Location, error)
}

// reportSource supplies the dashboard datasets that are not derived from
// the review list.
type reportSource interface {
	Trend() []domain.TrendPoint
	RatingDistribution() []domain.RatingBucket
	Sentiment() []domain.SentimentSlice
	Keywords() []domain.Keyword
	Stats() domain.HeadlineStats
	CannedReplies() []string
}

// replyRecorder counts submitted replies.
type replyRecorder interface {
	ReviewReplied()
}

// Service implements review operations.
type Service struct {
	log       *slog.Logger
	reviews   reviewRepo
	locations locationResolver
	reports   reportSource
	rec       replyRecorder
	policy    *bluemonday.Policy
	now       func() time.Time
}

// NewService creates a review service.
func NewService(
	logger *slog.Logger,
	reviews reviewRepo,
	locations locationResolver,
	reports reportSource,
	rec replyRecorder,
) *Service {
	return &Service{
		log:       logger.With("service", "review"),
		reviews:   reviews,
		locations: locations,
		reports:   reports,
		rec:       rec,
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// reviewsFor returns the reviews of loc, or none when no location is
// selected.
func (s *Service) reviewsFor(ctx context.Context, loc *domain.Location) []domain.Review {
	if loc == nil {
		return []domain.Review{}
	}
	return s.reviews.ListByLocation(ctx, loc.ID)
}

// CannedReplies returns the quick reply texts offered by the reply form.
func (s *Service) CannedReplies(_ context.Context) []string {
	return s.reports.CannedReplies()
}
