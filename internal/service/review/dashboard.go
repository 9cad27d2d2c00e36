package review

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// latestCount is the number of reviews on the dashboard feed.
const latestCount = 3

// Dashboard is the dashboard page model of one location.
type Dashboard struct {
	Location           *domain.Location
	OverallRating      string
	TotalReviews       int
	Stats              []domain.StatCard
	Trend              []domain.TrendPoint
	RatingDistribution []domain.RatingBucket
	Sentiment          []domain.SentimentSlice
	Keywords           []domain.Keyword
	LatestReviews      []domain.Review
}

// Dashboard computes the dashboard of the selected location.
func (s *Service) Dashboard(ctx context.Context, locationID string) (*Dashboard, error) {
	loc, err := s.locations.Resolve(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("review.Dashboard: %w", err)
	}

	reviews := s.reviewsFor(ctx, loc)
	rating := OverallRating(reviews)
	stats := s.reports.Stats()

	return &Dashboard{
		Location:      loc,
		OverallRating: rating,
		TotalReviews:  len(reviews),
		Stats: []domain.StatCard{
			{Title: "Overall Rating", Value: rating, Change: stats.RatingChange},
			{Title: "Total Reviews", Value: strconv.Itoa(len(reviews)), Change: stats.TotalChange},
			{Title: "Avg. Response Time", Value: stats.AvgResponseTime, Change: stats.AvgResponseTimeChange},
			{Title: "Positive Sentiment", Value: stats.PositiveSentiment, Change: stats.PositiveSentimentChange},
		},
		Trend:              s.reports.Trend(),
		RatingDistribution: s.reports.RatingDistribution(),
		Sentiment:          s.reports.Sentiment(),
		Keywords:           s.reports.Keywords(),
		LatestReviews:      Latest(reviews, latestCount),
	}, nil
}

// OverallRating is the mean rating to one decimal place, or "N/A" when
// there are no reviews.
func OverallRating(reviews []domain.Review) string {
	if len(reviews) == 0 {
		return "N/A"
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return strconv.FormatFloat(float64(sum)/float64(len(reviews)), 'f', 1, 64)
}

// Latest returns up to n reviews, newest first. Reviews with the same date
// keep their catalog order.
func Latest(reviews []domain.Review, n int) []domain.Review {
	sorted := slices.Clone(reviews)
	slices.SortStableFunc(sorted, func(a, b domain.Review) int {
		return b.Date.Compare(a.Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []domain.Review{}
	}
	return sorted
}
