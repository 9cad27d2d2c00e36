package domain

import "time"

// Review is a customer review left for a Location.
type Review struct {
	ID             string
	LocationID     string
	Author         string
	AuthorImageURL string
	Rating         int
	Text           string
	Date           time.Time
	Response       *ReviewResponse
}

// ReviewResponse is the owner's public reply to a review.
type ReviewResponse struct {
	Text string
	Date time.Time
}

// HasResponse reports whether the review has already been answered.
func (r *Review) HasResponse() bool {
	return r.Response != nil
}

// MinRating and MaxRating bound Review.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// RepliedFilter narrows a review list by reply status.
type RepliedFilter string

const (
	RepliedAll RepliedFilter = "all"
	RepliedYes RepliedFilter = "yes"
	RepliedNo  RepliedFilter = "no"
)

func (f RepliedFilter) String() string { return string(f) }

func (f RepliedFilter) IsValid() bool {
	switch f {
	case RepliedAll, RepliedYes, RepliedNo:
		return true
	}
	return false
}

// Match reports whether the review passes the filter.
func (f RepliedFilter) Match(r *Review) bool {
	switch f {
	case RepliedYes:
		return r.HasResponse()
	case RepliedNo:
		return !r.HasResponse()
	default:
		return true
	}
}
