package domain

// TrendPoint is the number of reviews received in one period.
type TrendPoint struct {
	Name    string
	Reviews int
}

// RatingBucket counts reviews with a given star rating.
type RatingBucket struct {
	Stars string
	Count int
}

// Sentiment is the polarity class of a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// SentimentSlice is one slice of the sentiment breakdown.
type SentimentSlice struct {
	Name  Sentiment
	Value int
}

// Keyword is a frequent term in review texts.
type Keyword struct {
	Text  string
	Value int
}

// StatCard is a headline figure with its change over the last period.
type StatCard struct {
	Title  string
	Value  string
	Change string
}

// HeadlineStats are dashboard figures that come from reporting rather than
// from the review list itself.
type HeadlineStats struct {
	RatingChange            string
	TotalChange             string
	AvgResponseTime         string
	AvgResponseTimeChange   string
	PositiveSentiment       string
	PositiveSentimentChange string
}
