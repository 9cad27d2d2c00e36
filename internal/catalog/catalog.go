// Package catalog holds the built-in dataset: locations, reviews, team and
// the dashboard figures. It is loaded once from an embedded YAML seed.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Plan               string               `yaml:"plan"`
	Locations          []seedLocation       `yaml:"locations"`
	Reviews            []seedReview         `yaml:"reviews"`
	Team               []seedMember         `yaml:"team"`
	Trend              []seedTrend          `yaml:"trend"`
	RatingDistribution []seedBucket         `yaml:"rating_distribution"`
	Sentiment          []seedSentiment      `yaml:"sentiment"`
	Keywords           []seedKeyword        `yaml:"keywords"`
	Stats              seedStats            `yaml:"stats"`
	Templates          []seedTemplate       `yaml:"templates"`
	CannedReplies      []string             `yaml:"canned_replies"`
	AutomationRules    []seedAutomationRule `yaml:"automation_rules"`
}

type seedLocation struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type seedResponse struct {
	Text string `yaml:"text"`
	Date string `yaml:"date"`
}

type seedReview struct {
	ID             string        `yaml:"id"`
	LocationID     string        `yaml:"location_id"`
	Author         string        `yaml:"author"`
	AuthorImageURL string        `yaml:"author_image_url"`
	Rating         int           `yaml:"rating"`
	Text           string        `yaml:"text"`
	Date           string        `yaml:"date"`
	Response       *seedResponse `yaml:"response"`
}

type seedMember struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Role      string `yaml:"role"`
	AvatarURL string `yaml:"avatar_url"`
}

type seedTrend struct {
	Name    string `yaml:"name"`
	Reviews int    `yaml:"reviews"`
}

type seedBucket struct {
	Stars string `yaml:"stars"`
	Count int    `yaml:"count"`
}

type seedSentiment struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

type seedKeyword struct {
	Text  string `yaml:"text"`
	Value int    `yaml:"value"`
}

type seedTemplate struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type seedAutomationRule struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Enabled     bool   `yaml:"enabled"`
}

type seedStats struct {
	RatingChange            string `yaml:"rating_change"`
	TotalChange             string `yaml:"total_change"`
	AvgResponseTime         string `yaml:"avg_response_time"`
	AvgResponseTimeChange   string `yaml:"avg_response_time_change"`
	PositiveSentiment       string `yaml:"positive_sentiment"`
	PositiveSentimentChange string `yaml:"positive_sentiment_change"`
}

// Catalog is the immutable part of the built-in dataset plus the mutable
// review repository. Accessors return copies.
type Catalog struct {
	plan               domain.Plan
	locations          []domain.Location
	team               []domain.TeamMember
	trend              []domain.TrendPoint
	ratingDistribution []domain.RatingBucket
	sentiment          []domain.SentimentSlice
	keywords           []domain.Keyword
	stats              domain.HeadlineStats
	templates          []domain.ResponseTemplate
	cannedReplies      []string
	automationRules    []domain.AutomationRule

	reviews *ReviewRepo
}

// Default loads the embedded seed.
func Default() (*Catalog, error) {
	return Parse(defaultSeed)
}

// Parse builds a catalog from YAML seed data.
func Parse(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("catalog: parse seed: %w", err)
	}

	c := &Catalog{
		plan:          domain.Plan(seed.Plan),
		stats:         domain.HeadlineStats(seed.Stats),
		cannedReplies: seed.CannedReplies,
	}
	if c.plan == "" {
		c.plan = domain.PlanFree
	}
	if !c.plan.IsValid() {
		return nil, fmt.Errorf("catalog: unknown plan %q", seed.Plan)
	}

	locationIDs := make(map[string]bool, len(seed.Locations))
	for _, l := range seed.Locations {
		if l.ID == "" {
			return nil, fmt.Errorf("catalog: location without id")
		}
		if locationIDs[l.ID] {
			return nil, fmt.Errorf("catalog: duplicate location %q", l.ID)
		}
		locationIDs[l.ID] = true
		c.locations = append(c.locations, domain.Location{ID: l.ID, Name: l.Name, Address: l.Address})
	}

	reviews := make([]domain.Review, 0, len(seed.Reviews))
	for _, r := range seed.Reviews {
		review, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		if !locationIDs[review.LocationID] {
			return nil, fmt.Errorf("catalog: review %q references unknown location %q", review.ID, review.LocationID)
		}
		reviews = append(reviews, review)
	}
	repo, err := NewReviewRepo(reviews)
	if err != nil {
		return nil, err
	}
	c.reviews = repo

	for _, m := range seed.Team {
		role := domain.TeamRole(m.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("catalog: team member %q has unknown role %q", m.ID, m.Role)
		}
		c.team = append(c.team, domain.TeamMember{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Role:      role,
			AvatarURL: m.AvatarURL,
		})
	}

	for _, t := range seed.Trend {
		c.trend = append(c.trend, domain.TrendPoint{Name: t.Name, Reviews: t.Reviews})
	}
	for _, b := range seed.RatingDistribution {
		c.ratingDistribution = append(c.ratingDistribution, domain.RatingBucket{Stars: b.Stars, Count: b.Count})
	}
	for _, s := range seed.Sentiment {
		name := domain.Sentiment(s.Name)
		switch name {
		case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
		default:
			return nil, fmt.Errorf("catalog: unknown sentiment %q", s.Name)
		}
		c.sentiment = append(c.sentiment, domain.SentimentSlice{Name: name, Value: s.Value})
	}
	for _, k := range seed.Keywords {
		c.keywords = append(c.keywords, domain.Keyword{Text: k.Text, Value: k.Value})
	}
	for _, t := range seed.Templates {
		c.templates = append(c.templates, domain.ResponseTemplate{Name: t.Name, Text: t.Text})
	}
	for _, r := range seed.AutomationRules {
		c.automationRules = append(c.automationRules, domain.AutomationRule{
			Name:        r.Name,
			Description: r.Description,
			Enabled:     r.Enabled,
		})
	}

	return c, nil
}

func (r seedReview) toDomain() (domain.Review, error) {
	if r.ID == "" {
		return domain.Review{}, fmt.Errorf("catalog: review without id")
	}
	if r.Rating < domain.MinRating || r.Rating > domain.MaxRating {
		return domain.Review{}, fmt.Errorf("catalog: review %q rating %d out of range", r.ID, r.Rating)
	}

	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return domain.Review{}, fmt.Errorf("catalog: review %q date: %w", r.ID, err)
	}

	review := domain.Review{
		ID:             r.ID,
		LocationID:     r.LocationID,
		Author:         r.Author,
		AuthorImageURL: r.AuthorImageURL,
		Rating:         r.Rating,
		Text:           r.Text,
		Date:           date,
	}

	if r.Response != nil {
		respDate, err := time.Parse(time.RFC3339, r.Response.Date)
		if err != nil {
			return domain.Review{}, fmt.Errorf("catalog: review %q response date: %w", r.ID, err)
		}
		review.Response = &domain.ReviewResponse{Text: r.Response.Text, Date: respDate}
	}

	return review, nil
}

func (c *Catalog) Plan() domain.Plan { return c.plan }
func (c *Catalog) Locations() []domain.Location { return slices.Clone(c.locations) }
func (c *Catalog) Team() []domain.TeamMember { return slices.Clone(c.team) }
func (c *Catalog) Trend() []domain.TrendPoint { return slices.Clone(c.trend) }
func (c *Catalog) RatingDistribution() []domain.RatingBucket { return slices.Clone(c.ratingDistribution) }
func (c *Catalog) Sentiment() []domain.SentimentSlice { return slices.Clone(c.sentiment) }
func (c *Catalog) Keywords() []domain.Keyword { return slices.Clone(c.keywords) }
func (c *Catalog) Stats() domain.HeadlineStats { return c.stats }
func (c *Catalog) Templates() []domain.ResponseTemplate { return slices.Clone(c.templates) }
func (c *Catalog) CannedReplies() []string { return slices.Clone(c.cannedReplies) }
func (c *Catalog) AutomationRules() []domain.AutomationRule { return slices.Clone(c.automationRules) }

// Reviews returns the review repository backed by this catalog.
func (c *Catalog) Reviews() *ReviewRepo { return c.reviews }
