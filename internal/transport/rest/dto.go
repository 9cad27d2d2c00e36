package rest

import (
	"time"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/connection"
	"github.com/heartmarshall/reputation-manager/internal/service/review"
	"github.com/heartmarshall/reputation-manager/internal/service/settings"
)

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user"`
	Redirect      string        `json:"redirect,omitempty"`
}

type locationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type locationsResponse struct {
	Source    string             `json:"source"`
	Locations []locationResponse `json:"locations"`
}

type reviewResponseBody struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

type reviewResponse struct {
	ID             string              `json:"id"`
	LocationID     string              `json:"locationId"`
	Author         string              `json:"author"`
	AuthorImageURL string              `json:"authorImageUrl"`
	Rating         int                 `json:"rating"`
	Text           string              `json:"text"`
	Date           time.Time           `json:"date"`
	Response       *reviewResponseBody `json:"response,omitempty"`
}

type inboxResponse struct {
	Location      *locationResponse `json:"location"`
	Reviews       []reviewResponse  `json:"reviews"`
	CannedReplies []string          `json:"cannedReplies"`
}

type statCardResponse struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

type trendPointResponse struct {
	Name    string `json:"name"`
	Reviews int    `json:"reviews"`
}

type ratingBucketResponse struct {
	Stars string `json:"stars"`
	Count int    `json:"count"`
}

type sentimentResponse struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type keywordResponse struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type dashboardResponse struct {
	Location           *locationResponse      `json:"location"`
	OverallRating      string                 `json:"overallRating"`
	TotalReviews       int                    `json:"totalReviews"`
	Stats              []statCardResponse     `json:"stats"`
	Trend              []trendPointResponse   `json:"trend"`
	RatingDistribution []ratingBucketResponse `json:"ratingDistribution"`
	Sentiment          []sentimentResponse    `json:"sentiment"`
	Keywords           []keywordResponse      `json:"keywords"`
	LatestReviews      []reviewResponse       `json:"latestReviews"`
}

type teamMemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

type templateResponse struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type automationRuleResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

type accountResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type integrationResponse struct {
	Connected   bool               `json:"connected"`
	Loading     bool               `json:"loading"`
	Account     *accountResponse   `json:"account"`
	Locations   []locationResponse `json:"locations"`
	CanExchange bool               `json:"canExchange"`
	RedirectURI string             `json:"redirectUri"`
}

type settingsResponse struct {
	Profile         userResponse             `json:"profile"`
	Plan            string                   `json:"plan"`
	Templates       []templateResponse       `json:"templates"`
	AutomationRules []automationRuleResponse `json:"automationRules"`
	Google          integrationResponse      `json:"google"`
}

func toSessionResponse(sess domain.Session) sessionResponse {
	resp := sessionResponse{Authenticated: sess.Authenticated}
	if sess.User != nil {
		resp.User = &userResponse{Email: sess.User.Email, Name: sess.User.Name}
	}
	return resp
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{ID: l.ID, Name: l.Name, Address: l.Address}
}

func toLocationPtr(l *domain.Location) *locationResponse {
	if l == nil {
		return nil
	}
	resp := toLocationResponse(*l)
	return &resp
}

func toLocationResponses(locations []domain.Location) []locationResponse {
	out := make([]locationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResponse(l))
	}
	return out
}

func toReviewResponse(r domain.Review) reviewResponse {
	resp := reviewResponse{
		ID:             r.ID,
		LocationID:     r.LocationID,
		Author:         r.Author,
		AuthorImageURL: r.AuthorImageURL,
		Rating:         r.Rating,
		Text:           r.Text,
		Date:           r.Date,
	}
	if r.Response != nil {
		resp.Response = &reviewResponseBody{Text: r.Response.Text, Date: r.Response.Date}
	}
	return resp
}

func toReviewResponses(reviews []domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}

func toDashboardResponse(d *review.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Location:           toLocationPtr(d.Location),
		OverallRating:      d.OverallRating,
		TotalReviews:       d.TotalReviews,
		Stats:              make([]statCardResponse, 0, len(d.Stats)),
		Trend:              make([]trendPointResponse, 0, len(d.Trend)),
		RatingDistribution: make([]ratingBucketResponse, 0, len(d.RatingDistribution)),
		Sentiment:          make([]sentimentResponse, 0, len(d.Sentiment)),
		Keywords:           make([]keywordResponse, 0, len(d.Keywords)),
		LatestReviews:      toReviewResponses(d.LatestReviews),
	}
	for _, s := range d.Stats {
		resp.Stats = append(resp.Stats, statCardResponse{Title: s.Title, Value: s.Value, Change: s.Change})
	}
	for _, p := range d.Trend {
		resp.Trend = append(resp.Trend, trendPointResponse{Name: p.Name, Reviews: p.Reviews})
	}
	for _, b := range d.RatingDistribution {
		resp.RatingDistribution = append(resp.RatingDistribution, ratingBucketResponse{Stars: b.Stars, Count: b.Count})
	}
	for _, s := range d.Sentiment {
		resp.Sentiment = append(resp.Sentiment, sentimentResponse{Name: string(s.Name), Value: s.Value})
	}
	for _, k := range d.Keywords {
		resp.Keywords = append(resp.Keywords, keywordResponse{Text: k.Text, Value: k.Value})
	}
	return resp
}

func toTeamResponses(members []domain.TeamMember) []teamMemberResponse {
	out := make([]teamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, teamMemberResponse{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Role:      m.Role.String(),
			AvatarURL: m.AvatarURL,
		})
	}
	return out
}

func toIntegrationResponse(st connection.State, canExchange bool, redirectURI string) integrationResponse {
	resp := integrationResponse{
		Connected:   st.Connected,
		Loading:     st.Loading,
		Locations:   toLocationResponses(st.Locations),
		CanExchange: canExchange,
		RedirectURI: redirectURI,
	}
	if st.Account != nil {
		resp.Account = &accountResponse{
			Email:   st.Account.Email,
			Name:    st.Account.Name,
			Picture: st.Account.Picture,
		}
	}
	return resp
}

func toSettingsResponse(p settings.Page, google integrationResponse) settingsResponse {
	resp := settingsResponse{
		Profile:         userResponse{Email: p.Profile.Email, Name: p.Profile.Name},
		Plan:            p.Plan.String(),
		Templates:       make([]templateResponse, 0, len(p.Templates)),
		AutomationRules: make([]automationRuleResponse, 0, len(p.AutomationRules)),
		Google:          google,
	}
	for _, t := range p.Templates {
		resp.Templates = append(resp.Templates, templateResponse{Name: t.Name, Text: t.Text})
	}
	for _, a := range p.AutomationRules {
		resp.AutomationRules = append(resp.AutomationRules, automationRuleResponse{
			Name:        a.Name,
			Description: a.Description,
			Enabled:     a.Enabled,
		})
	}
	return resp
}
