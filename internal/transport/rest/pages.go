package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/location"
	"github.com/heartmarshall/reputation-manager/internal/service/review"
	"github.com/heartmarshall/reputation-manager/internal/service/settings"
	"github.com/heartmarshall/reputation-manager/internal/transport/middleware"
)

type reviewService interface {
	List(ctx context.Context, in review.ListInput) (*review.Inbox, error)
	Reply(ctx context.Context, in review.ReplyInput) (*domain.Review, error)
	Dashboard(ctx context.Context, locationID string) (*review.Dashboard, error)
	CannedReplies(ctx context.Context) []string
}

type locationService interface {
	List(ctx context.Context) location.Listing
}

type teamService interface {
	List(ctx context.Context) []domain.TeamMember
}

type settingsService interface {
	Page(ctx context.Context, user *domain.SessionUser) settings.Page
}

// PageHandler serves the page models of the protected dashboard pages.
type PageHandler struct {
	reviews     reviewService
	locations   locationService
	team        teamService
	settings    settingsService
	integration *IntegrationHandler
	log         *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(
	reviews reviewService,
	locations locationService,
	team teamService,
	settingsSvc settingsService,
	integration *IntegrationHandler,
	logger *slog.Logger,
) *PageHandler {
	return &PageHandler{
		reviews:     reviews,
		locations:   locations,
		team:        team,
		settings:    settingsSvc,
		integration: integration,
		log:         logger.With("handler", "pages"),
	}
}

// Dashboard handles GET /dashboard?location=.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.reviews.Dashboard(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

// Locations handles GET /locations.
func (h *PageHandler) Locations(w http.ResponseWriter, r *http.Request) {
	listing := h.locations.List(r.Context())
	writeJSON(w, http.StatusOK, locationsResponse{
		Source:    listing.Source.String(),
		Locations: toLocationResponses(listing.Locations),
	})
}

// Reviews handles GET /reviews?location=&rating=&replied=.
func (h *PageHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := review.ListInput{
		LocationID: q.Get("location"),
		Replied:    domain.RepliedFilter(q.Get("replied")),
	}
	if v := q.Get("rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("rating", "must be a number"))
			return
		}
		in.Rating = rating
	}

	inbox, err := h.reviews.List(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, inboxResponse{
		Location:      toLocationPtr(inbox.Location),
		Reviews:       toReviewResponses(inbox.Reviews),
		CannedReplies: h.reviews.CannedReplies(r.Context()),
	})
}

type replyRequest struct {
	Text string `json:"text"`
}

// Reply handles POST /reviews/{id}/reply.
func (h *PageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.reviews.Reply(r.Context(), review.ReplyInput{
		ReviewID: chi.URLParam(r, "id"),
		Text:     req.Text,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponse(*updated))
}

// Team handles GET /team.
func (h *PageHandler) Team(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toTeamResponses(h.team.List(r.Context())))
}

// Settings handles GET /settings.
func (h *PageHandler) Settings(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	page := h.settings.Page(r.Context(), sess.User)
	writeJSON(w, http.StatusOK, toSettingsResponse(page, h.integration.status()))
}
