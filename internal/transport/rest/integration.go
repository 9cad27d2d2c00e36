package rest

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/reputation-manager/internal/auth"
	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/connection"
	"github.com/heartmarshall/reputation-manager/internal/service/oauthflow"
)

type connectionService interface {
	State() connection.State
	Connect(ctx context.Context, in connection.ConnectInput) error
	Disconnect(ctx context.Context)
	RefreshLocations(ctx context.Context) ([]domain.Location, error)
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error
}

type oauthService interface {
	Begin(ctx context.Context) (*oauthflow.Pending, error)
	DeliverMessage(ctx context.Context, flowID string, msg oauthflow.Message) bool
	ObserveURL(ctx context.Context, rawURL string) bool
	MarkClosed(flowID string) bool
	Wait(ctx context.Context, flowID string) (string, error)
	CompleteFlow(ctx context.Context, code string) (*domain.Account, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.OAuthToken, error)
	CanExchange() bool
	RedirectURI() string
}

// IntegrationHandler serves the Google Business Profile integration.
type IntegrationHandler struct {
	conn  connectionService
	oauth oauthService
	log   *slog.Logger
}

// NewIntegrationHandler creates an IntegrationHandler.
func NewIntegrationHandler(conn connectionService, oauth oauthService, logger *slog.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		conn:  conn,
		oauth: oauth,
		log:   logger.With("handler", "integration"),
	}
}

func (h *IntegrationHandler) status() integrationResponse {
	return toIntegrationResponse(h.conn.State(), h.oauth.CanExchange(), h.oauth.RedirectURI())
}

// Status handles GET /settings/integrations.
func (h *IntegrationHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status())
}

type connectRequest struct {
	Email       string           `json:"email"`
	Account     *accountResponse `json:"account"`
	AccessToken string           `json:"accessToken"`
}

// Connect handles POST /settings/integrations/google/connect. A request
// with neither an account nor an email leaves the connection unchanged.
func (h *IntegrationHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := connection.ConnectInput{Email: req.Email, AccessToken: req.AccessToken}
	if req.Account != nil {
		if strings.TrimSpace(req.Account.Email) == "" {
			handleError(w, r, h.log, domain.NewValidationError("account.email", "required"))
			return
		}
		in.Account = &domain.Account{
			Email:   req.Account.Email,
			Name:    req.Account.Name,
			Picture: req.Account.Picture,
		}
	}

	if err := h.conn.Connect(r.Context(), in); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

type credentialRequest struct {
	Credential string `json:"credential"`
}

// Credential handles POST /settings/integrations/google/credential: the
// "Continue with Google" button posts the Identity Services credential,
// which is decoded to a profile and stored as the access token.
func (h *IntegrationHandler) Credential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := auth.DecodeCredential(req.Credential)
	if err != nil {
		h.log.WarnContext(r.Context(), "credential rejected", slog.String("error", err.Error()))
		handleError(w, r, h.log, domain.NewValidationError("credential", "not a valid Google credential"))
		return
	}

	err = h.conn.Connect(r.Context(), connection.ConnectInput{
		Account: &domain.Account{
			Email:   identity.Email,
			Name:    identity.Name,
			Picture: identity.Picture,
		},
		AccessToken: req.Credential,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

// Disconnect handles POST /settings/integrations/google/disconnect.
func (h *IntegrationHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.conn.Disconnect(r.Context())
	writeJSON(w, http.StatusOK, h.status())
}

// Refresh handles POST /settings/integrations/google/refresh. When the
// account holds a refresh token and the server can exchange it, the access
// token is renewed before the locations are fetched again.
func (h *IntegrationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	st := h.conn.State()
	if st.Connected && st.Account != nil && st.Account.RefreshToken != "" && h.oauth.CanExchange() {
		token, err := h.oauth.RefreshToken(r.Context(), st.Account.RefreshToken)
		if err != nil {
			h.log.WarnContext(r.Context(), "access token refresh failed", slog.String("error", err.Error()))
		} else if err := h.conn.UpdateTokens(r.Context(), token.AccessToken, token.RefreshToken); err != nil {
			handleError(w, r, h.log, err)
			return
		}
	}

	if _, err := h.conn.RefreshLocations(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

type oauthStartResponse struct {
	FlowID  string `json:"flowId"`
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// StartOAuth handles POST /settings/integrations/google/oauth/start.
func (h *IntegrationHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	p, err := h.oauth.Begin(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, oauthStartResponse{FlowID: p.ID, AuthURL: p.AuthURL, State: p.State})
}

// WaitOAuth handles GET /settings/integrations/google/oauth/wait?flow=. It
// blocks until the flow resolves, then completes the connection.
func (h *IntegrationHandler) WaitOAuth(w http.ResponseWriter, r *http.Request) {
	flowID := r.URL.Query().Get("flow")
	if flowID == "" {
		handleError(w, r, h.log, domain.NewValidationError("flow", "required"))
		return
	}

	// The wait may outlive the server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.log.DebugContext(r.Context(), "write deadline not adjustable", slog.String("error", err.Error()))
	}

	code, err := h.oauth.Wait(r.Context(), flowID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if _, err := h.oauth.CompleteFlow(r.Context(), code); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

type oauthMessageRequest struct {
	FlowID string `json:"flowId"`
	Origin string `json:"origin"`
	Type   string `json:"type"`
	Code   string `json:"code"`
	State  string `json:"state"`
}

type acceptedResponse struct {
	Accepted bool `json:"accepted"`
}

// OAuthMessage handles POST /settings/integrations/google/oauth/message.
// The origin reported by the browser is used, falling back to the Origin
// header.
func (h *IntegrationHandler) OAuthMessage(w http.ResponseWriter, r *http.Request) {
	var req oauthMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	origin := req.Origin
	if origin == "" {
		origin = r.Header.Get("Origin")
	}

	accepted := h.oauth.DeliverMessage(r.Context(), req.FlowID, oauthflow.Message{
		Origin: origin,
		Type:   req.Type,
		Code:   req.Code,
		State:  req.State,
	})
	writeJSON(w, http.StatusOK, acceptedResponse{Accepted: accepted})
}

type oauthClosedRequest struct {
	FlowID string `json:"flowId"`
}

// OAuthClosed handles POST /settings/integrations/google/oauth/closed.
func (h *IntegrationHandler) OAuthClosed(w http.ResponseWriter, r *http.Request) {
	var req oauthClosedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, acceptedResponse{Accepted: h.oauth.MarkClosed(req.FlowID)})
}

const callbackPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Google sign-in</title></head>
<body><p>%s</p><script>window.close();</script></body></html>
`

// Callback handles GET /oauth/callback, the redirect target of the consent
// screen. The URL resolves the pending flow whose state it carries.
func (h *IntegrationHandler) Callback(w http.ResponseWriter, r *http.Request) {
	message := "Sign-in complete. You can close this window."
	if !h.oauth.ObserveURL(r.Context(), r.URL.String()) {
		h.log.WarnContext(r.Context(), "oauth callback without a pending flow")
		message = "This sign-in link is no longer valid. Close this window and try again."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, callbackPage, html.EscapeString(message)) //nolint:errcheck
}
