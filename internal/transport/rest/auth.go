package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/service/session"
	"github.com/heartmarshall/reputation-manager/internal/transport/middleware"
)

// sessionService defines the minimal interface needed by AuthHandler.
type sessionService interface {
	Login(ctx context.Context, input session.LoginInput) (*session.Result, error)
	Register(ctx context.Context, input session.RegisterInput) (*session.Result, error)
	Logout(ctx context.Context, sessionID uuid.UUID)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// AuthHandler serves the login page and session endpoints.
type AuthHandler struct {
	svc      sessionService
	cookie   CookieConfig
	demoHint string
	log      *slog.Logger
}

// NewAuthHandler creates an AuthHandler. demoHint is the demo credential
// shown on the login page, e.g. "admin@reputationmanager.com / admin123".
func NewAuthHandler(svc sessionService, cookie CookieConfig, demoHint string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		cookie:   cookie,
		demoHint: demoHint,
		log:      logger.With("handler", "auth"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPageResponse struct {
	DemoCredentials string `json:"demoCredentials"`
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, loginPageResponse{DemoCredentials: h.demoHint})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), session.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password. Try "+h.demoHint)
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	h.setCookie(w, result.Token)
	resp := toSessionResponse(result.Session)
	resp.Redirect = HomePath
	writeJSON(w, http.StatusOK, resp)
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Register(r.Context(), session.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "register", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.setCookie(w, result.Token)
	resp := toSessionResponse(result.Session)
	resp.Redirect = HomePath
	writeJSON(w, http.StatusCreated, resp)
}

// Logout handles POST /logout. It always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess.Authenticated {
		h.svc.Logout(r.Context(), sess.ID)
	}

	h.clearCookie(w)
	resp := toSessionResponse(domain.AnonymousSession())
	resp.Redirect = LoginPath
	writeJSON(w, http.StatusOK, resp)
}

// Session handles GET /session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSessionResponse(middleware.SessionFromCtx(r.Context())))
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
