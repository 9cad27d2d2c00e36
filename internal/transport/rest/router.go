package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/reputation-manager/internal/config"
	"github.com/heartmarshall/reputation-manager/internal/domain"
	"github.com/heartmarshall/reputation-manager/internal/transport/middleware"
)

// Paths the guards redirect to.
const (
	LoginPath = "/login"
	HomePath  = "/dashboard"
)

// sessionResolver is the capability the session middleware needs.
type sessionResolver interface {
	Resolve(ctx context.Context, token string) domain.Session
}

// requestRecorder records served requests.
type requestRecorder interface {
	RecordHTTPRequest(method, route string, status int, d time.Duration)
}

// RouterDeps groups everything NewRouter wires together.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	CookieName  string
	Sessions    sessionResolver
	Recorder    requestRecorder
	RateLimiter *middleware.RateLimiter

	// MetricsHandler serves /metrics. Nil leaves the route unregistered.
	MetricsHandler http.Handler

	Health      *HealthHandler
	Auth        *AuthHandler
	Pages       *PageHandler
	Integration *IntegrationHandler
}

// NewRouter builds the HTTP handler of the dashboard backend.
//
// Middleware order, outermost first:
//
//	Recovery -> RequestID -> CORS -> Session -> Logger -> Metrics
//
// Session runs before Logger so request logs carry the session id.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.CORS(deps.CORS),
		middleware.Session(deps.Sessions, deps.CookieName),
		middleware.Logger(deps.Logger),
		middleware.Metrics(deps.Recorder),
	))

	// Public.
	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
	r.Get("/oauth/callback", deps.Integration.Callback)
	r.Get("/session", deps.Auth.Session)
	r.Post("/logout", deps.Auth.Logout)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, HomePath, http.StatusFound)
	})

	// Guest only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireGuest(HomePath))

		r.Get(LoginPath, deps.Auth.LoginPage)
		r.With(deps.RateLimiter.Limit()).Post(LoginPath, deps.Auth.Login)
		r.With(deps.RateLimiter.Limit()).Post("/register", deps.Auth.Register)
	})

	// Authenticated.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(LoginPath))

		r.Get(HomePath, deps.Pages.Dashboard)
		r.Get("/locations", deps.Pages.Locations)
		r.Get("/reviews", deps.Pages.Reviews)
		r.Post("/reviews/{id}/reply", deps.Pages.Reply)
		r.Get("/team", deps.Pages.Team)
		r.Get("/settings", deps.Pages.Settings)

		r.Route("/settings/integrations", func(r chi.Router) {
			r.Get("/", deps.Integration.Status)

			r.Route("/google", func(r chi.Router) {
				r.Post("/connect", deps.Integration.Connect)
				r.Post("/credential", deps.Integration.Credential)
				r.Post("/disconnect", deps.Integration.Disconnect)
				r.Post("/refresh", deps.Integration.Refresh)

				r.Post("/oauth/start", deps.Integration.StartOAuth)
				r.Get("/oauth/wait", deps.Integration.WaitOAuth)
				r.Post("/oauth/message", deps.Integration.OAuthMessage)
				r.Post("/oauth/closed", deps.Integration.OAuthClosed)
			})
		})
	})

	return r
}
