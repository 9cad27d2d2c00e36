package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/reputation-manager/internal/adapter/postgres"
	"github.com/heartmarshall/reputation-manager/internal/adapter/postgres/kv"
	"github.com/heartmarshall/reputation-manager/internal/adapter/provider/google"
	"github.com/heartmarshall/reputation-manager/internal/adapter/storage/memory"
	"github.com/heartmarshall/reputation-manager/internal/auth"
	"github.com/heartmarshall/reputation-manager/internal/catalog"
	"github.com/heartmarshall/reputation-manager/internal/config"
	"github.com/heartmarshall/reputation-manager/internal/metrics"
	"github.com/heartmarshall/reputation-manager/internal/service/connection"
	"github.com/heartmarshall/reputation-manager/internal/service/location"
	"github.com/heartmarshall/reputation-manager/internal/service/oauthflow"
	"github.com/heartmarshall/reputation-manager/internal/service/review"
	"github.com/heartmarshall/reputation-manager/internal/service/session"
	"github.com/heartmarshall/reputation-manager/internal/service/settings"
	"github.com/heartmarshall/reputation-manager/internal/service/team"
	"github.com/heartmarshall/reputation-manager/internal/transport/middleware"
	"github.com/heartmarshall/reputation-manager/internal/transport/rest"
)

// keyValueStore is what the connection service persists its entries in.
type keyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
}

// Run is the application entry point. It loads configuration, wires the
// services and serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	handler, cleanup, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return serve(ctx, cfg.Server, handler, logger)
}

// Build wires every component for cfg and returns the root HTTP handler
// together with a cleanup function releasing background resources. The
// persisted connection is loaded before Build returns.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	cat, err := catalog.Default()
	if err != nil {
		return nil, cleanup, fmt.Errorf("load catalog: %w", err)
	}

	store, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}
	cleanups = append(cleanups, closeStore)

	// Google adapters.
	business := google.NewBusinessClient(cfg.Google.BusinessAPIURL, cfg.Google.RequestTimeout, collector, logger)
	oauthClient := google.NewOAuthClient(google.OAuthConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.Google.RedirectURI,
		TokenURL:     cfg.Google.TokenURL,
		UserinfoURL:  cfg.Google.UserinfoURL,
		Timeout:      cfg.Google.RequestTimeout,
	}, collector, logger)

	// Services.
	conn := connection.NewService(logger, store, business)
	if err := conn.Init(ctx); err != nil {
		return nil, cleanup, fmt.Errorf("load connection: %w", err)
	}

	flows := oauthflow.NewService(logger, oauthflow.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.Google.RedirectURI,
		Scope:        cfg.Google.Scope,
		AuthURL:      cfg.Google.AuthURL,
		PollInterval: cfg.Google.PopupPollInterval,
		AppOrigin:    cfg.Google.AppOrigin,
		FlowTimeout:  cfg.Google.FlowTimeout,
	}, oauthClient, conn, collector)

	tokens, err := auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionIssuer, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, cleanup, fmt.Errorf("token manager: %w", err)
	}
	if cfg.Auth.SessionSecret == "" {
		logger.Warn("auth.session_secret is empty, using a random secret; sessions will not survive a restart")
	}

	sessions, err := session.NewService(logger, tokens, collector, cfg.Auth)
	if err != nil {
		return nil, cleanup, err
	}

	locations := location.NewService(logger, cat.Locations(), conn)
	reviews := review.NewService(logger, cat.Reviews(), locations, cat, collector)

	// Transport.
	rl := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMin, time.Minute)
	cleanups = append(cleanups, rl.Stop)

	integration := rest.NewIntegrationHandler(conn, flows, logger)

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:         logger,
		CORS:           cfg.CORS,
		CookieName:     cfg.Auth.CookieName,
		Sessions:       sessions,
		Recorder:       collector,
		RateLimiter:    rl,
		MetricsHandler: metrics.Handler(registry),
		Health:         rest.NewHealthHandler(store, conn, Version),
		Auth: rest.NewAuthHandler(sessions, rest.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			TTL:    tokens.TTL(),
		}, cfg.Auth.DemoEmail+" / "+cfg.Auth.DemoPassword, logger),
		Pages: rest.NewPageHandler(
			reviews,
			locations,
			team.NewService(logger, cat),
			settings.NewService(logger, cat),
			integration,
			logger,
		),
		Integration: integration,
	})

	return handler, cleanup, nil
}

// openStorage opens the key-value backend selected by cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (keyValueStore, func(), error) {
	if !strings.EqualFold(cfg.Storage.Driver, config.StoragePostgres) {
		return memory.New(nil), func() {}, nil
	}

	if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to database")

	return kv.New(pool), pool.Close, nil
}

// serve runs the HTTP server until ctx is done and then drains it within
// the configured shutdown timeout.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
