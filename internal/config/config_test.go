package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

storage:
  driver: "postgres"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4

auth:
  session_secret: "this-is-a-very-long-session-secret-for-tests"
  session_ttl: "1h"
  demo_email: "owner@example.com"
  demo_password: "s3cret"
  password_hash_cost: 4

google:
  client_id: "gid"
  client_secret: "gsecret"
  redirect_uri: "https://app.example.com/oauth/callback"
  app_origin: "https://app.example.com"
  popup_poll_interval: "500ms"

log:
  level: "debug"
  format: "text"
`

// validConfig returns a Config that passes Validate.
func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
		Storage: StorageConfig{Driver: StorageMemory},
		Auth: AuthConfig{
			SessionTTL:       time.Hour,
			DemoEmail:        "admin@reputationmanager.com",
			DemoPassword:     "admin123",
			DemoName:         "Admin User",
			PasswordHashCost: 10,
			LoginRatePerMin:  20,
		},
		Google: GoogleConfig{
			RedirectURI:       "http://localhost:8080/oauth/callback",
			AppOrigin:         "http://localhost:8080",
			PopupPollInterval: time.Second,
		},
	}
}

func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Storage.Driver != StoragePostgres {
		t.Errorf("storage.driver = %q, want %q", cfg.Storage.Driver, StoragePostgres)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}
	if cfg.Auth.DemoEmail != "owner@example.com" {
		t.Errorf("auth.demo_email = %q", cfg.Auth.DemoEmail)
	}
	if cfg.Auth.DemoName != "Admin User" {
		t.Errorf("auth.demo_name = %q, want default %q", cfg.Auth.DemoName, "Admin User")
	}
	if cfg.Auth.CookieName != "rm_session" {
		t.Errorf("auth.cookie_name = %q, want default", cfg.Auth.CookieName)
	}
	if !cfg.Google.CanExchangeCode() {
		t.Error("google credentials should allow code exchange")
	}
	if cfg.Google.PopupPollInterval != 500*time.Millisecond {
		t.Errorf("google.popup_poll_interval = %v, want 500ms", cfg.Google.PopupPollInterval)
	}
	if cfg.Google.Scope != "https://www.googleapis.com/auth/business.manage" {
		t.Errorf("google.scope = %q", cfg.Google.Scope)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
}

func TestLoad_NoFile_DefaultsOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("storage.driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Google.ClientID != "" || cfg.Google.ClientSecret != "" {
		t.Error("google client credentials must default to empty")
	}
	if cfg.Google.HasClientID() {
		t.Error("HasClientID should be false without a client id")
	}
	if cfg.Google.FlowTimeout != 0 {
		t.Errorf("google.flow_timeout = %v, want 0", cfg.Google.FlowTimeout)
	}
	if cfg.Auth.SessionSecret != "" {
		t.Error("session secret must default to empty")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"session secret too short", func(c *Config) { c.Auth.SessionSecret = "short" }, true},
		{"session secret long enough", func(c *Config) { c.Auth.SessionSecret = "0123456789abcdef0123456789abcdef" }, false},
		{"zero session ttl", func(c *Config) { c.Auth.SessionTTL = 0 }, true},
		{"empty demo password", func(c *Config) { c.Auth.DemoPassword = "" }, true},
		{"hash cost too low", func(c *Config) { c.Auth.PasswordHashCost = 3 }, true},
		{"zero login rate", func(c *Config) { c.Auth.LoginRatePerMin = 0 }, true},
		{"secret without client id", func(c *Config) { c.Google.ClientSecret = "s" }, true},
		{"bad redirect uri", func(c *Config) { c.Google.RedirectURI = "not a url" }, true},
		{"origin with path", func(c *Config) { c.Google.AppOrigin = "http://localhost:8080/app" }, true},
		{"zero poll interval", func(c *Config) { c.Google.PopupPollInterval = 0 }, true},
		{"negative flow timeout", func(c *Config) { c.Google.FlowTimeout = -time.Second }, true},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = StoragePostgres }, true},
		{"postgres with dsn", func(c *Config) {
			c.Storage.Driver = StoragePostgres
			c.Database.DSN = "postgres://localhost/db"
		}, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGoogleConfig_Capabilities(t *testing.T) {
	t.Parallel()

	g := GoogleConfig{ClientID: "id"}
	if !g.HasClientID() {
		t.Error("HasClientID = false, want true")
	}
	if g.CanExchangeCode() {
		t.Error("CanExchangeCode without secret = true, want false")
	}

	g.ClientSecret = "secret"
	if !g.CanExchangeCode() {
		t.Error("CanExchangeCode with secret = false, want true")
	}
}
