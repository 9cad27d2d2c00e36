package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := c.Google.validate(); err != nil {
		return fmt.Errorf("google: %w", err)
	}

	switch strings.ToLower(c.Storage.Driver) {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when storage.driver is %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", StorageMemory, StoragePostgres, c.Storage.Driver)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if a.SessionSecret != "" && len(a.SessionSecret) < 32 {
		return fmt.Errorf("session_secret must be at least 32 characters (got %d)", len(a.SessionSecret))
	}
	if a.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", a.SessionTTL)
	}
	if a.DemoEmail == "" || a.DemoPassword == "" {
		return fmt.Errorf("demo_email and demo_password are required")
	}
	if a.PasswordHashCost < 4 || a.PasswordHashCost > 31 {
		return fmt.Errorf("password_hash_cost must be in 4..31 (got %d)", a.PasswordHashCost)
	}
	if a.LoginRatePerMin <= 0 {
		return fmt.Errorf("login_rate_per_min must be > 0 (got %d)", a.LoginRatePerMin)
	}
	return nil
}

func (g *GoogleConfig) validate() error {
	if g.ClientSecret != "" && g.ClientID == "" {
		return fmt.Errorf("client_secret is set but client_id is empty")
	}
	if _, err := url.ParseRequestURI(g.RedirectURI); err != nil {
		return fmt.Errorf("redirect_uri: %w", err)
	}
	origin, err := url.ParseRequestURI(g.AppOrigin)
	if err != nil {
		return fmt.Errorf("app_origin: %w", err)
	}
	if origin.Path != "" && origin.Path != "/" {
		return fmt.Errorf("app_origin must not contain a path (got %q)", g.AppOrigin)
	}
	if g.PopupPollInterval <= 0 {
		return fmt.Errorf("popup_poll_interval must be > 0 (got %v)", g.PopupPollInterval)
	}
	if g.FlowTimeout < 0 {
		return fmt.Errorf("flow_timeout must be >= 0 (got %v)", g.FlowTimeout)
	}
	return nil
}
