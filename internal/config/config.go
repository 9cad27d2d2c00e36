package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Google   GoogleConfig   `yaml:"google"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used when
// Storage.Driver is "postgres".
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Storage drivers for the persisted connection entries.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// StorageConfig selects the key-value backend for the connection entries.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

// AuthConfig holds dashboard session settings.
type AuthConfig struct {
	// SessionSecret signs session cookies. When empty a random secret is
	// generated at startup, so every restart logs everybody out.
	SessionSecret    string        `yaml:"session_secret"     env:"AUTH_SESSION_SECRET"`
	SessionIssuer    string        `yaml:"session_issuer"     env:"AUTH_SESSION_ISSUER"     env-default:"reputation-manager"`
	SessionTTL       time.Duration `yaml:"session_ttl"        env:"AUTH_SESSION_TTL"        env-default:"12h"`
	CookieName       string        `yaml:"cookie_name"        env:"AUTH_COOKIE_NAME"        env-default:"rm_session"`
	CookieSecure     bool          `yaml:"cookie_secure"      env:"AUTH_COOKIE_SECURE"      env-default:"false"`
	DemoEmail        string        `yaml:"demo_email"         env:"AUTH_DEMO_EMAIL"         env-default:"admin@reputationmanager.com"`
	DemoPassword     string        `yaml:"demo_password"      env:"AUTH_DEMO_PASSWORD"      env-default:"admin123"`
	DemoName         string        `yaml:"demo_name"          env:"AUTH_DEMO_NAME"          env-default:"Admin User"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
	LoginRatePerMin  int           `yaml:"login_rate_per_min" env:"AUTH_LOGIN_RATE_PER_MIN" env-default:"20"`
}

// GoogleConfig holds the Google Business Profile integration settings.
// ClientID and ClientSecret default to empty; an OAuth attempt without a
// client id fails at the point of use, and code exchange additionally
// needs the secret.
type GoogleConfig struct {
	ClientID          string        `yaml:"client_id"           env:"GOOGLE_CLIENT_ID"`
	ClientSecret      string        `yaml:"client_secret"       env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI       string        `yaml:"redirect_uri"        env:"GOOGLE_REDIRECT_URI"        env-default:"http://localhost:8080/oauth/callback"`
	AppOrigin         string        `yaml:"app_origin"          env:"GOOGLE_APP_ORIGIN"          env-default:"http://localhost:8080"`
	Scope             string        `yaml:"scope"               env:"GOOGLE_SCOPE"               env-default:"https://www.googleapis.com/auth/business.manage"`
	AuthURL           string        `yaml:"auth_url"            env:"GOOGLE_AUTH_URL"            env-default:"https://accounts.google.com/o/oauth2/v2/auth"`
	TokenURL          string        `yaml:"token_url"           env:"GOOGLE_TOKEN_URL"           env-default:"https://oauth2.googleapis.com/token"`
	UserinfoURL       string        `yaml:"userinfo_url"        env:"GOOGLE_USERINFO_URL"        env-default:"https://www.googleapis.com/oauth2/v2/userinfo"`
	BusinessAPIURL    string        `yaml:"business_api_url"    env:"GOOGLE_BUSINESS_API_URL"    env-default:"https://mybusinessbusinessinformation.googleapis.com"`
	RequestTimeout    time.Duration `yaml:"request_timeout"     env:"GOOGLE_REQUEST_TIMEOUT"     env-default:"10s"`
	PopupPollInterval time.Duration `yaml:"popup_poll_interval" env:"GOOGLE_POPUP_POLL_INTERVAL" env-default:"1s"`
	// FlowTimeout bounds an OAuth wait. Zero means no ceiling.
	FlowTimeout time.Duration `yaml:"flow_timeout" env:"GOOGLE_FLOW_TIMEOUT" env-default:"0s"`
}

// HasClientID reports whether an OAuth attempt may start.
func (c GoogleConfig) HasClientID() bool {
	return c.ClientID != ""
}

// CanExchangeCode reports whether this server holds the credentials
// required to exchange an authorization code.
func (c GoogleConfig) CanExchangeCode() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
