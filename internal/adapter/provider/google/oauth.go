package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// OAuthConfig holds the client credentials and endpoints for the Google
// OAuth token exchange.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenURL     string
	UserinfoURL  string
	Timeout      time.Duration
}

// OAuthClient exchanges authorization codes and refresh tokens and reads
// the userinfo profile. It runs only on this server so the client secret
// never reaches a browser.
type OAuthClient struct {
	cfg        OAuthConfig
	httpClient *http.Client
	rec        Recorder
	log        *slog.Logger
}

// NewOAuthClient creates an OAuth client. rec may be nil.
func NewOAuthClient(cfg OAuthConfig, rec Recorder, logger *slog.Logger) *OAuthClient {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &OAuthClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rec:        rec,
		log:        logger.With("adapter", "google_oauth"),
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
}

type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// OAuthError is an error reported by the token endpoint, e.g.
// "redirect_uri_mismatch" or "invalid_grant".
type OAuthError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("oauth: %s: %s", e.Code, e.Description)
	}
	return "oauth: " + e.Code
}

// OAuthErrorCode returns the error code from the token endpoint.
func (e *OAuthError) OAuthErrorCode() string {
	return e.Code
}

var errGoogleUnavailable = errors.New("oauth: google unavailable")

// ExchangeCode exchanges an authorization code for tokens.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	return c.postToken(ctx, "exchange_code", form)
}

// RefreshToken obtains a new access token with a refresh token.
func (c *OAuthClient) RefreshToken(ctx context.Context, refreshToken string) (*domain.OAuthToken, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	return c.postToken(ctx, "refresh_token", form)
}

func (c *OAuthClient) postToken(ctx context.Context, op string, form url.Values) (*domain.OAuthToken, error) {
	encoded := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		c.log.ErrorContext(ctx, "google oauth token request failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, errGoogleUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		return nil, fmt.Errorf("oauth: failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.rec.ProviderCall(op, outcomeFailure)

		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			c.log.ErrorContext(ctx, "google oauth token request rejected",
				slog.String("operation", op),
				slog.Int("status", resp.StatusCode),
				slog.String("error", errResp.Error))
			return nil, &OAuthError{
				StatusCode:  resp.StatusCode,
				Code:        errResp.Error,
				Description: errResp.ErrorDescription,
			}
		}

		c.log.ErrorContext(ctx, "google oauth token request failed",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode))
		return nil, errGoogleUnavailable
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		return nil, fmt.Errorf("oauth: invalid token response: %w", err)
	}
	if token.AccessToken == "" {
		c.rec.ProviderCall(op, outcomeFailure)
		return nil, fmt.Errorf("oauth: invalid token response: missing access_token")
	}

	c.rec.ProviderCall(op, outcomeSuccess)
	return &domain.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		IDToken:      token.IDToken,
		TokenType:    token.TokenType,
		Scope:        token.Scope,
		ExpiresIn:    time.Duration(token.ExpiresIn) * time.Second,
	}, nil
}

// FetchUserinfo reads the profile of the account that owns accessToken.
// The returned account carries accessToken.
func (c *OAuthClient) FetchUserinfo(ctx context.Context, accessToken string) (*domain.Account, error) {
	const op = "userinfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		c.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.rec.ProviderCall(op, outcomeFailure)
		c.log.ErrorContext(ctx, "google oauth userinfo failed", slog.Int("status", resp.StatusCode))
		if sentinel := statusToError(resp.StatusCode); sentinel != nil {
			return nil, fmt.Errorf("oauth: fetch user info: %w", sentinel)
		}
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}

	var info userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		return nil, fmt.Errorf("oauth: invalid userinfo response: %w", err)
	}
	if info.Email == "" {
		c.rec.ProviderCall(op, outcomeFailure)
		return nil, fmt.Errorf("oauth: invalid userinfo response: missing email")
	}

	c.rec.ProviderCall(op, outcomeSuccess)
	c.log.DebugContext(ctx, "google userinfo fetched", slog.String("email", info.Email))

	return &domain.Account{
		Email:       info.Email,
		Name:        info.Name,
		Picture:     info.Picture,
		AccessToken: accessToken,
	}, nil
}

// doWithRetry retries once, after 500ms, on a network error or a 5xx.
// For POST requests the body must be replayable through GetBody.
func (c *OAuthClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err == nil && resp.StatusCode < 500 {
		return resp, nil
	}
	if resp != nil {
		resp.Body.Close()
	}

	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		retry.Body = body
	}

	return c.httpClient.Do(retry)
}
