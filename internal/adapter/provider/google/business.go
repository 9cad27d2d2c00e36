package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

const (
	// DefaultAccount is the placeholder resource used when the account
	// list is unavailable or empty.
	DefaultAccount = "accounts/-"

	maxLocationPages = 20

	unnamedLocation     = "Unnamed Location"
	addressNotAvailable = "Address not available"
)

// BusinessClient reads accounts and locations from the Google Business
// Profile API. It never retries.
type BusinessClient struct {
	baseURL    string
	httpClient *http.Client
	rec        Recorder
	log        *slog.Logger
}

// NewBusinessClient creates a client for the API rooted at baseURL.
// rec may be nil.
func NewBusinessClient(baseURL string, timeout time.Duration, rec Recorder, logger *slog.Logger) *BusinessClient {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &BusinessClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		rec:        rec,
		log:        logger.With("adapter", "google_business"),
	}
}

// BusinessAccount is one entry of the accounts listing.
type BusinessAccount struct {
	Name            string `json:"name"`
	AccountName     string `json:"accountName"`
	Type            string `json:"type"`
	PermissionLevel string `json:"permissionLevel"`
}

type accountsResponse struct {
	Accounts []BusinessAccount `json:"accounts"`
}

type addressResponse struct {
	AddressLines       []string `json:"addressLines"`
	Locality           string   `json:"locality"`
	AdministrativeArea string   `json:"administrativeArea"`
	PostalCode         string   `json:"postalCode"`
	CountryCode        string   `json:"countryCode"`
}

type locationResponse struct {
	Name         string           `json:"name"`
	LocationName string           `json:"locationName"`
	Address      *addressResponse `json:"address"`
}

type locationsResponse struct {
	Locations     []locationResponse `json:"locations"`
	NextPageToken string             `json:"nextPageToken"`
}

// FetchLocations lists the locations of the first account visible to
// accessToken. An empty token yields an empty list without any request.
// A failed account lookup (other than 401/403) falls back to DefaultAccount.
func (c *BusinessClient) FetchLocations(ctx context.Context, accessToken string) ([]domain.Location, error) {
	if accessToken == "" {
		c.log.WarnContext(ctx, "no access token provided for google business api")
		return []domain.Location{}, nil
	}

	account := DefaultAccount

	accounts, err := c.ListAccounts(ctx, accessToken)
	switch {
	case err == nil && len(accounts) > 0:
		account = accounts[0].Name
	case err == nil:
		c.log.WarnContext(ctx, "no google business accounts found, using default account")
	case isAuthError(err):
		return nil, err
	default:
		c.log.WarnContext(ctx, "failed to fetch accounts list, using default account",
			slog.String("error", err.Error()))
	}

	return c.ListLocations(ctx, accessToken, account)
}

// ListAccounts returns the business accounts visible to accessToken.
func (c *BusinessClient) ListAccounts(ctx context.Context, accessToken string) ([]BusinessAccount, error) {
	var out accountsResponse
	if err := c.get(ctx, "list_accounts", c.baseURL+"/v1/accounts", accessToken, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// ListLocations returns the locations of account, e.g. "accounts/123",
// following nextPageToken until the listing is exhausted.
func (c *BusinessClient) ListLocations(ctx context.Context, accessToken, account string) ([]domain.Location, error) {
	base := fmt.Sprintf("%s/v1/%s/locations", c.baseURL, account)
	locations := make([]domain.Location, 0)

	pageToken := ""
	for page := 0; page < maxLocationPages; page++ {
		endpoint := base
		if pageToken != "" {
			endpoint += "?pageToken=" + url.QueryEscape(pageToken)
		}

		var out locationsResponse
		if err := c.get(ctx, "list_locations", endpoint, accessToken, &out); err != nil {
			return nil, err
		}
		for _, l := range out.Locations {
			locations = append(locations, toDomainLocation(l))
		}

		if out.NextPageToken == "" {
			break
		}
		pageToken = out.NextPageToken
	}

	c.log.DebugContext(ctx, "google business locations fetched",
		slog.String("account", account),
		slog.Int("count", len(locations)))

	return locations, nil
}

func (c *BusinessClient) get(ctx context.Context, op, endpoint, accessToken string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("google %s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		c.log.ErrorContext(ctx, "google business request failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return fmt.Errorf("google %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.rec.ProviderCall(op, outcomeFailure)
		c.log.WarnContext(ctx, "google business request rejected",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode))
		if sentinel := statusToError(resp.StatusCode); sentinel != nil {
			return fmt.Errorf("google %s: %w", op, sentinel)
		}
		return &StatusError{Operation: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.rec.ProviderCall(op, outcomeFailure)
		return fmt.Errorf("google %s: decode response: %w", op, err)
	}

	c.rec.ProviderCall(op, outcomeSuccess)
	return nil
}

func toDomainLocation(l locationResponse) domain.Location {
	name := l.LocationName
	if name == "" {
		name = unnamedLocation
	}
	return domain.Location{
		ID:      l.Name,
		Name:    name,
		Address: formatAddress(l.Address),
	}
}

// formatAddress joins the non-empty address parts. Only a missing address
// object gets the placeholder.
func formatAddress(a *addressResponse) string {
	if a == nil {
		return addressNotAvailable
	}

	parts := make([]string, 0, 5)
	if lines := strings.Join(a.AddressLines, " "); lines != "" {
		parts = append(parts, lines)
	}
	for _, p := range []string{a.Locality, a.AdministrativeArea, a.PostalCode, a.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}
