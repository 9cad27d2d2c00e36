package domain

import "time"

// OAuthToken is the result of an authorization code or refresh token
// exchange. RefreshToken is only returned on the first consent.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	Scope        string
	ExpiresIn    time.Duration
}
