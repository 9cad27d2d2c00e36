package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleIdentity is the profile carried by a Google Identity Services
// credential (an ID token).
type GoogleIdentity struct {
	Email   string
	Name    string
	Picture string
}

type credentialClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// DecodeCredential reads the profile out of a Google ID token without
// verifying its signature. The result is display data only and must not be
// used to authenticate a dashboard session.
func DecodeCredential(credential string) (*GoogleIdentity, error) {
	if credential == "" {
		return nil, fmt.Errorf("credential is empty")
	}

	claims := &credentialClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("decode credential: missing email claim")
	}

	return &GoogleIdentity{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
