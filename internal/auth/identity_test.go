package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signCredential(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("google-would-use-rs256"))
	if err != nil {
		t.Fatalf("sign credential: %v", err)
	}
	return token
}

func TestDecodeCredential_Success(t *testing.T) {
	t.Parallel()

	credential := signCredential(t, jwt.MapClaims{
		"email":   "owner@example.com",
		"name":    "Shop Owner",
		"picture": "https://example.com/p.png",
	})

	identity, err := DecodeCredential(credential)
	if err != nil {
		t.Fatalf("DecodeCredential: %v", err)
	}

	if identity.Email != "owner@example.com" {
		t.Errorf("Email = %q", identity.Email)
	}
	if identity.Name != "Shop Owner" {
		t.Errorf("Name = %q", identity.Name)
	}
	if identity.Picture != "https://example.com/p.png" {
		t.Errorf("Picture = %q", identity.Picture)
	}
}

func TestDecodeCredential_MissingEmail(t *testing.T) {
	t.Parallel()

	credential := signCredential(t, jwt.MapClaims{"name": "No Email"})

	if _, err := DecodeCredential(credential); err == nil {
		t.Fatal("expected error for credential without email")
	}
}

func TestDecodeCredential_Malformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "a.b"} {
		if _, err := DecodeCredential(in); err == nil {
			t.Errorf("DecodeCredential(%q): expected error", in)
		}
	}
}
