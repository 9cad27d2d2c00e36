package connection

import (
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// accountRecord is the JSON form of the googleUser entry.
type accountRecord struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// locationRecord is the JSON form of one googleBusinessPlaces element.
type locationRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

const connectedValue = "true"

func encodeAccount(a *domain.Account) (string, error) {
	b, err := json.Marshal(accountRecord{
		Email:        a.Email,
		Name:         a.Name,
		Picture:      a.Picture,
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("encode account: %w", err)
	}
	return string(b), nil
}

func decodeAccount(raw string) (*domain.Account, error) {
	var rec accountRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	if rec.Email == "" {
		return nil, fmt.Errorf("decode account: missing email")
	}
	return &domain.Account{
		Email:        rec.Email,
		Name:         rec.Name,
		Picture:      rec.Picture,
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
	}, nil
}

func encodeLocations(locations []domain.Location) (string, error) {
	recs := make([]locationRecord, 0, len(locations))
	for _, l := range locations {
		recs = append(recs, locationRecord{ID: l.ID, Name: l.Name, Address: l.Address})
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("encode locations: %w", err)
	}
	return string(b), nil
}

func decodeLocations(raw string) ([]domain.Location, error) {
	var recs []locationRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	out := make([]domain.Location, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.Location{ID: r.ID, Name: r.Name, Address: r.Address})
	}
	return out, nil
}
