// Package settings assembles the read-only settings page: profile, plan,
// response templates and automation rules.
package settings

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

type settingsSource interface {
	Plan() domain.Plan
	Templates() []domain.ResponseTemplate
	AutomationRules() []domain.AutomationRule
}

// Profile is the signed-in user as shown on the settings page.
type Profile struct {
	Name  string
	Email string
}

// Page is the settings page model.
type Page struct {
	Profile         Profile
	Plan            domain.Plan
	Templates       []domain.ResponseTemplate
	AutomationRules []domain.AutomationRule
}

// Service serves the settings page.
type Service struct {
	log    *slog.Logger
	source settingsSource
}

func NewService(logger *slog.Logger, source settingsSource) *Service {
	return &Service{
		log:    logger.With("service", "settings"),
		source: source,
	}
}

// Page builds the settings page for user. A nil user yields an empty
// profile.
func (s *Service) Page(_ context.Context, user *domain.SessionUser) Page {
	p := Page{
		Plan:            s.source.Plan(),
		Templates:       s.source.Templates(),
		AutomationRules: s.source.AutomationRules(),
	}
	if user != nil {
		p.Profile = Profile{Name: user.Name, Email: user.Email}
	}
	if p.Templates == nil {
		p.Templates = []domain.ResponseTemplate{}
	}
	if p.AutomationRules == nil {
		p.AutomationRules = []domain.AutomationRule{}
	}
	return p
}
