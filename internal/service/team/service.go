// Package team lists the people with access to the dashboard.
package team

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

type memberSource interface {
	Team() []domain.TeamMember
}

// Service serves the team page.
type Service struct {
	log     *slog.Logger
	members memberSource
}

func NewService(logger *slog.Logger, members memberSource) *Service {
	return &Service{
		log:     logger.With("service", "team"),
		members: members,
	}
}

// List returns the team members in catalog order.
func (s *Service) List(_ context.Context) []domain.TeamMember {
	members := s.members.Team()
	if members == nil {
		return []domain.TeamMember{}
	}
	return members
}
