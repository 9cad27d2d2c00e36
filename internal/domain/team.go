package domain

// TeamRole is the permission level of a team member.
type TeamRole string

const (
	TeamRoleAdmin     TeamRole = "Admin"
	TeamRoleResponder TeamRole = "Responder"
	TeamRoleViewer    TeamRole = "Viewer"
)

func (r TeamRole) String() string { return string(r) }

func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleAdmin, TeamRoleResponder, TeamRoleViewer:
		return true
	}
	return false
}

// TeamMember is a person with access to the dashboard.
type TeamMember struct {
	ID        string
	Name      string
	Email     string
	Role      TeamRole
	AvatarURL string
}
