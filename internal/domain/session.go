package domain

import "github.com/google/uuid"

// SessionUser is the identity attached to an authenticated session.
type SessionUser struct {
	Email string
	Name  string
}

// Session is the authentication state of one browser session.
// Invariant: User != nil iff Authenticated.
type Session struct {
	ID            uuid.UUID
	Authenticated bool
	User          *SessionUser
}

// AnonymousSession returns the unauthenticated session value.
func AnonymousSession() Session {
	return Session{}
}
