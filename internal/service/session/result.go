package session

import "github.com/heartmarshall/reputation-manager/internal/domain"

// Result is returned by Login and Register.
type Result struct {
	Session domain.Session
	Token   string // signed cookie value
}
