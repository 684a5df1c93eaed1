package services

import (
	"github.com/google/uuid"
)

type Role int

const (
	RoleUnauthenticated Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "unauthenticated"
	}
}

// Principal is the verified identity attached to a single request. A nil
// *Principal is the unauthenticated state.
type Principal struct {
	UserID    uint
	IsAdmin   bool
	SessionID uuid.UUID
}

func (p *Principal) Role() Role {
	switch {
	case p == nil:
		return RoleUnauthenticated
	case p.IsAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

func RequireAuthenticated(p *Principal) error {
	if p.Role() == RoleUnauthenticated {
		return &AuthorizationError{Reason: "login required"}
	}
	return nil
}

// RequireAdmin rejects anyone but an administrator. A logged-in non-admin is
// flagged so the caller ends that session.
func RequireAdmin(p *Principal) error {
	switch p.Role() {
	case RoleAdmin:
		return nil
	case RoleUser:
		return &AuthorizationError{Reason: "administrator access required", TerminateSession: true}
	default:
		return &AuthorizationError{Reason: "login required"}
	}
}
