package workflow

import (
	"fmt"

	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
)

// Matrix lists, per target state, the roles allowed to drive a ticket there.
// Admins are never listed; they bypass the matrix.
type Matrix map[ticketvo.TicketState][]uservo.Role

// ReadScope says which article versions a role may read.
type ReadScope int

const (
	ReadNone ReadScope = iota
	// ReadOwn limits reads to articles the actor edits.
	ReadOwn
	ReadAll
)

func (s ReadScope) String() string {
	switch s {
	case ReadOwn:
		return "own"
	case ReadAll:
		return "all"
	default:
		return "none"
	}
}

func DefaultMatrix() Matrix {
	return Matrix{
		ticketvo.StateOpen:       {uservo.RoleChiefEditor},
		ticketvo.StateInProgress: {uservo.RoleEditor, uservo.RoleChiefEditor},
		ticketvo.StateForReview:  {uservo.RoleEditor},
		ticketvo.StateApproved:   {uservo.RoleChiefEditor},
		ticketvo.StatePublished:  {uservo.RoleChiefEditor},
	}
}

func DefaultReadScopes() map[uservo.Role]ReadScope {
	return map[uservo.Role]ReadScope{
		uservo.RoleChiefEditor: ReadAll,
		uservo.RoleReviewer:    ReadAll,
		uservo.RoleEditor:      ReadOwn,
	}
}

func (m Matrix) Allows(role uservo.Role, target ticketvo.TicketState) bool {
	for _, r := range m[target] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns every non-admin role that appears in the matrix.
func (m Matrix) Roles() []uservo.Role {
	seen := make(map[uservo.Role]bool)
	var roles []uservo.Role
	for _, state := range ticketvo.AllTicketStates() {
		for _, role := range m[state] {
			if !seen[role] {
				seen[role] = true
				roles = append(roles, role)
			}
		}
	}
	return roles
}

// Validate checks that every reachable target state has at least one eligible
// role and that the matrix names only known states and roles.
func (m Matrix) Validate() error {
	for state, roles := range m {
		if !state.IsValid() {
			return fmt.Errorf("%w: unknown state %q", ErrIncompleteMatrix, state)
		}
		for _, role := range roles {
			if !role.IsValid() {
				return fmt.Errorf("%w: unknown role %q for %s", ErrIncompleteMatrix, role, state)
			}
			if role.IsAdmin() {
				return fmt.Errorf("%w: admin must not be listed for %s", ErrIncompleteMatrix, state)
			}
		}
	}

	for _, from := range ticketvo.AllTicketStates() {
		for _, target := range from.AllowedTargets() {
			if len(m[target]) == 0 {
				return fmt.Errorf("%w: no role may move a ticket to %s", ErrIncompleteMatrix, target)
			}
		}
	}
	return nil
}
