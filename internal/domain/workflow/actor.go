package workflow

import (
	uservo "redsys/internal/domain/user/valueobjects"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	ID   uint
	Role uservo.Role
}

func NewActor(id uint, role uservo.Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}
