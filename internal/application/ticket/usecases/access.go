package usecases

import (
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
)

// canViewTickets lists the roles that take part in the editorial pipeline.
func canViewTickets(actor workflow.Actor) bool {
	switch actor.Role {
	case uservo.RoleAdmin, uservo.RoleChiefEditor, uservo.RoleEditor, uservo.RoleReviewer:
		return true
	default:
		return false
	}
}
