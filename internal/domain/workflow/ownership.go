package workflow

import (
	"fmt"

	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
)

// OwnershipRule decides whether an actor whose role passed the matrix may act
// on this particular ticket.
type OwnershipRule func(t *ticket.Ticket, target ticketvo.TicketState, actor Actor) bool

// OwnershipRules maps a role to its rule. Roles without a rule are denied.
type OwnershipRules map[uservo.Role]OwnershipRule

func DefaultOwnershipRules() OwnershipRules {
	return OwnershipRules{
		uservo.RoleEditor:      editorOwnsTicket,
		uservo.RoleReviewer:    reviewerOwnsTicket,
		uservo.RoleChiefEditor: func(*ticket.Ticket, ticketvo.TicketState, Actor) bool { return true },
	}
}

func editorOwnsTicket(t *ticket.Ticket, target ticketvo.TicketState, actor Actor) bool {
	if t.IsAssignedTo(actor.ID) {
		return true
	}
	return t.IsUnassigned() && target.IsInProgress()
}

func reviewerOwnsTicket(t *ticket.Ticket, target ticketvo.TicketState, _ Actor) bool {
	return target.IsInProgress() || t.State().IsForReview()
}

// Allows evaluates the rule for actor's role.
func (r OwnershipRules) Allows(t *ticket.Ticket, target ticketvo.TicketState, actor Actor) bool {
	rule, ok := r[actor.Role]
	if !ok || rule == nil {
		return false
	}
	return rule(t, target, actor)
}

// Validate checks that every role eligible in m has an ownership rule.
func (r OwnershipRules) Validate(m Matrix) error {
	for _, role := range m.Roles() {
		if rule, ok := r[role]; !ok || rule == nil {
			return fmt.Errorf("%w: no ownership rule for role %s", ErrIncompleteMatrix, role)
		}
	}
	return nil
}
