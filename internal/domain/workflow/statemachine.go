package workflow

import (
	"fmt"

	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
)

// StateMachine validates single ticket transitions. It never mutates the
// ticket.
type StateMachine struct {
	authorizer Authorizer
	ownership  OwnershipRules
}

// NewStateMachine fails when the authorizer's matrix or the ownership table
// is incomplete.
func NewStateMachine(authorizer Authorizer, ownership OwnershipRules) (*StateMachine, error) {
	matrix := authorizer.Matrix()
	if err := matrix.Validate(); err != nil {
		return nil, err
	}
	if err := ownership.Validate(matrix); err != nil {
		return nil, err
	}
	return &StateMachine{
		authorizer: authorizer,
		ownership:  ownership,
	}, nil
}

// Validate returns nil when t may move to target on behalf of actor.
// A target equal to the current state always passes.
func (sm *StateMachine) Validate(t *ticket.Ticket, target ticketvo.TicketState, actor Actor) error {
	current := t.State()
	if current == target {
		return nil
	}

	if !target.IsValid() || !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	if actor.IsAdmin() {
		return nil
	}

	allowed, err := sm.authorizer.CanTransition(actor.Role, target)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: role %s may not move tickets to %s", ErrForbidden, actor.Role, target)
	}

	if !sm.ownership.Allows(t, target, actor) {
		return fmt.Errorf("%w: user %d may not move ticket %d to %s", ErrForbidden, actor.ID, t.ID(), target)
	}

	return nil
}
