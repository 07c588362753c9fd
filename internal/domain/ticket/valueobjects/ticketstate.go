package valueobjects

import "fmt"

type TicketState string

const (
	StateOpen       TicketState = "open"
	StateInProgress TicketState = "in_progress"
	StateForReview  TicketState = "for_review"
	StateApproved   TicketState = "approved"
	StatePublished  TicketState = "published"
)

var allTicketStates = []TicketState{
	StateOpen,
	StateInProgress,
	StateForReview,
	StateApproved,
	StatePublished,
}

var ticketStateTransitions = map[TicketState][]TicketState{
	StateOpen: {
		StateInProgress,
	},
	StateInProgress: {
		StateForReview,
		StateOpen,
	},
	StateForReview: {
		StateInProgress,
		StateApproved,
	},
	StateApproved: {
		StatePublished,
	},
	StatePublished: {},
}

// AllTicketStates returns the states in pipeline order.
func AllTicketStates() []TicketState {
	states := make([]TicketState, len(allTicketStates))
	copy(states, allTicketStates)
	return states
}

func (s TicketState) String() string {
	return string(s)
}

func (s TicketState) IsValid() bool {
	_, ok := ticketStateTransitions[s]
	return ok
}

func (s TicketState) CanTransitionTo(target TicketState) bool {
	for _, allowed := range ticketStateTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the states reachable from s in one step.
func (s TicketState) AllowedTargets() []TicketState {
	targets := ticketStateTransitions[s]
	result := make([]TicketState, len(targets))
	copy(result, targets)
	return result
}

func (s TicketState) IsTerminal() bool {
	return s.IsValid() && len(ticketStateTransitions[s]) == 0
}

func (s TicketState) IsOpen() bool {
	return s == StateOpen
}

func (s TicketState) IsInProgress() bool {
	return s == StateInProgress
}

func (s TicketState) IsForReview() bool {
	return s == StateForReview
}

func (s TicketState) IsApproved() bool {
	return s == StateApproved
}

func (s TicketState) IsPublished() bool {
	return s == StatePublished
}

func NewTicketState(s string) (TicketState, error) {
	state := TicketState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid ticket state: %s", s)
	}
	return state, nil
}
