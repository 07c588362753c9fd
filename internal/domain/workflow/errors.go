package workflow

import "errors"

var (
	// ErrInvalidTransition indicates the state pair is not in the transition table
	ErrInvalidTransition = errors.New("invalid ticket state transition")

	// ErrForbidden indicates the actor's role or relation to the ticket does not permit the action
	ErrForbidden = errors.New("action not permitted for actor")

	// ErrIncompleteMatrix indicates the permission data fails its startup check
	ErrIncompleteMatrix = errors.New("permission matrix is incomplete")
)
