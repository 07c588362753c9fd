package ticket

import "errors"

var (
	// ErrTicketNotFound indicates the ticket does not exist
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrVersionConflict indicates an optimistic locking conflict on the ticket row
	ErrVersionConflict = errors.New("version conflict: ticket was modified")

	// ErrIllegalTransition indicates the state pair is absent from the transition table
	ErrIllegalTransition = errors.New("ticket state transition not allowed")

	// ErrAlreadyAssigned indicates a claim on a ticket that already has an assignee
	ErrAlreadyAssigned = errors.New("ticket is already assigned")

	// ErrCommentNotFound indicates no live comment with the requested number exists
	ErrCommentNotFound = errors.New("ticket comment not found")

	// ErrCommentNumberTaken indicates a concurrent writer stored the same comment number
	ErrCommentNumberTaken = errors.New("ticket comment number already exists")
)
