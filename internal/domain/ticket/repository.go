package ticket

import (
	"context"

	vo "redsys/internal/domain/ticket/valueobjects"
)

type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	// Update persists state and assignee if the stored version still matches
	// and returns ErrVersionConflict otherwise.
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// List returns tickets newest first.
	List(ctx context.Context, filter ListFilter) ([]*Ticket, int64, error)
}

// ListFilter narrows a ticket listing. Zero values match everything.
type ListFilter struct {
	State      vo.TicketState
	AssigneeID *uint
	ArticleID  *uint
	Page       int
	PageSize   int
}

type CommentRepository interface {
	// NextNumber locks the ticket row for the surrounding transaction and
	// returns max(number)+1, or 1 for a ticket without comments. Deleted
	// comments still count, so a number is never handed out twice.
	NextNumber(ctx context.Context, ticketID uint) (int, error)
	// Create returns ErrCommentNumberTaken when (ticket, number) already exists.
	Create(ctx context.Context, c *Comment) error
	GetByNumber(ctx context.Context, ticketID uint, number int) (*Comment, error)
	Update(ctx context.Context, c *Comment) error
	// Delete hides the comment; its number stays reserved.
	Delete(ctx context.Context, c *Comment) error
	// ListByTicket returns comments newest first.
	ListByTicket(ctx context.Context, ticketID uint, filter CommentFilter) ([]*Comment, int64, error)
}

type CommentFilter struct {
	Page     int
	PageSize int
}
