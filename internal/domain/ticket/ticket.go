package ticket

import (
	"fmt"
	"time"

	vo "redsys/internal/domain/ticket/valueobjects"
	"redsys/internal/shared/biztime"
)

// Ticket tracks one article through the editorial pipeline.
type Ticket struct {
	id          uint
	title       string
	description string
	state       vo.TicketState
	assigneeID  *uint
	authorID    uint
	articleID   uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	comments    []*Comment
}

func NewTicket(
	title string,
	description string,
	authorID uint,
	articleID uint,
	assigneeID *uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if articleID == 0 {
		return nil, fmt.Errorf("article ID is required")
	}
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		description: description,
		state:       vo.StateOpen,
		assigneeID:  assigneeID,
		authorID:    authorID,
		articleID:   articleID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		comments:    []*Comment{},
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	state vo.TicketState,
	assigneeID *uint,
	authorID uint,
	articleID uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid ticket state: %s", state)
	}
	if articleID == 0 {
		return nil, fmt.Errorf("article ID is required")
	}

	return &Ticket{
		id:          id,
		title:       title,
		description: description,
		state:       state,
		assigneeID:  assigneeID,
		authorID:    authorID,
		articleID:   articleID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		comments:    []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) State() vo.TicketState {
	return t.state
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) AuthorID() uint {
	return t.authorID
}

func (t *Ticket) ArticleID() uint {
	return t.articleID
}

// Version is the optimistic locking token.
func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Comments() []*Comment {
	commentsCopy := make([]*Comment, len(t.comments))
	copy(commentsCopy, t.comments)
	return commentsCopy
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AdvanceVersion is called by the repository after a successful write.
func (t *Ticket) AdvanceVersion() {
	t.version++
}

func (t *Ticket) IsUnassigned() bool {
	return t.assigneeID == nil
}

func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

// ClaimBy assigns an unassigned ticket to userID.
func (t *Ticket) ClaimBy(userID uint) error {
	if userID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if !t.IsUnassigned() {
		return ErrAlreadyAssigned
	}

	t.assigneeID = &userID
	t.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeState moves the ticket along the transition table. Authorization is
// the caller's concern.
func (t *Ticket) ChangeState(target vo.TicketState) error {
	if !target.IsValid() {
		return fmt.Errorf("invalid ticket state: %s", target)
	}
	if t.state == target {
		return nil
	}
	if !t.state.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.state, target)
	}

	t.state = target
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Ticket) AddComment(comment *Comment) error {
	if comment == nil {
		return fmt.Errorf("comment cannot be nil")
	}
	if comment.TicketID() != t.id {
		return fmt.Errorf("comment ticket ID mismatch")
	}

	t.comments = append(t.comments, comment)
	return nil
}
