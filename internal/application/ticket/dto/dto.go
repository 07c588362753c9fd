package dto

import (
	"time"

	"redsys/internal/domain/ticket"
)

// TicketDTO is the ticket view returned by reads and transitions.
type TicketDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	AssigneeID  *uint     `json:"assignee_id"`
	AuthorID    uint      `json:"author_id"`
	ArticleID   uint      `json:"article_id"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	Number    int       `json:"number"`
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		State:       t.State().String(),
		AssigneeID:  t.AssigneeID(),
		AuthorID:    t.AuthorID(),
		ArticleID:   t.ArticleID(),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// ToTicketListItem is ToTicketDTO shaped for mapper.MapSlice.
func ToTicketListItem(t *ticket.Ticket) TicketDTO {
	return *ToTicketDTO(t)
}

func ToCommentDTO(c *ticket.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		Number:    c.Number(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}
