package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"redsys/internal/application/ticket/usecases"
	workflowusecases "redsys/internal/application/workflow/usecases"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/utils"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	ArticleID   uint   `json:"article_id" binding:"required"`
	AssigneeID  *uint  `json:"assignee_id,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(actor workflow.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		ArticleID:   r.ArticleID,
		AssigneeID:  r.AssigneeID,
		Actor:       actor,
	}
}

type TransitionTicketRequest struct {
	TargetState string `json:"target_state" binding:"required,ticket_state" example:"for_review"`
	Comment     string `json:"comment" binding:"max=5000"`
}

func (r *TransitionTicketRequest) ToCommand(ticketID uint, actor workflow.Actor) workflowusecases.TransitionTicketCommand {
	return workflowusecases.TransitionTicketCommand{
		TicketID:    ticketID,
		TargetState: r.TargetState,
		Comment:     r.Comment,
		Actor:       actor,
	}
}

// CommentRequest carries the text of a new or edited comment. The max is in
// characters and matches ticket.MaxCommentLength.
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

func (r *CommentRequest) ToAddCommand(ticketID uint, actor workflow.Actor) usecases.AddTicketCommentCommand {
	return usecases.AddTicketCommentCommand{
		TicketID: ticketID,
		Content:  r.Content,
		Actor:    actor,
	}
}

func (r *CommentRequest) ToUpdateCommand(ticketID uint, number int, actor workflow.Actor) usecases.UpdateTicketCommentCommand {
	return usecases.UpdateTicketCommentCommand{
		TicketID: ticketID,
		Number:   number,
		Content:  r.Content,
		Actor:    actor,
	}
}

// ListTicketsRequest holds the optional filters of GET /api/tickets.
type ListTicketsRequest struct {
	State      string `form:"state" binding:"omitempty,ticket_state"`
	AssigneeID *uint  `form:"assignee_id" binding:"omitempty,min=1"`
	ArticleID  *uint  `form:"article_id" binding:"omitempty,min=1"`
}

func (r *ListTicketsRequest) ToQuery(p utils.Pagination, actor workflow.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		State:      r.State,
		AssigneeID: r.AssigneeID,
		ArticleID:  r.ArticleID,
		Page:       p.Page,
		PageSize:   p.PageSize,
		Actor:      actor,
	}
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}

func parseCommentNumber(c *gin.Context) (int, error) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		return 0, errors.NewValidationError("Invalid comment number")
	}
	return number, nil
}
