package usecases

import (
	"context"

	"redsys/internal/application/ticket/dto"
	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/mapper"
)

type ListTicketsQuery struct {
	State      string
	AssigneeID *uint
	ArticleID  *uint
	Page       int
	PageSize   int
	Actor      workflow.Actor
}

type ListTicketsResult struct {
	Tickets []dto.TicketDTO
	Total   int64
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute lists tickets, newest first. Empty filters match everything.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	if !canViewTickets(query.Actor) {
		return nil, errors.NewForbiddenError("not allowed to view tickets")
	}

	filter := ticket.ListFilter{
		AssigneeID: query.AssigneeID,
		ArticleID:  query.ArticleID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.State != "" {
		state, err := ticketvo.NewTicketState(query.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = state
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	return &ListTicketsResult{
		Tickets: mapper.MapSlice(tickets, dto.ToTicketListItem),
		Total:   total,
	}, nil
}
