package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"redsys/internal/application/ticket/dto"
	"redsys/internal/domain/ticket"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/mapper"
)

type ListTicketCommentsQuery struct {
	TicketID uint
	Page     int
	PageSize int
	Actor    workflow.Actor
}

type ListTicketCommentsResult struct {
	Comments []dto.CommentDTO
	Total    int64
}

type ListTicketCommentsUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewListTicketCommentsUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	logger logger.Interface,
) *ListTicketCommentsUseCase {
	return &ListTicketCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// Execute lists comments of a ticket, highest number first.
func (uc *ListTicketCommentsUseCase) Execute(ctx context.Context, query ListTicketCommentsQuery) (*ListTicketCommentsResult, error) {
	if !canViewTickets(query.Actor) {
		return nil, errors.NewForbiddenError("not allowed to view ticket comments")
	}

	if _, err := uc.ticketRepo.GetByID(ctx, query.TicketID); err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
		}
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}

	comments, total, err := uc.commentRepo.ListByTicket(ctx, query.TicketID, ticket.CommentFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list ticket comments", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}

	return &ListTicketCommentsResult{
		Comments: mapper.MapSlice(comments, dto.ToCommentDTO),
		Total:    total,
	}, nil
}
