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
)

type GetTicketQuery struct {
	TicketID uint
	Actor    workflow.Actor
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if !canViewTickets(query.Actor) {
		return nil, errors.NewForbiddenError("not allowed to view tickets")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, query.TicketID)
	if err != nil {
		return nil, err
	}

	return dto.ToTicketDTO(t), nil
}

func loadTicket(ctx context.Context, repo ticket.Repository, log logger.Interface, id uint) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
		}
		log.Errorw("failed to get ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	return t, nil
}
