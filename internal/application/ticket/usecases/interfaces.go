package usecases

import (
	"context"

	"redsys/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketCommentsExecutor interface {
	Execute(ctx context.Context, query ListTicketCommentsQuery) (*ListTicketCommentsResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type AddTicketCommentExecutor interface {
	Execute(ctx context.Context, cmd AddTicketCommentCommand) (*dto.CommentDTO, error)
}

type UpdateTicketCommentExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommentCommand) (*dto.CommentDTO, error)
}

type DeleteTicketCommentExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommentCommand) error
}
