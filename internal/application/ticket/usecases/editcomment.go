package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"redsys/internal/application/ticket/dto"
	"redsys/internal/domain/ticket"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
)

type UpdateTicketCommentCommand struct {
	TicketID uint
	Number   int
	Content  string
	Actor    workflow.Actor
}

type DeleteTicketCommentCommand struct {
	TicketID uint
	Number   int
	Actor    workflow.Actor
}

// UpdateTicketCommentUseCase rewrites the text of a comment. Only its author
// or an admin may do so.
type UpdateTicketCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewUpdateTicketCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	logger logger.Interface,
) *UpdateTicketCommentUseCase {
	return &UpdateTicketCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *UpdateTicketCommentUseCase) Execute(ctx context.Context, cmd UpdateTicketCommentCommand) (*dto.CommentDTO, error) {
	content := strings.TrimSpace(cmd.Content)
	if err := ticket.ValidateCommentContent(content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	c, err := loadOwnComment(ctx, uc.ticketRepo, uc.commentRepo, uc.logger, cmd.TicketID, cmd.Number, cmd.Actor)
	if err != nil {
		return nil, err
	}

	if content == c.Content() {
		result := dto.ToCommentDTO(c)
		return &result, nil
	}

	if err := c.Edit(content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.commentRepo.Update(ctx, c); err != nil {
		if stderrors.Is(err, ticket.ErrCommentNotFound) {
			return nil, commentNotFound(cmd.TicketID, cmd.Number)
		}
		uc.logger.Errorw("failed to update comment", "ticket_id", cmd.TicketID, "comment_number", cmd.Number, "error", err)
		return nil, errors.NewInternalError("failed to update comment")
	}

	uc.logger.Infow("ticket comment updated",
		"ticket_id", cmd.TicketID,
		"comment_number", cmd.Number,
		"user_id", cmd.Actor.ID,
	)

	result := dto.ToCommentDTO(c)
	return &result, nil
}

// DeleteTicketCommentUseCase hides a comment. Its number is never handed out
// again.
type DeleteTicketCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewDeleteTicketCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	logger logger.Interface,
) *DeleteTicketCommentUseCase {
	return &DeleteTicketCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *DeleteTicketCommentUseCase) Execute(ctx context.Context, cmd DeleteTicketCommentCommand) error {
	c, err := loadOwnComment(ctx, uc.ticketRepo, uc.commentRepo, uc.logger, cmd.TicketID, cmd.Number, cmd.Actor)
	if err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(ctx, c); err != nil {
		if stderrors.Is(err, ticket.ErrCommentNotFound) {
			return commentNotFound(cmd.TicketID, cmd.Number)
		}
		uc.logger.Errorw("failed to delete comment", "ticket_id", cmd.TicketID, "comment_number", cmd.Number, "error", err)
		return errors.NewInternalError("failed to delete comment")
	}

	uc.logger.Infow("ticket comment deleted",
		"ticket_id", cmd.TicketID,
		"comment_number", cmd.Number,
		"user_id", cmd.Actor.ID,
	)
	return nil
}

func loadOwnComment(
	ctx context.Context,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	log logger.Interface,
	ticketID uint,
	number int,
	actor workflow.Actor,
) (*ticket.Comment, error) {
	if !canViewTickets(actor) {
		return nil, errors.NewForbiddenError("not allowed to change ticket comments")
	}
	if _, err := loadTicket(ctx, ticketRepo, log, ticketID); err != nil {
		return nil, err
	}

	c, err := commentRepo.GetByNumber(ctx, ticketID, number)
	if err != nil {
		if stderrors.Is(err, ticket.ErrCommentNotFound) {
			return nil, commentNotFound(ticketID, number)
		}
		log.Errorw("failed to get comment", "ticket_id", ticketID, "comment_number", number, "error", err)
		return nil, errors.NewInternalError("failed to get comment")
	}

	if !c.IsWrittenBy(actor.ID) && actor.Role != uservo.RoleAdmin {
		log.Warnw("comment change denied",
			"ticket_id", ticketID,
			"comment_number", number,
			"user_id", actor.ID,
		)
		return nil, errors.NewForbiddenError("only the author or an admin may change a comment")
	}
	return c, nil
}

func commentNotFound(ticketID uint, number int) error {
	return errors.NewNotFoundError(fmt.Sprintf("comment %d on ticket %d not found", number, ticketID))
}
