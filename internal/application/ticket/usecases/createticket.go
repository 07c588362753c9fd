package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"redsys/internal/application/ticket/dto"
	"redsys/internal/domain/article"
	"redsys/internal/domain/ticket"
	"redsys/internal/domain/user"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	ArticleID   uint
	AssigneeID  *uint
	Actor       workflow.Actor
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.Repository
	articleRepo article.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	articleRepo article.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Execute opens a ticket for an existing article. Tickets always start OPEN.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "article_id", cmd.ArticleID, "user_id", cmd.Actor.ID)

	if !cmd.Actor.IsAdmin() && cmd.Actor.Role != uservo.RoleChiefEditor {
		uc.logger.Warnw("create ticket denied", "user_id", cmd.Actor.ID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("not allowed to create tickets")
	}

	if _, err := uc.articleRepo.GetByID(ctx, cmd.ArticleID); err != nil {
		if stderrors.Is(err, article.ErrArticleNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("article %d not found", cmd.ArticleID))
		}
		uc.logger.Errorw("failed to get article", "article_id", cmd.ArticleID, "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	if cmd.AssigneeID != nil && *cmd.AssigneeID != 0 {
		if err := uc.checkAssignee(ctx, *cmd.AssigneeID); err != nil {
			return nil, err
		}
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, cmd.Actor.ID, cmd.ArticleID, cmd.AssigneeID)
	if err != nil {
		uc.logger.Errorw("invalid ticket data", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "article_id", t.ArticleID())
	return dto.ToTicketDTO(t), nil
}

func (uc *CreateTicketUseCase) checkAssignee(ctx context.Context, assigneeID uint) error {
	assignee, err := uc.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return errors.NewValidationError(fmt.Sprintf("assignee %d does not exist", assigneeID))
		}
		uc.logger.Errorw("failed to get assignee", "assignee_id", assigneeID, "error", err)
		return errors.NewInternalError("failed to create ticket")
	}
	if !assignee.IsActive() {
		return errors.NewValidationError(fmt.Sprintf("assignee %d is not active", assigneeID))
	}
	return nil
}
