package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"redsys/internal/application/common"
	"redsys/internal/application/ticket/dto"
	"redsys/internal/domain/ticket"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/db"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
)

type AddTicketCommentCommand struct {
	TicketID uint
	Content  string
	Actor    workflow.Actor
}

// AddTicketCommentUseCase appends a comment outside of a transition. It takes
// the same ticket lock as transitions so numbers stay consecutive.
type AddTicketCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	locker      lock.Locker
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewAddTicketCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	locker lock.Locker,
	txMgr db.Transactor,
	logger logger.Interface,
) *AddTicketCommentUseCase {
	return &AddTicketCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		locker:      locker,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *AddTicketCommentUseCase) Execute(ctx context.Context, cmd AddTicketCommentCommand) (*dto.CommentDTO, error) {
	if !canViewTickets(cmd.Actor) {
		return nil, errors.NewForbiddenError("not allowed to comment on tickets")
	}

	content := strings.TrimSpace(cmd.Content)
	if err := ticket.ValidateCommentContent(content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if _, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID); err != nil {
		return nil, err
	}

	key := lock.TicketKey(cmd.TicketID)
	lockedCtx, release, err := uc.locker.Acquire(ctx, key)
	if err != nil {
		return nil, common.LockError(err, key)
	}
	defer release()

	var created *ticket.Comment
	err = uc.txMgr.RunInTransaction(lockedCtx, func(txCtx context.Context) error {
		number, err := uc.commentRepo.NextNumber(txCtx, cmd.TicketID)
		if err != nil {
			uc.logger.Errorw("failed to allocate comment number", "ticket_id", cmd.TicketID, "error", err)
			return errors.NewInternalError("failed to add comment")
		}

		c, err := ticket.NewComment(cmd.TicketID, number, cmd.Actor.ID, content)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.commentRepo.Create(txCtx, c); err != nil {
			if stderrors.Is(err, ticket.ErrCommentNumberTaken) {
				return errors.NewConflictError("comment was written concurrently")
			}
			uc.logger.Errorw("failed to create comment", "ticket_id", cmd.TicketID, "error", err)
			return errors.NewInternalError("failed to add comment")
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("ticket comment added",
		"ticket_id", cmd.TicketID,
		"comment_number", created.Number(),
		"user_id", cmd.Actor.ID,
	)

	result := dto.ToCommentDTO(created)
	return &result, nil
}
