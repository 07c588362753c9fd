package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	articleusecases "redsys/internal/application/article/usecases"
	"redsys/internal/application/common"
	ticketdto "redsys/internal/application/ticket/dto"
	"redsys/internal/domain/article"
	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/biztime"
	"redsys/internal/shared/db"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
)

// maxConflictRetries bounds how often a transition is replayed after a
// concurrent write was detected.
const maxConflictRetries = 1

type TransitionTicketCommand struct {
	TicketID    uint
	TargetState string
	Comment     string
	Actor       workflow.Actor
}

// TransitionTicketUseCase moves a ticket through the editorial pipeline and
// keeps its article, the version history and the audit comments in step.
type TransitionTicketUseCase struct {
	ticketRepo   ticket.Repository
	commentRepo  ticket.CommentRepository
	articleRepo  article.Repository
	versionRepo  article.VersionRepository
	snapshotter  articleusecases.Snapshotter
	stateMachine *workflow.StateMachine
	locker       lock.Locker
	txMgr        db.Transactor
	logger       logger.Interface
}

func NewTransitionTicketUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	articleRepo article.Repository,
	versionRepo article.VersionRepository,
	snapshotter articleusecases.Snapshotter,
	stateMachine *workflow.StateMachine,
	locker lock.Locker,
	txMgr db.Transactor,
	logger logger.Interface,
) *TransitionTicketUseCase {
	return &TransitionTicketUseCase{
		ticketRepo:   ticketRepo,
		commentRepo:  commentRepo,
		articleRepo:  articleRepo,
		versionRepo:  versionRepo,
		snapshotter:  snapshotter,
		stateMachine: stateMachine,
		locker:       locker,
		txMgr:        txMgr,
		logger:       logger,
	}
}

// Execute applies one transition. Article side effects, the ticket update and
// the optional comment commit together or not at all. A conflict is replayed
// once on fresh data before it is returned.
func (uc *TransitionTicketUseCase) Execute(ctx context.Context, cmd TransitionTicketCommand) (*ticketdto.TicketDTO, error) {
	uc.logger.Infow("executing transition ticket use case",
		"ticket_id", cmd.TicketID,
		"target_state", cmd.TargetState,
		"user_id", cmd.Actor.ID,
	)

	target, err := ticketvo.NewTicketState(cmd.TargetState)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !ticket.IsBlankComment(cmd.Comment) {
		if err := ticket.ValidateCommentContent(strings.TrimSpace(cmd.Comment)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	var t *ticket.Ticket
	for attempt := 0; ; attempt++ {
		t, err = uc.transition(ctx, cmd, target)
		if err == nil || !errors.IsConflictError(err) || attempt >= maxConflictRetries {
			break
		}
		uc.logger.Warnw("transition hit a concurrent write, retrying",
			"ticket_id", cmd.TicketID,
			"target_state", target,
			"attempt", attempt+1,
		)
	}
	if err != nil {
		return nil, err
	}

	return ticketdto.ToTicketDTO(t), nil
}

func (uc *TransitionTicketUseCase) transition(
	ctx context.Context,
	cmd TransitionTicketCommand,
	target ticketvo.TicketState,
) (*ticket.Ticket, error) {
	t, err := uc.loadTicket(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.loadArticle(ctx, t.ArticleID()); err != nil {
		return nil, err
	}
	if t.State() == target {
		uc.logger.Infow("ticket already in target state", "ticket_id", t.ID(), "state", target)
		return t, nil
	}

	ticketKey := lock.TicketKey(t.ID())
	lockedCtx, release, err := lock.AcquireAll(ctx, uc.locker, ticketKey, lock.ArticleKey(t.ArticleID()))
	if err != nil {
		return nil, common.LockError(err, ticketKey)
	}
	defer release()

	err = uc.txMgr.RunInTransaction(lockedCtx, func(txCtx context.Context) error {
		t, err = uc.loadTicket(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		a, err := uc.loadArticle(txCtx, t.ArticleID())
		if err != nil {
			return err
		}
		if t.State() == target {
			return nil
		}

		if err := uc.stateMachine.Validate(t, target, cmd.Actor); err != nil {
			return uc.mapValidateError(t, target, cmd.Actor, err)
		}

		from := t.State()
		effects := workflow.PlanSideEffects(t, target, cmd.Actor)
		if err := uc.applyArticleEffects(txCtx, a, effects, cmd.Actor); err != nil {
			return err
		}

		if effects.ClaimTicket {
			if err := t.ClaimBy(cmd.Actor.ID); err != nil {
				return errors.NewConflictError("ticket was claimed concurrently")
			}
			uc.logger.Infow("ticket claimed", "ticket_id", t.ID(), "assignee_id", cmd.Actor.ID)
		}

		if err := t.ChangeState(target); err != nil {
			return errors.NewInvalidTransitionError(err.Error())
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			if stderrors.Is(err, ticket.ErrVersionConflict) {
				return errors.NewConflictError("ticket was modified concurrently")
			}
			uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
			return errors.NewInternalError("failed to update ticket")
		}

		if err := uc.appendComment(txCtx, t, cmd.Comment, cmd.Actor); err != nil {
			return err
		}

		uc.logger.Infow("ticket transitioned successfully",
			"ticket_id", t.ID(),
			"from_state", from,
			"to_state", target,
			"user_id", cmd.Actor.ID,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (uc *TransitionTicketUseCase) applyArticleEffects(
	ctx context.Context,
	a *article.Article,
	effects workflow.SideEffects,
	actor workflow.Actor,
) error {
	if !effects.TouchesArticle() {
		return nil
	}

	switch effects.Article {
	case workflow.ArticleToDraft:
		a.ReturnToDraft()
	case workflow.ArticleToReview:
		a.SubmitForReview()
	case workflow.ArticleToPublished:
		a.Publish(biztime.NowUTC())
	}

	if effects.Article != workflow.ArticleUnchanged {
		if err := uc.articleRepo.Update(ctx, a); err != nil {
			if stderrors.Is(err, article.ErrVersionConflict) {
				return errors.NewConflictError("article was modified concurrently")
			}
			uc.logger.Errorw("failed to update article", "article_id", a.ID(), "error", err)
			return errors.NewInternalError("failed to update article")
		}
		uc.logger.Infow("article state synchronized", "article_id", a.ID(), "article_state", a.State())
	}

	if !effects.Snapshot {
		return nil
	}

	latest, err := uc.versionRepo.GetLatest(ctx, a.ID())
	if err != nil {
		if stderrors.Is(err, article.ErrNoVersions) {
			uc.logger.Errorw("invariant violated: article has no versions", "article_id", a.ID())
			return errors.NewInvariantViolationError("article has no versions", fmt.Sprintf("article_id=%d", a.ID()))
		}
		uc.logger.Errorw("failed to get latest article version", "article_id", a.ID(), "error", err)
		return errors.NewInternalError("failed to snapshot article")
	}

	v, created, err := uc.snapshotter.CreateIfChanged(ctx, a, latest.Content(), actor)
	if err != nil {
		return err
	}
	if !created {
		uc.logger.Debugw("article content unchanged, no snapshot written", "article_id", a.ID(), "version_number", v.Number())
	}
	return nil
}

// appendComment stores the trimmed text as written; escaping is left to
// whatever renders it.
func (uc *TransitionTicketUseCase) appendComment(ctx context.Context, t *ticket.Ticket, content string, actor workflow.Actor) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	number, err := uc.commentRepo.NextNumber(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to allocate comment number", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to add comment")
	}

	c, err := ticket.NewComment(t.ID(), number, actor.ID, content)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Create(ctx, c); err != nil {
		if stderrors.Is(err, ticket.ErrCommentNumberTaken) {
			return errors.NewConflictError("comment was written concurrently")
		}
		uc.logger.Errorw("failed to create comment", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to add comment")
	}

	if err := t.AddComment(c); err != nil {
		return errors.NewInternalError(err.Error())
	}
	uc.logger.Infow("ticket comment added", "ticket_id", t.ID(), "comment_number", c.Number())
	return nil
}

func (uc *TransitionTicketUseCase) mapValidateError(
	t *ticket.Ticket,
	target ticketvo.TicketState,
	actor workflow.Actor,
	err error,
) error {
	switch {
	case stderrors.Is(err, workflow.ErrInvalidTransition):
		uc.logger.Warnw("invalid ticket transition", "ticket_id", t.ID(), "from_state", t.State(), "to_state", target)
		return errors.NewInvalidTransitionError(
			fmt.Sprintf("cannot move ticket from %s to %s", t.State(), target),
		)
	case stderrors.Is(err, workflow.ErrForbidden):
		uc.logger.Warnw("ticket transition denied",
			"ticket_id", t.ID(),
			"to_state", target,
			"user_id", actor.ID,
			"role", actor.Role,
		)
		return errors.NewForbiddenError(fmt.Sprintf("not allowed to move ticket to %s", target))
	default:
		uc.logger.Errorw("failed to check transition permissions", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to check permissions")
	}
}

func (uc *TransitionTicketUseCase) loadTicket(ctx context.Context, id uint) (*ticket.Ticket, error) {
	t, err := uc.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
		}
		uc.logger.Errorw("failed to get ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	return t, nil
}

func (uc *TransitionTicketUseCase) loadArticle(ctx context.Context, id uint) (*article.Article, error) {
	a, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, article.ErrArticleNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("article %d not found", id))
		}
		uc.logger.Errorw("failed to get article", "article_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get article")
	}
	return a, nil
}
