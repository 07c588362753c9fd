package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"redsys/internal/application/article/dto"
	"redsys/internal/application/common"
	"redsys/internal/domain/article"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/db"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
)

// UpdateArticleContentCommand carries the editable fields. The publication
// state is absent; only ticket transitions change it.
type UpdateArticleContentCommand struct {
	ArticleID   uint
	Title       string
	Content     string
	EditorID    *uint
	CategoryIDs []uint
	Actor       workflow.Actor
}

type UpdateArticleContentUseCase struct {
	articleRepo  article.Repository
	versionStore *VersionStore
	locker       lock.Locker
	txMgr        db.Transactor
	logger       logger.Interface
}

func NewUpdateArticleContentUseCase(
	articleRepo article.Repository,
	versionStore *VersionStore,
	locker lock.Locker,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateArticleContentUseCase {
	return &UpdateArticleContentUseCase{
		articleRepo:  articleRepo,
		versionStore: versionStore,
		locker:       locker,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *UpdateArticleContentUseCase) Execute(ctx context.Context, cmd UpdateArticleContentCommand) (*dto.ArticleDTO, error) {
	uc.logger.Infow("executing update article content use case", "article_id", cmd.ArticleID, "user_id", cmd.Actor.ID)

	if !hasRole(cmd.Actor, uservo.RoleChiefEditor, uservo.RoleEditor) {
		uc.logger.Warnw("update article denied", "article_id", cmd.ArticleID, "user_id", cmd.Actor.ID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("not allowed to edit articles")
	}

	key := lock.ArticleKey(cmd.ArticleID)
	lockedCtx, release, err := uc.locker.Acquire(ctx, key)
	if err != nil {
		return nil, common.LockError(err, key)
	}
	defer release()

	var (
		a      *article.Article
		latest *article.ArticleVersion
	)
	err = uc.txMgr.RunInTransaction(lockedCtx, func(txCtx context.Context) error {
		a, err = uc.articleRepo.GetByID(txCtx, cmd.ArticleID)
		if err != nil {
			return uc.mapLoadError(cmd.ArticleID, err)
		}

		if cmd.Actor.Role == uservo.RoleEditor && !a.IsEditedBy(cmd.Actor.ID) {
			uc.logger.Warnw("editor is not the article's editor", "article_id", a.ID(), "user_id", cmd.Actor.ID)
			return errors.NewForbiddenError("only the article's editor may change it")
		}

		if err := a.UpdateDetails(cmd.Title, cmd.EditorID, cmd.CategoryIDs); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.articleRepo.Update(txCtx, a); err != nil {
			if stderrors.Is(err, article.ErrVersionConflict) {
				return errors.NewConflictError("article was modified concurrently")
			}
			uc.logger.Errorw("failed to update article", "article_id", a.ID(), "error", err)
			return errors.NewInternalError("failed to update article")
		}

		latest, _, err = uc.versionStore.CreateIfChanged(txCtx, a, cmd.Content, cmd.Actor)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to update article content", "article_id", cmd.ArticleID, "error", err)
		return nil, err
	}

	uc.logger.Infow("article updated successfully", "article_id", a.ID(), "version_number", latest.Number())
	return dto.ToArticleDTO(a, latest), nil
}

func (uc *UpdateArticleContentUseCase) mapLoadError(articleID uint, err error) error {
	if stderrors.Is(err, article.ErrArticleNotFound) {
		return errors.NewNotFoundError(fmt.Sprintf("article %d not found", articleID))
	}
	uc.logger.Errorw("failed to get article", "article_id", articleID, "error", err)
	return errors.NewInternalError("failed to get article")
}
