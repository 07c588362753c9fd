package usecases

import (
	"context"

	"redsys/internal/application/article/dto"
	"redsys/internal/domain/article"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/db"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
)

type CreateArticleCommand struct {
	Title       string
	Content     string
	EditorID    *uint
	CategoryIDs []uint
	Actor       workflow.Actor
}

type CreateArticleUseCase struct {
	articleRepo  article.Repository
	versionStore *VersionStore
	txMgr        db.Transactor
	logger       logger.Interface
}

func NewCreateArticleUseCase(
	articleRepo article.Repository,
	versionStore *VersionStore,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateArticleUseCase {
	return &CreateArticleUseCase{
		articleRepo:  articleRepo,
		versionStore: versionStore,
		txMgr:        txMgr,
		logger:       logger,
	}
}

// Execute stores the article together with version 1 of its content.
func (uc *CreateArticleUseCase) Execute(ctx context.Context, cmd CreateArticleCommand) (*dto.ArticleDTO, error) {
	uc.logger.Infow("executing create article use case", "user_id", cmd.Actor.ID, "title", cmd.Title)

	if !hasRole(cmd.Actor, uservo.RoleChiefEditor, uservo.RoleEditor) {
		uc.logger.Warnw("create article denied", "user_id", cmd.Actor.ID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("not allowed to create articles")
	}

	a, err := article.NewArticle(cmd.Title, cmd.Actor.ID, cmd.EditorID, cmd.CategoryIDs)
	if err != nil {
		uc.logger.Errorw("invalid article data", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	var initial *article.ArticleVersion
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.articleRepo.Create(txCtx, a); err != nil {
			uc.logger.Errorw("failed to create article", "error", err)
			return errors.NewInternalError("failed to create article")
		}

		v, err := uc.versionStore.CreateInitialVersion(txCtx, a, cmd.Content, cmd.Actor)
		if err != nil {
			return err
		}
		initial = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("article created successfully", "article_id", a.ID(), "user_id", cmd.Actor.ID)
	return dto.ToArticleDTO(a, initial), nil
}

// hasRole reports whether actor is an admin or has one of roles.
func hasRole(actor workflow.Actor, roles ...uservo.Role) bool {
	if actor.IsAdmin() {
		return true
	}
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}
