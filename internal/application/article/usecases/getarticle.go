package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"redsys/internal/application/article/dto"
	"redsys/internal/domain/article"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
)

type GetArticleQuery struct {
	ArticleID uint
}

type GetArticleUseCase struct {
	articleRepo article.Repository
	versionRepo article.VersionRepository
	logger      logger.Interface
}

func NewGetArticleUseCase(
	articleRepo article.Repository,
	versionRepo article.VersionRepository,
	logger logger.Interface,
) *GetArticleUseCase {
	return &GetArticleUseCase{
		articleRepo: articleRepo,
		versionRepo: versionRepo,
		logger:      logger,
	}
}

// Execute returns the article with the content of its latest version.
func (uc *GetArticleUseCase) Execute(ctx context.Context, query GetArticleQuery) (*dto.ArticleDTO, error) {
	a, err := loadArticle(ctx, uc.articleRepo, uc.logger, query.ArticleID)
	if err != nil {
		return nil, err
	}

	latest, err := uc.versionRepo.GetLatest(ctx, a.ID())
	if err != nil {
		if stderrors.Is(err, article.ErrNoVersions) {
			uc.logger.Errorw("invariant violated: article has no versions", "article_id", a.ID())
			return nil, errors.NewInvariantViolationError("article has no versions", fmt.Sprintf("article_id=%d", a.ID()))
		}
		uc.logger.Errorw("failed to get latest article version", "article_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get article")
	}

	return dto.ToArticleDTO(a, latest), nil
}

func loadArticle(ctx context.Context, repo article.Repository, log logger.Interface, id uint) (*article.Article, error) {
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, article.ErrArticleNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("article %d not found", id))
		}
		log.Errorw("failed to get article", "article_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get article")
	}
	return a, nil
}
