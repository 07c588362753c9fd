package usecases

import (
	"context"

	"redsys/internal/application/article/dto"
	"redsys/internal/domain/article"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/mapper"
)

type ListArticleVersionsQuery struct {
	ArticleID uint
	Page      int
	PageSize  int
	Actor     workflow.Actor
}

type ListArticleVersionsResult struct {
	Versions []dto.ArticleVersionSummaryDTO
	Total    int64
}

type ListArticleVersionsUseCase struct {
	articleRepo  article.Repository
	versionStore *VersionStore
	logger       logger.Interface
}

func NewListArticleVersionsUseCase(
	articleRepo article.Repository,
	versionStore *VersionStore,
	logger logger.Interface,
) *ListArticleVersionsUseCase {
	return &ListArticleVersionsUseCase{
		articleRepo:  articleRepo,
		versionStore: versionStore,
		logger:       logger,
	}
}

func (uc *ListArticleVersionsUseCase) Execute(ctx context.Context, query ListArticleVersionsQuery) (*ListArticleVersionsResult, error) {
	a, err := loadArticle(ctx, uc.articleRepo, uc.logger, query.ArticleID)
	if err != nil {
		return nil, err
	}

	versions, total, err := uc.versionStore.ListVersions(ctx, a, article.VersionFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}, query.Actor)
	if err != nil {
		return nil, err
	}

	return &ListArticleVersionsResult{
		Versions: mapper.MapSlice(versions, dto.ToArticleVersionSummaryDTO),
		Total:    total,
	}, nil
}
