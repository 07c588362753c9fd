package usecases

import (
	"context"

	"redsys/internal/application/article/dto"
	"redsys/internal/domain/article"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/services/markdown"
)

type GetArticleVersionQuery struct {
	ArticleID     uint
	VersionNumber int
	Actor         workflow.Actor
}

type GetArticleVersionUseCase struct {
	articleRepo  article.Repository
	versionStore *VersionStore
	renderer     markdown.Renderer
	logger       logger.Interface
}

func NewGetArticleVersionUseCase(
	articleRepo article.Repository,
	versionStore *VersionStore,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetArticleVersionUseCase {
	return &GetArticleVersionUseCase{
		articleRepo:  articleRepo,
		versionStore: versionStore,
		renderer:     renderer,
		logger:       logger,
	}
}

func (uc *GetArticleVersionUseCase) Execute(ctx context.Context, query GetArticleVersionQuery) (*dto.ArticleVersionDTO, error) {
	if query.VersionNumber < 1 {
		return nil, errors.NewValidationError("version number must be at least 1")
	}

	a, err := loadArticle(ctx, uc.articleRepo, uc.logger, query.ArticleID)
	if err != nil {
		return nil, err
	}

	v, err := uc.versionStore.GetVersion(ctx, a, query.VersionNumber, query.Actor)
	if err != nil {
		return nil, err
	}

	html, err := uc.renderer.Render(v.Content())
	if err != nil {
		uc.logger.Warnw("failed to render article version", "article_id", a.ID(), "version_number", v.Number(), "error", err)
		html = ""
	}

	return dto.ToArticleVersionDTO(v, html), nil
}
