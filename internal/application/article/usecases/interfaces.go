package usecases

import (
	"context"

	"redsys/internal/application/article/dto"
	"redsys/internal/domain/article"
	"redsys/internal/domain/workflow"
)

type CreateArticleExecutor interface {
	Execute(ctx context.Context, cmd CreateArticleCommand) (*dto.ArticleDTO, error)
}

type UpdateArticleContentExecutor interface {
	Execute(ctx context.Context, cmd UpdateArticleContentCommand) (*dto.ArticleDTO, error)
}

type GetArticleExecutor interface {
	Execute(ctx context.Context, query GetArticleQuery) (*dto.ArticleDTO, error)
}

type GetArticleVersionExecutor interface {
	Execute(ctx context.Context, query GetArticleVersionQuery) (*dto.ArticleVersionDTO, error)
}

type ListArticleVersionsExecutor interface {
	Execute(ctx context.Context, query ListArticleVersionsQuery) (*ListArticleVersionsResult, error)
}

// Snapshotter is the part of VersionStore the workflow needs.
type Snapshotter interface {
	CreateIfChanged(ctx context.Context, a *article.Article, content string, actor workflow.Actor) (*article.ArticleVersion, bool, error)
}

var _ Snapshotter = (*VersionStore)(nil)

type ListArticlesExecutor interface {
	Execute(ctx context.Context, query ListArticlesQuery) (*ListArticlesResult, error)
}
