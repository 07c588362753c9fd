package usecases

import (
	"context"

	"redsys/internal/application/article/dto"
	"redsys/internal/domain/article"
	articlevo "redsys/internal/domain/article/valueobjects"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/mapper"
)

type ListArticlesQuery struct {
	CategoryID *uint
	State      string
	Page       int
	PageSize   int
}

type ListArticlesResult struct {
	Articles []dto.ArticleDTO
	Total    int64
}

type ListArticlesUseCase struct {
	articleRepo article.Repository
	logger      logger.Interface
}

func NewListArticlesUseCase(articleRepo article.Repository, logger logger.Interface) *ListArticlesUseCase {
	return &ListArticlesUseCase{
		articleRepo: articleRepo,
		logger:      logger,
	}
}

// Execute lists articles newest first, optionally narrowed to one category
// or state.
func (uc *ListArticlesUseCase) Execute(ctx context.Context, query ListArticlesQuery) (*ListArticlesResult, error) {
	filter := article.ListFilter{
		CategoryID: query.CategoryID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.State != "" {
		state, err := articlevo.NewArticleState(query.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = state
	}

	articles, total, err := uc.articleRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list articles", "error", err)
		return nil, errors.NewInternalError("failed to list articles")
	}

	return &ListArticlesResult{
		Articles: mapper.MapSlice(articles, dto.ToArticleListItem),
		Total:    total,
	}, nil
}
