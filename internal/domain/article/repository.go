package article

import (
	"context"

	vo "redsys/internal/domain/article/valueobjects"
)

type Repository interface {
	Create(ctx context.Context, a *Article) error
	// Update persists the article if its stored version still matches and
	// returns ErrVersionConflict otherwise.
	Update(ctx context.Context, a *Article) error
	GetByID(ctx context.Context, id uint) (*Article, error)
	// List returns articles newest first.
	List(ctx context.Context, filter ListFilter) ([]*Article, int64, error)
}

// ListFilter narrows an article listing. Zero values match everything.
type ListFilter struct {
	CategoryID *uint
	State      vo.ArticleState
	Page       int
	PageSize   int
}

type VersionRepository interface {
	// Create returns ErrVersionNumberTaken when (article, number) already exists.
	Create(ctx context.Context, v *ArticleVersion) error
	// GetLatestForUpdate returns the highest-numbered version and locks it for
	// the rest of the surrounding transaction.
	GetLatestForUpdate(ctx context.Context, articleID uint) (*ArticleVersion, error)
	// GetLatest is GetLatestForUpdate without the row lock, for reads.
	GetLatest(ctx context.Context, articleID uint) (*ArticleVersion, error)
	GetByNumber(ctx context.Context, articleID uint, number int) (*ArticleVersion, error)
	// ListByArticle returns versions without content, newest first.
	ListByArticle(ctx context.Context, articleID uint, filter VersionFilter) ([]*ArticleVersion, int64, error)
}

type VersionFilter struct {
	Page     int
	PageSize int
}
