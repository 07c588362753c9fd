package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"redsys/internal/domain/article"
	"redsys/internal/infrastructure/persistence/mappers"
	"redsys/internal/infrastructure/persistence/models"
	"redsys/internal/shared/biztime"
	"redsys/internal/shared/db"
	"redsys/internal/shared/mapper"
	"redsys/internal/shared/utils"
)

type ArticleRepository struct {
	db     *gorm.DB
	mapper mappers.ArticleMapper
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{
		db:     db,
		mapper: mappers.NewArticleMapper(),
	}
}

var _ article.Repository = (*ArticleRepository)(nil)

func (r *ArticleRepository) Create(ctx context.Context, a *article.Article) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return a.SetID(model.ID)
}

// Update writes a only if the stored token still equals a.Version(), then
// advances the token on a. A stale token yields article.ErrVersionConflict.
func (r *ArticleRepository) Update(ctx context.Context, a *article.Article) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ArticleModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"title":        model.Title,
			"state":        model.State,
			"published_at": model.PublishedAt,
			"editor_id":    model.EditorID,
			"category_ids": model.CategoryIDs,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return article.ErrVersionConflict
	}

	a.AdvanceVersion()
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id uint) (*article.Article, error) {
	var model models.ArticleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, article.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List filters on the JSON category set, so it needs MySQL or SQLite.
func (r *ArticleRepository) List(ctx context.Context, filter article.ListFilter) ([]*article.Article, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ArticleModel{})

	if filter.CategoryID != nil {
		query = query.Where(datatypes.JSONArrayQuery("category_ids").Contains(*filter.CategoryID))
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	page := utils.NormalizePagination(filter.Page, filter.PageSize)
	var rows []*models.ArticleModel
	err := query.
		Order("id DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	articles, err := mapper.MapSliceErr(rows, r.mapper.ToEntity)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}
