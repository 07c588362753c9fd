package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"redsys/internal/domain/article"
	"redsys/internal/infrastructure/persistence/mappers"
	"redsys/internal/infrastructure/persistence/models"
	"redsys/internal/shared/db"
	apperrors "redsys/internal/shared/errors"
	"redsys/internal/shared/mapper"
	"redsys/internal/shared/utils"
)

// versionSummaryColumns leaves out content, which can be large.
var versionSummaryColumns = []string{"id", "article_id", "number", "created_by", "created_at"}

type ArticleVersionRepository struct {
	db     *gorm.DB
	mapper mappers.ArticleMapper
}

func NewArticleVersionRepository(db *gorm.DB) *ArticleVersionRepository {
	return &ArticleVersionRepository{
		db:     db,
		mapper: mappers.NewArticleMapper(),
	}
}

var _ article.VersionRepository = (*ArticleVersionRepository)(nil)

func (r *ArticleVersionRepository) Create(ctx context.Context, v *article.ArticleVersion) error {
	model := r.mapper.VersionToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return article.ErrVersionNumberTaken
		}
		return fmt.Errorf("failed to create article version: %w", err)
	}

	return v.SetID(model.ID)
}

// GetLatestForUpdate reads the newest version under a row lock so that the
// next number is computed by one writer at a time. Must run in a transaction.
func (r *ArticleVersionRepository) GetLatestForUpdate(ctx context.Context, articleID uint) (*article.ArticleVersion, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.latest(tx.Clauses(clause.Locking{Strength: "UPDATE"}), articleID)
}

func (r *ArticleVersionRepository) GetLatest(ctx context.Context, articleID uint) (*article.ArticleVersion, error) {
	return r.latest(db.GetTxFromContext(ctx, r.db), articleID)
}

func (r *ArticleVersionRepository) latest(tx *gorm.DB, articleID uint) (*article.ArticleVersion, error) {
	var model models.ArticleVersionModel
	err := tx.
		Where("article_id = ?", articleID).
		Order("number DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, article.ErrNoVersions
		}
		return nil, fmt.Errorf("failed to get latest article version: %w", err)
	}

	return r.mapper.VersionToEntity(&model)
}

func (r *ArticleVersionRepository) GetByNumber(ctx context.Context, articleID uint, number int) (*article.ArticleVersion, error) {
	var model models.ArticleVersionModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("article_id = ? AND number = ?", articleID, number).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, article.ErrArticleVersionNotFound
		}
		return nil, fmt.Errorf("failed to get article version: %w", err)
	}

	return r.mapper.VersionToEntity(&model)
}

// ListByArticle returns one page of versions, highest number first, with
// empty content.
func (r *ArticleVersionRepository) ListByArticle(
	ctx context.Context,
	articleID uint,
	filter article.VersionFilter,
) ([]*article.ArticleVersion, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ArticleVersionModel{}).Where("article_id = ?", articleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count article versions: %w", err)
	}

	page := utils.NormalizePagination(filter.Page, filter.PageSize)
	var rows []*models.ArticleVersionModel
	err := query.
		Select(versionSummaryColumns).
		Order("number DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list article versions: %w", err)
	}

	versions, err := mapper.MapSliceErr(rows, r.mapper.VersionToEntity)
	if err != nil {
		return nil, 0, err
	}
	return versions, total, nil
}
