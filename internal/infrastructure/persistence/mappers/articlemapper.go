package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"redsys/internal/domain/article"
	vo "redsys/internal/domain/article/valueobjects"
	"redsys/internal/infrastructure/persistence/models"
)

// ArticleMapper handles the conversion between article entities, their
// versions and persistence models.
type ArticleMapper interface {
	ToModel(a *article.Article) *models.ArticleModel
	ToEntity(model *models.ArticleModel) (*article.Article, error)
	VersionToModel(v *article.ArticleVersion) *models.ArticleVersionModel
	VersionToEntity(model *models.ArticleVersionModel) (*article.ArticleVersion, error)
}

type ArticleMapperImpl struct{}

func NewArticleMapper() ArticleMapper {
	return &ArticleMapperImpl{}
}

func (m *ArticleMapperImpl) ToModel(a *article.Article) *models.ArticleModel {
	return &models.ArticleModel{
		ID:          a.ID(),
		Title:       a.Title(),
		State:       a.State().String(),
		PublishedAt: a.PublishedAt(),
		AuthorID:    a.AuthorID(),
		EditorID:    a.EditorID(),
		CategoryIDs: datatypes.JSONSlice[uint](a.CategoryIDs()),
		Version:     a.Version(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func (m *ArticleMapperImpl) ToEntity(model *models.ArticleModel) (*article.Article, error) {
	state, err := vo.NewArticleState(model.State)
	if err != nil {
		return nil, fmt.Errorf("failed to map article %d: %w", model.ID, err)
	}

	return article.ReconstructArticle(
		model.ID,
		model.Title,
		state,
		model.PublishedAt,
		model.AuthorID,
		model.EditorID,
		[]uint(model.CategoryIDs),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ArticleMapperImpl) VersionToModel(v *article.ArticleVersion) *models.ArticleVersionModel {
	return &models.ArticleVersionModel{
		ID:        v.ID(),
		ArticleID: v.ArticleID(),
		Number:    v.Number(),
		Content:   v.Content(),
		CreatedBy: v.CreatedBy(),
		CreatedAt: v.CreatedAt(),
	}
}

func (m *ArticleMapperImpl) VersionToEntity(model *models.ArticleVersionModel) (*article.ArticleVersion, error) {
	return article.ReconstructArticleVersion(
		model.ID,
		model.ArticleID,
		model.Number,
		model.Content,
		model.CreatedBy,
		model.CreatedAt,
	)
}
