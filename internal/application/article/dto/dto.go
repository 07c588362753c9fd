package dto

import (
	"time"

	"redsys/internal/domain/article"
)

type ArticleDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	State         string     `json:"state"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	AuthorID      uint       `json:"author_id"`
	EditorID      *uint      `json:"editor_id"`
	CategoryIDs   []uint     `json:"category_ids"`
	Content       string     `json:"content,omitempty"`
	VersionNumber int        `json:"version_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ArticleVersionDTO is the detail view of one version.
type ArticleVersionDTO struct {
	ID            uint      `json:"id"`
	ArticleID     uint      `json:"article_id"`
	VersionNumber int       `json:"version_number"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	CreatedBy     uint      `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ArticleVersionSummaryDTO is a list entry; content is left out.
type ArticleVersionSummaryDTO struct {
	ID            uint      `json:"id"`
	VersionNumber int       `json:"version_number"`
	CreatedBy     uint      `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToArticleDTO(a *article.Article, latest *article.ArticleVersion) *ArticleDTO {
	if a == nil {
		return nil
	}

	d := &ArticleDTO{
		ID:          a.ID(),
		Title:       a.Title(),
		State:       a.State().String(),
		PublishedAt: a.PublishedAt(),
		AuthorID:    a.AuthorID(),
		EditorID:    a.EditorID(),
		CategoryIDs: a.CategoryIDs(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
	if latest != nil {
		d.Content = latest.Content()
		d.VersionNumber = latest.Number()
	}
	return d
}

// ToArticleListItem leaves content out; lists never load versions.
func ToArticleListItem(a *article.Article) ArticleDTO {
	return *ToArticleDTO(a, nil)
}

func ToArticleVersionDTO(v *article.ArticleVersion, html string) *ArticleVersionDTO {
	return &ArticleVersionDTO{
		ID:            v.ID(),
		ArticleID:     v.ArticleID(),
		VersionNumber: v.Number(),
		Content:       v.Content(),
		ContentHTML:   html,
		CreatedBy:     v.CreatedBy(),
		CreatedAt:     v.CreatedAt(),
	}
}

func ToArticleVersionSummaryDTO(v *article.ArticleVersion) ArticleVersionSummaryDTO {
	return ArticleVersionSummaryDTO{
		ID:            v.ID(),
		VersionNumber: v.Number(),
		CreatedBy:     v.CreatedBy(),
		CreatedAt:     v.CreatedAt(),
	}
}
