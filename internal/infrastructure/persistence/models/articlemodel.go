package models

import (
	"time"

	"gorm.io/datatypes"

	"redsys/internal/shared/constants"
)

type ArticleModel struct {
	ID          uint   `gorm:"primarykey"`
	Title       string `gorm:"not null;size:255"`
	State       string `gorm:"not null;size:20;index"`
	PublishedAt *time.Time
	AuthorID    uint  `gorm:"not null;index"`
	EditorID    *uint `gorm:"index"`
	CategoryIDs datatypes.JSONSlice[uint]
	// Version is the compare-and-swap token checked on every update.
	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ArticleModel) TableName() string {
	return constants.TableArticles
}

// ArticleVersionModel rows are insert-only. The composite unique index
// rejects a second writer that computed the same number.
type ArticleVersionModel struct {
	ID        uint   `gorm:"primarykey"`
	ArticleID uint   `gorm:"not null;uniqueIndex:idx_article_version_number,priority:1"`
	Number    int    `gorm:"not null;uniqueIndex:idx_article_version_number,priority:2"`
	Content   string `gorm:"type:longtext;not null"`
	CreatedBy uint   `gorm:"not null"`
	CreatedAt time.Time
}

func (ArticleVersionModel) TableName() string {
	return constants.TableArticleVersions
}
