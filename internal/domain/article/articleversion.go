package article

import (
	"fmt"
	"time"

	"redsys/internal/shared/biztime"
)

// ArticleVersion is an immutable snapshot of an article body. Numbers start
// at 1 and grow by exactly one per article.
type ArticleVersion struct {
	id        uint
	articleID uint
	number    int
	content   string
	createdBy uint
	createdAt time.Time
}

func NewArticleVersion(articleID uint, number int, content string, createdBy uint) (*ArticleVersion, error) {
	if articleID == 0 {
		return nil, fmt.Errorf("article ID is required")
	}
	if number < 1 {
		return nil, fmt.Errorf("version number must be at least 1, got %d", number)
	}
	if createdBy == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &ArticleVersion{
		articleID: articleID,
		number:    number,
		content:   content,
		createdBy: createdBy,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructArticleVersion(
	id uint,
	articleID uint,
	number int,
	content string,
	createdBy uint,
	createdAt time.Time,
) (*ArticleVersion, error) {
	if id == 0 {
		return nil, fmt.Errorf("article version ID cannot be zero")
	}
	if number < 1 {
		return nil, fmt.Errorf("invalid version number: %d", number)
	}

	return &ArticleVersion{
		id:        id,
		articleID: articleID,
		number:    number,
		content:   content,
		createdBy: createdBy,
		createdAt: createdAt,
	}, nil
}

// Next builds the successor version carrying newContent.
func (v *ArticleVersion) Next(content string, createdBy uint) (*ArticleVersion, error) {
	return NewArticleVersion(v.articleID, v.number+1, content, createdBy)
}

// HasContent compares byte for byte.
func (v *ArticleVersion) HasContent(content string) bool {
	return v.content == content
}

func (v *ArticleVersion) ID() uint {
	return v.id
}

func (v *ArticleVersion) ArticleID() uint {
	return v.articleID
}

func (v *ArticleVersion) Number() int {
	return v.number
}

func (v *ArticleVersion) Content() string {
	return v.content
}

func (v *ArticleVersion) CreatedBy() uint {
	return v.createdBy
}

func (v *ArticleVersion) CreatedAt() time.Time {
	return v.createdAt
}

func (v *ArticleVersion) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("article version ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("article version ID cannot be zero")
	}
	v.id = id
	return nil
}
