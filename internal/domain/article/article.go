package article

import (
	"fmt"
	"time"

	vo "redsys/internal/domain/article/valueobjects"
	"redsys/internal/shared/biztime"
)

const maxTitleLength = 255

// Article is the publishable unit. Its body lives in the version history; the
// aggregate only carries metadata and the publication state.
type Article struct {
	id          uint
	title       string
	state       vo.ArticleState
	publishedAt *time.Time
	authorID    uint
	editorID    *uint
	categoryIDs []uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewArticle(title string, authorID uint, editorID *uint, categoryIDs []uint) (*Article, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	now := biztime.NowUTC()
	return &Article{
		title:       title,
		state:       vo.ArticleStateDraft,
		authorID:    authorID,
		editorID:    editorID,
		categoryIDs: dedupIDs(categoryIDs),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructArticle(
	id uint,
	title string,
	state vo.ArticleState,
	publishedAt *time.Time,
	authorID uint,
	editorID *uint,
	categoryIDs []uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Article, error) {
	if id == 0 {
		return nil, fmt.Errorf("article ID cannot be zero")
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid article state: %s", state)
	}
	if categoryIDs == nil {
		categoryIDs = []uint{}
	}

	return &Article{
		id:          id,
		title:       title,
		state:       state,
		publishedAt: publishedAt,
		authorID:    authorID,
		editorID:    editorID,
		categoryIDs: categoryIDs,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (a *Article) ID() uint {
	return a.id
}

func (a *Article) Title() string {
	return a.title
}

func (a *Article) State() vo.ArticleState {
	return a.state
}

func (a *Article) PublishedAt() *time.Time {
	return a.publishedAt
}

func (a *Article) AuthorID() uint {
	return a.authorID
}

func (a *Article) EditorID() *uint {
	return a.editorID
}

func (a *Article) CategoryIDs() []uint {
	ids := make([]uint, len(a.categoryIDs))
	copy(ids, a.categoryIDs)
	return ids
}

// Version is the optimistic locking token, not a content version number.
func (a *Article) Version() int {
	return a.version
}

func (a *Article) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Article) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Article) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("article ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("article ID cannot be zero")
	}
	a.id = id
	return nil
}

// AdvanceVersion is called by the repository after a successful write.
func (a *Article) AdvanceVersion() {
	a.version++
}

// IsEditedBy reports whether userID is the article's current editor.
func (a *Article) IsEditedBy(userID uint) bool {
	return a.editorID != nil && *a.editorID == userID
}

func (a *Article) ReturnToDraft() {
	a.setState(vo.ArticleStateDraft)
}

func (a *Article) SubmitForReview() {
	a.setState(vo.ArticleStateInReview)
}

func (a *Article) Publish(at time.Time) {
	a.state = vo.ArticleStatePublished
	published := at.UTC()
	a.publishedAt = &published
	a.updatedAt = biztime.NowUTC()
}

func (a *Article) setState(state vo.ArticleState) {
	if a.state == state {
		return
	}
	a.state = state
	a.updatedAt = biztime.NowUTC()
}

// UpdateDetails replaces the editable metadata. The publication state is not
// part of it.
func (a *Article) UpdateDetails(title string, editorID *uint, categoryIDs []uint) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	a.title = title
	a.editorID = editorID
	a.categoryIDs = dedupIDs(categoryIDs)
	a.updatedAt = biztime.NowUTC()
	return nil
}

func validateTitle(title string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	return nil
}

func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
