package valueobjects

import "fmt"

// ArticleState is the publication state of an article. It changes only as a
// side effect of ticket transitions.
type ArticleState string

const (
	ArticleStateDraft     ArticleState = "draft"
	ArticleStateInReview  ArticleState = "in_review"
	ArticleStatePublished ArticleState = "published"
)

var validArticleStates = map[ArticleState]bool{
	ArticleStateDraft:     true,
	ArticleStateInReview:  true,
	ArticleStatePublished: true,
}

func (s ArticleState) String() string {
	return string(s)
}

func (s ArticleState) IsValid() bool {
	return validArticleStates[s]
}

func (s ArticleState) IsDraft() bool {
	return s == ArticleStateDraft
}

func (s ArticleState) IsInReview() bool {
	return s == ArticleStateInReview
}

func (s ArticleState) IsPublished() bool {
	return s == ArticleStatePublished
}

func NewArticleState(s string) (ArticleState, error) {
	state := ArticleState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid article state: %s", s)
	}
	return state, nil
}
