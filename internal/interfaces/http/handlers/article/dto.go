package article

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"redsys/internal/application/article/usecases"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/utils"
)

type CreateArticleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content"`
	EditorID    *uint  `json:"editor_id,omitempty"`
	CategoryIDs []uint `json:"category_ids"`
}

func (r *CreateArticleRequest) ToCommand(actor workflow.Actor) usecases.CreateArticleCommand {
	return usecases.CreateArticleCommand{
		Title:       r.Title,
		Content:     r.Content,
		EditorID:    r.EditorID,
		CategoryIDs: r.CategoryIDs,
		Actor:       actor,
	}
}

// UpdateArticleRequest has no state field; the publication state follows
// the article's ticket.
type UpdateArticleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content"`
	EditorID    *uint  `json:"editor_id,omitempty"`
	CategoryIDs []uint `json:"category_ids"`
}

func (r *UpdateArticleRequest) ToCommand(articleID uint, actor workflow.Actor) usecases.UpdateArticleContentCommand {
	return usecases.UpdateArticleContentCommand{
		ArticleID:   articleID,
		Title:       r.Title,
		Content:     r.Content,
		EditorID:    r.EditorID,
		CategoryIDs: r.CategoryIDs,
		Actor:       actor,
	}
}

// ListArticlesRequest holds the optional filters of GET /api/articles.
type ListArticlesRequest struct {
	CategoryID *uint  `form:"category_id" binding:"omitempty,min=1"`
	State      string `form:"state" binding:"omitempty,article_state"`
}

func (r *ListArticlesRequest) ToQuery(p utils.Pagination) usecases.ListArticlesQuery {
	return usecases.ListArticlesQuery{
		CategoryID: r.CategoryID,
		State:      r.State,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}

func parseArticleID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid article ID")
	}
	return uint(id), nil
}

func parseVersionNumber(c *gin.Context) (int, error) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		return 0, errors.NewValidationError("Invalid version number")
	}
	return number, nil
}
