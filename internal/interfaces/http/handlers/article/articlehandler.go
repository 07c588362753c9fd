package article

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"redsys/internal/application/article/usecases"
	"redsys/internal/interfaces/http/middleware"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/utils"
)

type ArticleHandler struct {
	createArticleUC usecases.CreateArticleExecutor
	updateArticleUC usecases.UpdateArticleContentExecutor
	getArticleUC    usecases.GetArticleExecutor
	listArticlesUC  usecases.ListArticlesExecutor
	getVersionUC    usecases.GetArticleVersionExecutor
	listVersionsUC  usecases.ListArticleVersionsExecutor
	logger          logger.Interface
}

func NewArticleHandler(
	createArticleUC usecases.CreateArticleExecutor,
	updateArticleUC usecases.UpdateArticleContentExecutor,
	getArticleUC usecases.GetArticleExecutor,
	listArticlesUC usecases.ListArticlesExecutor,
	getVersionUC usecases.GetArticleVersionExecutor,
	listVersionsUC usecases.ListArticleVersionsExecutor,
	logger logger.Interface,
) *ArticleHandler {
	return &ArticleHandler{
		createArticleUC: createArticleUC,
		updateArticleUC: updateArticleUC,
		getArticleUC:    getArticleUC,
		listArticlesUC:  listArticlesUC,
		getVersionUC:    getVersionUC,
		listVersionsUC:  listVersionsUC,
		logger:          logger,
	}
}

// CreateArticle handles POST /api/articles
//
//	@Summary		Create article
//	@Description	Create a draft article together with version 1 of its content
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			article	body		CreateArticleRequest	true	"Article data"
//	@Success		201		{object}	utils.APIResponse		"Article created"
//	@Failure		400		{object}	utils.APIResponse		"Validation error"
//	@Failure		403		{object}	utils.APIResponse		"Forbidden"
//	@Router			/api/articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create article", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.createArticleUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Article created successfully")
}

// GetArticle handles GET /api/articles/:id
//
//	@Summary	Get article
//	@Tags		articles
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int					true	"Article ID"
//	@Success	200	{object}	utils.APIResponse	"Article with its latest content"
//	@Failure	404	{object}	utils.APIResponse	"Article not found"
//	@Router		/api/articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	articleID, err := parseArticleID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getArticleUC.Execute(c.Request.Context(), usecases.GetArticleQuery{ArticleID: articleID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListArticles handles GET /api/articles
//
//	@Summary	List articles
//	@Tags		articles
//	@Produce	json
//	@Security	Bearer
//	@Param		category_id	query		int					false	"Only articles in this category"
//	@Param		state		query		string				false	"Article state"
//	@Param		page		query		int					false	"Page number"	default(1)
//	@Param		page_size	query		int					false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse	"Articles without content, newest first"
//	@Failure	400			{object}	utils.APIResponse	"Invalid filter"
//	@Router		/api/articles [get]
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var req ListArticlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid query for list articles", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid query parameters", err.Error()))
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listArticlesUC.Execute(c.Request.Context(), req.ToQuery(p))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Articles, result.Total, p)
}

// UpdateArticle handles PUT /api/articles/:id
//
//	@Summary		Update article
//	@Description	Edit article fields and content; a new version is stored only when the content changed
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int						true	"Article ID"
//	@Param			article	body		UpdateArticleRequest	true	"Article data"
//	@Success		200		{object}	utils.APIResponse		"Article updated"
//	@Failure		400		{object}	utils.APIResponse		"Validation error"
//	@Failure		403		{object}	utils.APIResponse		"Forbidden"
//	@Failure		404		{object}	utils.APIResponse		"Article not found"
//	@Failure		409		{object}	utils.APIResponse		"Concurrent update"
//	@Router			/api/articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	articleID, err := parseArticleID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update article", "article_id", articleID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.updateArticleUC.Execute(c.Request.Context(), req.ToCommand(articleID, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Article updated successfully", result)
}

// ListVersions handles GET /api/articles/:id/versions
//
//	@Summary	List article versions
//	@Tags		articles
//	@Produce	json
//	@Security	Bearer
//	@Param		id			path		int					true	"Article ID"
//	@Param		page		query		int					false	"Page number"	default(1)
//	@Param		page_size	query		int					false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse	"Versions, newest first"
//	@Failure	403			{object}	utils.APIResponse	"Forbidden"
//	@Failure	404			{object}	utils.APIResponse	"Article not found"
//	@Router		/api/articles/{id}/versions [get]
func (h *ArticleHandler) ListVersions(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	articleID, err := parseArticleID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listVersionsUC.Execute(c.Request.Context(), usecases.ListArticleVersionsQuery{
		ArticleID: articleID,
		Page:      p.Page,
		PageSize:  p.PageSize,
		Actor:     actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Versions, result.Total, p)
}

// GetVersion handles GET /api/articles/:id/versions/:number
//
//	@Summary	Get article version
//	@Tags		articles
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int					true	"Article ID"
//	@Param		number	path		int					true	"Version number"
//	@Success	200		{object}	utils.APIResponse	"Version with rendered content"
//	@Failure	403		{object}	utils.APIResponse	"Forbidden"
//	@Failure	404		{object}	utils.APIResponse	"Version not found"
//	@Router		/api/articles/{id}/versions/{number} [get]
func (h *ArticleHandler) GetVersion(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	articleID, err := parseArticleID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	number, err := parseVersionNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getVersionUC.Execute(c.Request.Context(), usecases.GetArticleVersionQuery{
		ArticleID:     articleID,
		VersionNumber: number,
		Actor:         actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
