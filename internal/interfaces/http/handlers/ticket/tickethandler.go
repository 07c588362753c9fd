package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"redsys/internal/application/ticket/usecases"
	workflowusecases "redsys/internal/application/workflow/usecases"
	"redsys/internal/interfaces/http/middleware"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC     usecases.CreateTicketExecutor
	getTicketUC        usecases.GetTicketExecutor
	listTicketsUC      usecases.ListTicketsExecutor
	listCommentsUC     usecases.ListTicketCommentsExecutor
	addCommentUC       usecases.AddTicketCommentExecutor
	updateCommentUC    usecases.UpdateTicketCommentExecutor
	deleteCommentUC    usecases.DeleteTicketCommentExecutor
	transitionTicketUC workflowusecases.TransitionTicketExecutor
	logger             logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	listCommentsUC usecases.ListTicketCommentsExecutor,
	addCommentUC usecases.AddTicketCommentExecutor,
	updateCommentUC usecases.UpdateTicketCommentExecutor,
	deleteCommentUC usecases.DeleteTicketCommentExecutor,
	transitionTicketUC workflowusecases.TransitionTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:     createTicketUC,
		getTicketUC:        getTicketUC,
		listTicketsUC:      listTicketsUC,
		listCommentsUC:     listCommentsUC,
		addCommentUC:       addCommentUC,
		updateCommentUC:    updateCommentUC,
		deleteCommentUC:    deleteCommentUC,
		transitionTicketUC: transitionTicketUC,
		logger:             logger,
	}
}

// CreateTicket handles POST /api/tickets
//
//	@Summary		Create ticket
//	@Description	Open a ticket for an existing article
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			ticket	body		CreateTicketRequest	true	"Ticket data"
//	@Success		201		{object}	utils.APIResponse	"Ticket created"
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		403		{object}	utils.APIResponse	"Forbidden"
//	@Failure		404		{object}	utils.APIResponse	"Article not found"
//	@Router			/api/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /api/tickets/:id
//
//	@Summary	Get ticket
//	@Tags		tickets
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int					true	"Ticket ID"
//	@Success	200	{object}	utils.APIResponse	"Ticket"
//	@Failure	403	{object}	utils.APIResponse	"Forbidden"
//	@Failure	404	{object}	utils.APIResponse	"Ticket not found"
//	@Router		/api/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// TransitionTicket handles POST /api/tickets/:id/transition
//
//	@Summary		Transition ticket
//	@Description	Move a ticket to another state, applying the article side effects and appending the optional comment
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id			path		int						true	"Ticket ID"
//	@Param			transition	body		TransitionTicketRequest	true	"Target state and comment"
//	@Success		200			{object}	utils.APIResponse		"Ticket after the transition"
//	@Failure		400			{object}	utils.APIResponse		"Validation error"
//	@Failure		403			{object}	utils.APIResponse		"Forbidden"
//	@Failure		404			{object}	utils.APIResponse		"Ticket not found"
//	@Failure		409			{object}	utils.APIResponse		"Invalid transition or concurrent update"
//	@Router			/api/tickets/{id}/transition [post]
func (h *TicketHandler) TransitionTicket(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TransitionTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for ticket transition", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.transitionTicketUC.Execute(c.Request.Context(), req.ToCommand(ticketID, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket transitioned successfully", result)
}

// ListComments handles GET /api/tickets/:id/comments
//
//	@Summary	List ticket comments
//	@Tags		tickets
//	@Produce	json
//	@Security	Bearer
//	@Param		id			path		int					true	"Ticket ID"
//	@Param		page		query		int					false	"Page number"	default(1)
//	@Param		page_size	query		int					false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse	"Comments, newest first"
//	@Failure	403			{object}	utils.APIResponse	"Forbidden"
//	@Failure	404			{object}	utils.APIResponse	"Ticket not found"
//	@Router		/api/tickets/{id}/comments [get]
func (h *TicketHandler) ListComments(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListTicketCommentsQuery{
		TicketID: ticketID,
		Page:     p.Page,
		PageSize: p.PageSize,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Comments, result.Total, p)
}

// ListTickets handles GET /api/tickets
//
//	@Summary	List tickets
//	@Tags		tickets
//	@Produce	json
//	@Security	Bearer
//	@Param		state		query		string				false	"Ticket state"
//	@Param		assignee_id	query		int					false	"Assignee user ID"
//	@Param		article_id	query		int					false	"Article ID"
//	@Param		page		query		int					false	"Page number"	default(1)
//	@Param		page_size	query		int					false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse	"Tickets, newest first"
//	@Failure	400			{object}	utils.APIResponse	"Invalid filter"
//	@Failure	403			{object}	utils.APIResponse	"Forbidden"
//	@Router		/api/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid query for list tickets", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid query parameters", err.Error()))
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(p, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, p)
}

// AddComment handles POST /api/tickets/:id/comments
//
//	@Summary		Add ticket comment
//	@Description	Append a comment without changing the ticket state
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			comment	body		CommentRequest		true	"Comment text"
//	@Success		201		{object}	utils.APIResponse	"Comment created"
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		403		{object}	utils.APIResponse	"Forbidden"
//	@Failure		404		{object}	utils.APIResponse	"Ticket not found"
//	@Failure		409		{object}	utils.APIResponse	"Concurrent comment"
//	@Router			/api/tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), req.ToAddCommand(ticketID, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// UpdateComment handles PUT /api/tickets/:id/comments/:number
//
//	@Summary		Edit ticket comment
//	@Description	Only the author or an admin may edit a comment
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			number	path		int					true	"Comment number"
//	@Param			comment	body		CommentRequest		true	"New comment text"
//	@Success		200		{object}	utils.APIResponse	"Comment updated"
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		403		{object}	utils.APIResponse	"Forbidden"
//	@Failure		404		{object}	utils.APIResponse	"Comment not found"
//	@Router			/api/tickets/{id}/comments/{number} [put]
func (h *TicketHandler) UpdateComment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	number, err := parseCommentNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update comment", "ticket_id", ticketID, "comment_number", number, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.updateCommentUC.Execute(c.Request.Context(), req.ToUpdateCommand(ticketID, number, actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", result)
}

// DeleteComment handles DELETE /api/tickets/:id/comments/:number
//
//	@Summary		Delete ticket comment
//	@Description	Only the author or an admin may delete a comment. Its number is not reused.
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			number	path		int					true	"Comment number"
//	@Success		200		{object}	utils.APIResponse	"Comment deleted"
//	@Failure		403		{object}	utils.APIResponse	"Forbidden"
//	@Failure		404		{object}	utils.APIResponse	"Comment not found"
//	@Router			/api/tickets/{id}/comments/{number} [delete]
func (h *TicketHandler) DeleteComment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	number, err := parseCommentNumber(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.deleteCommentUC.Execute(c.Request.Context(), usecases.DeleteTicketCommentCommand{
		TicketID: ticketID,
		Number:   number,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment deleted successfully", nil)
}
