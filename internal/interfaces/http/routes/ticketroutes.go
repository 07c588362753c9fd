package routes

import (
	"github.com/gin-gonic/gin"

	"redsys/internal/interfaces/http/handlers/ticket"
	"redsys/internal/interfaces/http/middleware"
)

// TicketRouteConfig holds dependencies for ticket routes.
type TicketRouteConfig struct {
	TicketHandler  *ticket.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupTicketRoutes configures ticket routes. Role checks happen in the use
// cases, so every route only requires an authenticated actor.
func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("", cfg.TicketHandler.ListTickets)
		tickets.GET("/:id", cfg.TicketHandler.GetTicket)
		tickets.POST("/:id/transition", cfg.TicketHandler.TransitionTicket)
		tickets.GET("/:id/comments", cfg.TicketHandler.ListComments)
		tickets.POST("/:id/comments", cfg.TicketHandler.AddComment)
		tickets.PUT("/:id/comments/:number", cfg.TicketHandler.UpdateComment)
		tickets.DELETE("/:id/comments/:number", cfg.TicketHandler.DeleteComment)
	}
}
