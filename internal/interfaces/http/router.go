package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"redsys/internal/interfaces/http/middleware"
	"redsys/internal/interfaces/http/routes"
	"redsys/internal/interfaces/http/validation"

	_ "redsys/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
}

func NewRouter(container *Container) (*Router, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}
	return &Router{
		engine:    gin.New(),
		container: container,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	r.engine.Use(middleware.RequestLogger(c.log))
	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if c.cfg.Server.Mode == gin.DebugMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api")
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  c.ticketHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupArticleRoutes(api, &routes.ArticleRouteConfig{
		ArticleHandler: c.articleHandler,
		AuthMiddleware: c.authMiddleware,
	})
}

// Handler returns the configured engine.
func (r *Router) Handler() http.Handler {
	return r.engine
}
