package routes

import (
	"github.com/gin-gonic/gin"

	"redsys/internal/interfaces/http/handlers/article"
	"redsys/internal/interfaces/http/middleware"
)

// ArticleRouteConfig holds dependencies for article routes.
type ArticleRouteConfig struct {
	ArticleHandler *article.ArticleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupArticleRoutes configures article routes.
func SetupArticleRoutes(api *gin.RouterGroup, cfg *ArticleRouteConfig) {
	articles := api.Group("/articles")
	articles.Use(cfg.AuthMiddleware.RequireAuth())
	{
		articles.POST("", cfg.ArticleHandler.CreateArticle)
		articles.GET("", cfg.ArticleHandler.ListArticles)
		articles.GET("/:id", cfg.ArticleHandler.GetArticle)
		articles.PUT("/:id", cfg.ArticleHandler.UpdateArticle)
		articles.GET("/:id/versions", cfg.ArticleHandler.ListVersions)
		articles.GET("/:id/versions/:number", cfg.ArticleHandler.GetVersion)
	}
}
