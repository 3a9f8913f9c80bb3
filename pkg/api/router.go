package api

import (
	"url-admin/pkg/api/handlers"
	"url-admin/pkg/api/middleware"
	"url-admin/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(urls services.URLStore, auth *services.AuthService, log *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))

	// Health check
	router.GET("/health", handlers.HealthCheck)

	router.POST("/auth/login", handlers.Login(auth))

	// Public, unauthenticated pick of one active URL
	router.GET("/url", handlers.GetOnePublic(urls))

	records := router.Group("/urls")
	records.Use(middleware.RequireAuth(auth))
	{
		records.GET("", handlers.ListURLs(urls))
		records.POST("", handlers.CreateURL(urls))
		records.PATCH("/:id", handlers.UpdateURL(urls))
		records.DELETE("/:id", handlers.DeleteURL(urls))
	}

	return router
}
