package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-results-backend/internal/handlers"
	"github.com/ArowuTest/lottery-results-backend/internal/middleware"
	"github.com/ArowuTest/lottery-results-backend/pkg/jwt"
)

// HandlerDependencies holds everything the router serves.
type HandlerDependencies struct {
	AuthHandler    *handlers.AuthHandler
	ResultHandler  *handlers.ResultHandler
	Tokens         *jwt.TokenService
	Database       handlers.Pinger
	AllowedOrigins []string
	Logger         *slog.Logger
}

// SetupRouter sets up the router
func SetupRouter(deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	results := deps.ResultHandler

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", handlers.Health(deps.Database))
		public.POST("/auth/login", deps.AuthHandler.Login)
		public.POST("/tickets/validate", handlers.ValidateTicket)

		public.GET("/results", results.List)
		public.GET("/results/latest", results.GetLatest)
		public.GET("/results/:id", results.GetByID)
		public.POST("/results/:id/check", results.CheckTicket)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens, deps.Logger))
	{
		protected.POST("/results/extract", results.Extract)
		protected.POST("/results", results.Create)
		protected.PUT("/results/:id", results.Update)
		protected.DELETE("/results/:id", results.Delete)
		protected.GET("/results/:id/export", results.Export)
	}

	return router
}
