package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/internal/handlers"
	"github.com/ArowuTest/lotto645-backend/internal/middleware"
)

// HandlerDependencies holds every handler the router mounts
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	DrawHandler         *handlers.DrawHandler
	StatsHandler        *handlers.StatsHandler
	SuggestionHandler   *handlers.SuggestionHandler
	FeaturedDrawHandler *handlers.FeaturedDrawHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Draw routes
		draws := public.Group("/draws")
		{
			draws.GET("", deps.DrawHandler.GetWindow)
			draws.GET("/latest", deps.DrawHandler.GetLatest)
			draws.GET("/:number", deps.DrawHandler.GetDrawByNumber)
		}
		public.GET("/digest", deps.DrawHandler.GetDigest)

		// Statistics routes
		stats := public.Group("/stats")
		{
			stats.GET("/frequency", deps.StatsHandler.GetNumberFrequency)
			stats.GET("/ranges", deps.StatsHandler.GetRangeFrequency)
			stats.GET("/between", deps.StatsHandler.GetBetween)
		}

		// Suggestion routes
		public.POST("/combinations", deps.SuggestionHandler.GenerateCombinations)
		public.POST("/predict", deps.SuggestionHandler.Predict)
		public.GET("/last_draw", deps.FeaturedDrawHandler.GetFeaturedDraw)

		// Official results routes
		official := public.Group("/official")
		{
			official.GET("/latest", deps.DrawHandler.GetOfficialLatest)
			official.GET("/rounds/:number", deps.DrawHandler.GetOfficialDraw)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg), middleware.AdminOnly())
	{
		protected.POST("/last_draw", deps.FeaturedDrawHandler.SetFeaturedDraw)

		draws := protected.Group("/draws")
		{
			draws.POST("/upload", deps.DrawHandler.UploadCSV)
			draws.POST("/sync", deps.DrawHandler.SyncOfficial)
			draws.POST("/reload", deps.DrawHandler.Reload)
		}
	}

	return router
}
