package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sustainabuy/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware; recovery sits inside the access log so panics are logged as 500s
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(RecoveryMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.SearchProducts)
			products.GET("/recommended", handler.Recommendations)
			products.GET("/compare", handler.CompareProducts)
			products.POST("/scan", handler.ScanProduct)
			products.GET("/:id", handler.GetProduct)
			products.POST("/:id/variants", handler.AddVariant)
			products.POST("/:id/variants/:variantId/offers", handler.PersistOffers)
		}

		v1.POST("/score", handler.ScoreProduct)
		v1.POST("/offers", handler.QuoteOffers)
		v1.GET("/search/intent", handler.ParseIntent)

		users := v1.Group("/users")
		{
			users.POST("", handler.EnsureProfile)
			users.GET("/:uid", handler.GetProfile)
			users.PATCH("/:uid", handler.UpdateProfile)
			users.GET("/:uid/wishlist", handler.Wishlist)
			users.PUT("/:uid/wishlist/:productId", handler.AddToWishlist)
			users.DELETE("/:uid/wishlist/:productId", handler.RemoveFromWishlist)
		}
	}

	return router
}
