package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"hopeplates/internal/config"
	"hopeplates/internal/handler"
	"hopeplates/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler      *handler.AuthHandler
	DonorHandler     *handler.DonorHandler
	NGOHandler       *handler.NGOHandler
	MatchHandler     *handler.MatchHandler
	AnalyticsHandler *handler.AnalyticsHandler
	RealtimeHandler  *handler.RealtimeHandler
	RedisClient      *redis.Client // nil when Redis is disabled
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/register", deps.AuthHandler.Register)
		api.POST("/login", deps.AuthHandler.Login)

		// Donor routes.
		donors := api.Group("/donor")
		{
			donors.POST("", deps.DonorHandler.Create)
			donors.GET("", deps.DonorHandler.GetAll)
			donors.GET("/:id", deps.DonorHandler.Get)
			donors.PUT("/:id", deps.DonorHandler.Update)
		}

		// NGO routes.
		ngos := api.Group("/ngo")
		{
			ngos.GET("", deps.NGOHandler.GetAll)
			ngos.GET("/:id", deps.NGOHandler.Get)
			ngos.PUT("/:id", deps.NGOHandler.Update)
		}

		// Match routes.
		matches := api.Group("/matches")
		{
			matches.GET("", deps.MatchHandler.GetAll)
			matches.GET("/ngo/:ngoId", deps.MatchHandler.GetForNGO)
			matches.POST("/:id/accept", deps.MatchHandler.Accept)
			matches.POST("/:id/pickup", deps.MatchHandler.Pickup)
			matches.POST("/:id/deliver", deps.MatchHandler.Deliver)
		}

		api.GET("/analytics", deps.AnalyticsHandler.Get)

		if deps.RealtimeHandler != nil {
			api.GET("/ws", deps.RealtimeHandler.Subscribe)
		}
	}

	return router
}

// WithCORS wraps h with the configured cross-origin policy.
func WithCORS(h http.Handler, cfg config.CORSConfig) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Idempotency-Key"},
		ExposedHeaders: []string{"Idempotent-Replay"},
	}).Handler(h)
}
