package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"gmod-tts/internal/auth"
	"gmod-tts/internal/handlers"
	"gmod-tts/internal/middleware"
)

// Deps are the collaborators the router is assembled from.
type Deps struct {
	Handler       *handlers.Handler
	Authenticator *auth.Authenticator
	Logger        *zap.Logger
	RateLimit     float64
	RateBurst     int
}

// SetupRoutes builds the gin engine.
func SetupRoutes(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "gmod-tts is running",
		})
	})

	// Playback links are handed to clients that cannot send headers.
	ginRouter.GET("/play/:key", deps.Handler.Play)

	// Protected routes (authentication required when a secret is set)
	protected := ginRouter.Group("")
	protected.Use(middleware.BearerAuth(deps.Authenticator))
	{
		protected.POST("/tts", middleware.RateLimit(deps.RateLimit, deps.RateBurst), deps.Handler.TextToSpeech)
		protected.GET("/info", deps.Handler.Info)
	}

	return ginRouter
}

// WithCORS wraps the router so browser clients on other origins can call it.
func WithCORS(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", "Origin", "X-Requested-With"},
		AllowCredentials: false,
	}).Handler(h)
}
