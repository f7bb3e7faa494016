package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/songbook-dev/songbook/internal/auth"
	"github.com/songbook-dev/songbook/internal/config"
	"github.com/songbook-dev/songbook/internal/handlers"
	"github.com/songbook-dev/songbook/internal/middleware"
)

func NewRouter(cfg *config.Config, h *handlers.Handler, codec *auth.TokenCodec, limiter *middleware.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/google", limiter.Middleware(), h.LoginWithGoogle)
		}

		guarded := api.Group("", middleware.RequireSession(codec))
		{
			guarded.GET("/ws", h.WebSocket)

			guarded.GET("/songs", h.ListSongs)
			guarded.POST("/songs", h.CreateSong)
			guarded.GET("/songs/:id", h.GetSong)
			guarded.PUT("/songs/:id", h.UpdateSong)
			guarded.DELETE("/songs/:id", h.DeleteSong)

			guarded.GET("/tabs/:songId", h.GetTab)
			guarded.GET("/videos/:songId", h.GetVideos)
		}
	}

	return r
}
