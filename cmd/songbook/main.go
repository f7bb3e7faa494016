package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/songbook-dev/songbook/db"
	"github.com/songbook-dev/songbook/internal/auth"
	"github.com/songbook-dev/songbook/internal/config"
	"github.com/songbook-dev/songbook/internal/handlers"
	"github.com/songbook-dev/songbook/internal/logging"
	"github.com/songbook-dev/songbook/internal/middleware"
	"github.com/songbook-dev/songbook/internal/repository"
	"github.com/songbook-dev/songbook/internal/router"
	"github.com/songbook-dev/songbook/internal/services"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	gin.SetMode(cfg.Server.Mode)

	database, err := db.ConnectDatabase(cfg.Database.Driver, cfg.Database.DSN)

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err = db.MigrateDatabase(database); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	codec, err := auth.NewTokenCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token codec")
	}

	verifier := auth.NewGoogleVerifier(
		cfg.Auth.GoogleIssuer,
		cfg.Auth.GoogleClientID,
		cfg.Auth.GoogleJWKSURL,
		&http.Client{Timeout: 10 * time.Second},
	)

	repo := repository.NewStore(database)
	hub := handlers.NewHub(cfg.CORS.AllowedOrigins)
	h := handlers.New(
		services.NewSongService(repo),
		services.NewAuthService(repo, verifier, codec),
		repo,
		hub,
	)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	r := router.NewRouter(cfg, h, codec, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}

	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
}
