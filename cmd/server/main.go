package main

import (
	"context"
	"fmt"
	"os"

	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/logger"
	"blogicum/internal/router"
	"blogicum/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg := config.Load()
	l := logger.Setup(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		l.Debug().Msg("No .env file found, reading settings from the environment")
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(cfg.DatabaseURL, cfg.ReplicaURLs, l)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.Migrate(conn); err != nil {
		l.Fatal().Err(err).Msg("Failed to migrate database")
	}
	if err := db.Seed(conn, l); err != nil {
		l.Fatal().Err(err).Msg("Failed to seed database")
	}

	images, err := imageStore(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to set up media storage")
	}

	r, err := router.New(cfg, conn, images)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to build router")
	}

	l.Info().Str("port", cfg.Port).Bool("debug", cfg.Debug).Msg("Blogicum server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func imageStore(ctx context.Context, cfg config.Config) (services.ImageStore, error) {
	switch cfg.MediaBackend {
	case "local", "":
		if err := os.MkdirAll(cfg.MediaRoot, 0o755); err != nil {
			return nil, err
		}
		return services.NewLocalStore(cfg.MediaRoot, cfg.MediaURL), nil
	case "s3":
		return services.NewS3Store(ctx, cfg.S3Bucket, cfg.S3PublicURL)
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.MediaBackend)
	}
}
