// Command seed applies migrations and inserts the global media types and the
// default media.
package main

import (
	"context"
	"log"
	"time"

	"mediatracker/database"
	"mediatracker/internal/config"
	"mediatracker/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.RunMigrations(cfg.DatabaseURL, zlog); err != nil {
		zlog.Fatal("migrations failed", zap.Error(err))
	}

	db, err := database.Connect(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Seed(ctx, db, zlog); err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}
	zlog.Info("seed complete")
}
