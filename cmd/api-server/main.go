package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mediatracker/database"
	"mediatracker/internal/config"
	"mediatracker/internal/logger"
	httpapi "mediatracker/internal/microservices/http-api"

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

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, zlog); err != nil {
			return err
		}
	}

	db, err := database.Connect(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.SeedOnStart {
		if err := database.Seed(ctx, db, zlog); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	rdb, err := database.ConnectRedis(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer rdb.Close()

	svcs, err := httpapi.NewServices(cfg, db, rdb, zlog)
	if err != nil {
		return err
	}
	router := httpapi.NewRouter(cfg, svcs, zlog, database.Ping(db), database.PingRedis(rdb))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("Server starting", zap.Int("port", cfg.HTTPPort), zap.String("env", cfg.GoEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zlog.Info("Server exited")
	return nil
}
