// Package httpapi wires repositories, services and handlers into a gin router.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"mediatracker/internal/config"
	"mediatracker/internal/microservices/http-api/handler"
	"mediatracker/internal/microservices/http-api/middleware"
	"mediatracker/internal/microservices/http-api/repository"
	"mediatracker/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Services struct {
	Auth       service.AuthService
	MediaTypes service.MediaTypeService
	Media      service.MediaService
	Logs       service.LogService
}

// NewServices builds the service layer on top of postgres and redis.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log *zap.Logger) (*Services, error) {
	policy, err := service.PolicyFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(db)
	types := repository.NewMediaTypeRepository(db)
	media := repository.NewMediaRepository(db)
	logs := repository.NewLogRepository(db)
	refreshTokens := repository.NewRefreshTokenRepository(rdb)
	tx := repository.NewTxManager(db, log)
	resolver := service.NewOwnershipResolver(types, media, logs)

	return &Services{
		Auth:       service.NewAuthService(users, media, logs, refreshTokens, tx, cfg, log),
		MediaTypes: service.NewMediaTypeService(types, resolver, tx, policy, log),
		Media:      service.NewMediaService(media, resolver, tx, policy, log),
		Logs:       service.NewLogService(logs, types, resolver, tx, policy, log),
	}, nil
}

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

func NewRouter(cfg *config.Config, svcs *Services, log *zap.Logger, checks ...HealthCheck) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(log), middleware.Recovery(log))

	r.GET("/check-conn", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and storage connected"})
	})

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	authGroup := r.Group("/auth", limiter.Middleware())
	handler.NewAuthHandler(svcs.Auth, log, cfg.RequestTimeout).RegisterRoutes(authGroup)

	protected := r.Group("", middleware.AuthMiddleware(svcs.Auth))
	handler.NewMediaTypeHandler(svcs.MediaTypes, log, cfg.RequestTimeout).RegisterRoutes(protected.Group("/media-type"))
	handler.NewMediaHandler(svcs.Media, log, cfg.RequestTimeout).RegisterRoutes(protected.Group("/media"))
	handler.NewLogHandler(svcs.Logs, log, cfg.RequestTimeout).RegisterRoutes(protected.Group("/logs"))

	return r
}
