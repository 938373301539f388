package api

import (
	"context"
	"fmt"

	"designer/internal/app/config"
	"designer/internal/app/handler"
	"designer/internal/app/middleware"
	"designer/internal/app/redis"
	"designer/internal/app/repository"
	"designer/internal/app/session"
	"designer/internal/app/storage"
	"designer/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewApplication собирает зависимости сервиса по конфигурации
func NewApplication(ctx context.Context, cfg *config.Config) (*pkg.Application, error) {
	repo, err := repository.New(cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации репозитория: %w", err)
	}

	sessions := session.NewManager(cfg.JWT)
	h := handler.NewHandler(repo, sessions, cfg)

	var blacklist middleware.TokenBlacklist
	if cfg.RedisEnabled() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		h.Revoker = redisClient
		blacklist = redisClient
	} else {
		logrus.Warn("redis is not configured: signout will only clear the cookie")
	}

	if cfg.MinIOEnabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		h.Snapshots = minioClient
	} else {
		logrus.Warn("minio is not configured: project snapshots are disabled")
	}

	authMiddleware := middleware.NewAuthMiddleware(sessions, blacklist, cfg.JWT.CookieName)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery(), middleware.CORS(cfg.CORS.AllowOrigin))

	return pkg.NewApp(cfg, router, h, authMiddleware), nil
}

func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	app, err := NewApplication(context.Background(), cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	app.RunApp()
}
