package handler

import (
	"context"
	"net/http"
	"time"

	"designer/internal/app/config"
	"designer/internal/app/dto"
	"designer/internal/app/repository"
	"designer/internal/app/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenRevoker заносит токен в blacklist (Redis)
type TokenRevoker interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
}

// SnapshotStore сохраняет снимок проекта и отдаёт ссылку на него (MinIO)
type SnapshotStore interface {
	UploadSnapshot(ctx context.Context, projectID uint, content []byte) (string, error)
}

type Handler struct {
	Repository *repository.Repository
	Sessions   *session.Manager
	Revoker    TokenRevoker  // nil, если Redis не настроен
	Snapshots  SnapshotStore // nil, если MinIO не настроен
	Config     *config.Config
}

func NewHandler(r *repository.Repository, sessions *session.Manager, cfg *config.Config) *Handler {
	registerValidators()

	return &Handler{
		Repository: r,
		Sessions:   sessions,
		Config:     cfg,
	}
}

// Централизованная обработка неклассифицированных ошибок хранилища
func (h *Handler) internalError(ctx *gin.Context, err error) {
	logrus.Error(err.Error())
	ctx.JSON(http.StatusInternalServerError, dto.Fail(dto.MessageInternal))
}
