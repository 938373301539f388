package handler

import (
	"errors"
	"net/http"
	"strconv"

	"designer/internal/app/dto"
	"designer/internal/app/middleware"
	"designer/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// currentUser - id пользователя, проверенный WithAuthCheck
func (h *Handler) currentUser(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Fail(dto.MessageUnauthorized))
	}
	return userID, ok
}

func (h *Handler) projectID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.Fail(dto.MessageBadProjectID))
		return 0, false
	}
	return uint(id), true
}

// projectError: отсутствие проекта и чужой проект - ожидаемые отказы, остальное - 500
func (h *Handler) projectError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusOK, dto.Fail(dto.MessageProjectNotFound))
	case errors.Is(err, repository.ErrForbidden):
		ctx.JSON(http.StatusOK, dto.Fail(dto.MessageNotOwner))
	default:
		h.internalError(ctx, err)
	}
}

// GetProjects список проектов текущего пользователя
// @Summary Список проектов
// @Tags Projects
// @Produce json
// @Success 200 {object} dto.ProjectListResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /projects [get]
func (h *Handler) GetProjects(ctx *gin.Context) {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	projects, err := h.Repository.ListProjects(userID)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProjectListResponse{
		Code:     0,
		Projects: projects,
	})
}

// CreateProject сохранение нового проекта
// @Summary Создание проекта
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Имя и содержимое проекта"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /projects [post]
func (h *Handler) CreateProject(ctx *gin.Context) {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var request dto.CreateProjectRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(bindMessage(err)))
		return
	}

	if _, err := h.Repository.CreateProject(userID, request.Name, request.Project); err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.MessageProjectCreated))
}

// RenameProject переименование проекта владельцем
// @Summary Переименование проекта
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "ID проекта"
// @Param request body dto.RenameProjectRequest true "Новое имя"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /projects/{id} [patch]
func (h *Handler) RenameProject(ctx *gin.Context) {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id, ok := h.projectID(ctx)
	if !ok {
		return
	}

	var request dto.RenameProjectRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(bindMessage(err)))
		return
	}

	if err := h.Repository.RenameProject(id, request.Name, userID); err != nil {
		h.projectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.MessageProjectRenamed))
}

// DeleteProject удаление проекта владельцем
// @Summary Удаление проекта
// @Tags Projects
// @Produce json
// @Param id path int true "ID проекта"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /projects/{id} [delete]
func (h *Handler) DeleteProject(ctx *gin.Context) {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id, ok := h.projectID(ctx)
	if !ok {
		return
	}

	if err := h.Repository.DeleteProject(id, userID); err != nil {
		h.projectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.MessageProjectDeleted))
}

// SnapshotProject выгрузка содержимого проекта в MinIO
// @Summary Снимок проекта
// @Description Сохраняет содержимое проекта в объектное хранилище и возвращает ссылку на 1 час
// @Tags Projects
// @Produce json
// @Param id path int true "ID проекта"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 503 {object} dto.StatusResponse
// @Router /projects/{id}/snapshot [post]
func (h *Handler) SnapshotProject(ctx *gin.Context) {
	userID, ok := h.currentUser(ctx)
	if !ok {
		return
	}
	id, ok := h.projectID(ctx)
	if !ok {
		return
	}

	if h.Snapshots == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.Fail(dto.MessageSnapshotOff))
		return
	}

	project, err := h.Repository.GetOwnedProject(id, userID)
	if err != nil {
		h.projectError(ctx, err)
		return
	}

	url, err := h.Snapshots.UploadSnapshot(ctx.Request.Context(), project.ID, []byte(project.Content))
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SnapshotResponse{
		Success: true,
		Message: dto.MessageSnapshotReady,
		URL:     url,
	})
}
