package handler

import (
	"designer/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все REST маршруты
func (h *Handler) RegisterRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// Каталог модулей (публичный)
	router.GET("/modules", h.GetModules)

	// Проекты - только для авторизованных пользователей
	projects := router.Group("/projects")
	projects.Use(authMiddleware.WithAuthCheck())
	{
		projects.GET("", h.GetProjects)
		projects.POST("", h.CreateProject)
		projects.PATCH("/:id", h.RenameProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.POST("/:id/snapshot", h.SnapshotProject)
	}

	// Аутентификация
	router.POST("/signup", h.Signup)
	router.POST("/signin", h.Signin)
	router.POST("/signout", authMiddleware.WithAuthCheck(), h.Signout)

	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
