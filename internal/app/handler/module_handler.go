package handler

import (
	"net/http"

	"designer/internal/app/dto"
	"designer/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// defaultCategory применяется, когда category не передан
const defaultCategory = 0

// GetModules каталог модулей с фильтрацией
// @Summary Каталог модулей
// @Description Модули одной категории (по умолчанию 0) в заданных диапазонах размеров. Границы включительные, отсутствующая граница не ограничивает.
// @Tags Modules
// @Produce json
// @Param category query int false "Категория"
// @Param min_width query number false "Минимальная ширина"
// @Param max_width query number false "Максимальная ширина"
// @Param min_height query number false "Минимальная высота"
// @Param max_height query number false "Максимальная высота"
// @Param min_depth query number false "Минимальная глубина"
// @Param max_depth query number false "Максимальная глубина"
// @Success 200 {object} dto.ModuleListResponse
// @Failure 400 {object} dto.CodeResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /modules [get]
func (h *Handler) GetModules(ctx *gin.Context) {
	var query dto.ModuleQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.CodeResponse{Code: 1, Message: dto.MessageBadModuleQuery})
		return
	}

	modules, err := h.Repository.QueryModules(moduleFilter(query))
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ModuleListResponse{
		Code:    0,
		Modules: modules,
	})
}

func moduleFilter(query dto.ModuleQuery) repository.ModuleFilter {
	filter := repository.ModuleFilter{
		Category: defaultCategory,
		Width:    repository.Range{Min: query.MinWidth, Max: query.MaxWidth},
		Height:   repository.Range{Min: query.MinHeight, Max: query.MaxHeight},
		Depth:    repository.Range{Min: query.MinDepth, Max: query.MaxDepth},
	}
	if query.Category != nil {
		filter.Category = *query.Category
	}
	return filter
}
