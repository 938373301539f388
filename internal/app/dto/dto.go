package dto

import "designer/internal/app/ds"

// ============ Сообщения ============

const (
	MessageIncompleteData  = "Получены неполные данные!"
	MessageBadLogin        = "Логин не соответствует правилам!"
	MessageUserExists      = "Данный пользователь уже зарегистрирован!"
	MessageSignedUp        = "Регистрация прошла успешно!"
	MessageBadCredentials  = "Неверный логин или пароль!"
	MessageSignedIn        = "Успешный вход в систему!"
	MessageSignedOut       = "Выход из системы выполнен!"
	MessageUnauthorized    = "Требуется авторизация!"
	MessageProjectCreated  = "Проект успешно добавлен!"
	MessageProjectRenamed  = "Проект успешно переименован!"
	MessageProjectDeleted  = "Проект успешно удалён!"
	MessageProjectNotFound = "Проект не найден!"
	MessageNotOwner        = "Пользователь не является владельцем этого проекта!"
	MessageBadProjectID    = "Неверный ID проекта!"
	MessageSnapshotReady   = "Снимок проекта сохранён!"
	MessageSnapshotOff     = "Хранилище снимков не настроено!"
	MessageBadModuleQuery  = "Неверные параметры фильтра!"
	MessageInternal        = "Внутренняя ошибка сервера!"
)

// ============ Общие структуры ============

// StatusResponse - ответ с признаком success, который ожидает клиент
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(message string) StatusResponse {
	return StatusResponse{Success: true, Message: message}
}

func Fail(message string) StatusResponse {
	return StatusResponse{Success: false, Message: message}
}

// CodeResponse - ответ списков: code 0 при успехе
type CodeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// ============ Модули ============

type ModuleQuery struct {
	Category  *int     `form:"category"`
	MinWidth  *float64 `form:"min_width"`
	MaxWidth  *float64 `form:"max_width"`
	MinHeight *float64 `form:"min_height"`
	MaxHeight *float64 `form:"max_height"`
	MinDepth  *float64 `form:"min_depth"`
	MaxDepth  *float64 `form:"max_depth"`
}

type ModuleListResponse struct {
	Code    int         `json:"code"`
	Modules []ds.Module `json:"modules"`
}

// ============ Проекты ============

type ProjectListResponse struct {
	Code     int          `json:"code"`
	Projects []ds.Project `json:"projects"`
}

type CreateProjectRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=255"`
	Project string `json:"project" form:"project"`
}

type RenameProjectRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

type SnapshotResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ============ Пользователи ============

type SignupRequest struct {
	Login    string `json:"login" form:"login" binding:"required,login"`
	Password string `json:"password" form:"password" binding:"required"`
}

type SigninRequest struct {
	Login    string `json:"login" form:"login" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
