package handler

import (
	"errors"
	"net/http"
	"time"

	"designer/internal/app/dto"
	"designer/internal/app/hash"
	"designer/internal/app/middleware"
	"designer/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Signup регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание пользователя. Логин: 3-255 символов, латиница, цифры и _
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Данные для регистрации"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /signup [post]
func (h *Handler) Signup(ctx *gin.Context) {
	var request dto.SignupRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(bindMessage(err)))
		return
	}

	_, err := h.Repository.CreateUser(request.Login, hash.Password(request.Password))
	if errors.Is(err, repository.ErrDuplicateLogin) {
		ctx.JSON(http.StatusOK, dto.Fail(dto.MessageUserExists))
		return
	}
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.MessageSignedUp))
}

// Signin вход в систему
// @Summary Вход в систему
// @Description Проверяет логин и пароль и устанавливает HttpOnly куку с токеном на 2 часа
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "Данные для входа"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /signin [post]
func (h *Handler) Signin(ctx *gin.Context) {
	var request dto.SigninRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail(bindMessage(err)))
		return
	}

	user, err := h.Repository.GetUserByLogin(request.Login)
	if errors.Is(err, repository.ErrNotFound) {
		ctx.JSON(http.StatusOK, dto.Fail(dto.MessageBadCredentials))
		return
	}
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	if !user.IsActive || !hash.Equal(user.PasswordHash, request.Password) {
		logrus.Warnf("failed signin for %q", request.Login)
		ctx.JSON(http.StatusOK, dto.Fail(dto.MessageBadCredentials))
		return
	}

	token, err := h.Sessions.Issue(user.ID)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	maxAge := int(h.Sessions.ExpiresIn().Seconds())
	ctx.SetCookie(h.Config.JWT.CookieName, token, maxAge, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.OK(dto.MessageSignedIn))
}

// Signout выход из системы
// @Summary Выход из системы
// @Description Отзывает токен (blacklist в Redis) и удаляет куку
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 500 {object} dto.StatusResponse
// @Router /signout [post]
func (h *Handler) Signout(ctx *gin.Context) {
	token, _ := middleware.TokenFromContext(ctx)

	if h.Revoker != nil && token != "" {
		expiresAt, err := h.Sessions.ExpiresAt(token)
		if err != nil {
			h.internalError(ctx, err)
			return
		}
		if ttl := time.Until(expiresAt); ttl > 0 {
			if err := h.Revoker.WriteJWTToBlacklist(ctx.Request.Context(), token, ttl); err != nil {
				h.internalError(ctx, err)
				return
			}
		}
	}

	ctx.SetCookie(h.Config.JWT.CookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.OK(dto.MessageSignedOut))
}
