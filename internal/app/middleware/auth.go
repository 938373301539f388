package middleware

import (
	"context"
	"net/http"
	"strings"

	"designer/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenVerifier проверяет подпись и срок действия токена
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// TokenBlacklist - отозванные через /signout токены
type TokenBlacklist interface {
	IsJWTBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	Verifier   TokenVerifier
	Blacklist  TokenBlacklist // может быть nil, если Redis не настроен
	CookieName string
}

func NewAuthMiddleware(verifier TokenVerifier, blacklist TokenBlacklist, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		Verifier:   verifier,
		Blacklist:  blacklist,
		CookieName: cookieName,
	}
}

// WithAuthCheck пропускает запрос дальше только с действительным токеном.
// Токен берётся из куки, либо из заголовка Authorization: Bearer.
func (am *AuthMiddleware) WithAuthCheck() gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		jwtStr := am.tokenFromRequest(gCtx)
		if jwtStr == "" {
			abortUnauthorized(gCtx)
			return
		}

		if am.Blacklist != nil {
			revoked, err := am.Blacklist.IsJWTBlacklisted(gCtx.Request.Context(), jwtStr)
			if err != nil {
				logrus.Error("blacklist check failed: ", err)
				gCtx.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(dto.MessageInternal))
				return
			}
			if revoked {
				abortUnauthorized(gCtx)
				return
			}
		}

		userID, err := am.Verifier.Verify(jwtStr)
		if err != nil {
			logrus.Warn("token rejected: ", err)
			abortUnauthorized(gCtx)
			return
		}

		SetUser(gCtx, userID, jwtStr)
		gCtx.Next()
	}
}

func (am *AuthMiddleware) tokenFromRequest(gCtx *gin.Context) string {
	if token, err := gCtx.Cookie(am.CookieName); err == nil && token != "" {
		return token
	}

	header := gCtx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func abortUnauthorized(gCtx *gin.Context) {
	gCtx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(dto.MessageUnauthorized))
}
