package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userID"
	tokenKey  = "token"
)

// SetUser сохраняет проверенного пользователя в контексте запроса
func SetUser(c *gin.Context, userID uint, token string) {
	c.Set(userIDKey, userID)
	c.Set(tokenKey, token)
}

// UserIDFromContext извлекает id пользователя, положенный WithAuthCheck
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

// TokenFromContext - проверенный токен текущего запроса
func TokenFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(tokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
