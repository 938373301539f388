package ds

import (
	"github.com/golang-jwt/jwt"
)

// JWTClaims - полезная нагрузка сессионного токена
type JWTClaims struct {
	jwt.StandardClaims
	UserID uint  `json:"id"`
	Time   int64 `json:"time"` // момент выдачи, мс
}
