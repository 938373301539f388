package session

import (
	"errors"
	"fmt"
	"time"

	"designer/internal/app/config"
	"designer/internal/app/ds"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid session token")

// Manager выдаёт и проверяет сессионные токены
type Manager struct {
	secret    []byte
	method    jwt.SigningMethod
	expiresIn time.Duration
	issuer    string
	now       func() time.Time
}

func NewManager(cfg config.JWTConfig) *Manager {
	method := cfg.SigningMethod
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &Manager{
		secret:    []byte(cfg.Token),
		method:    method,
		expiresIn: cfg.ExpiresIn,
		issuer:    cfg.Issuer,
		now:       time.Now,
	}
}

// ExpiresIn - время жизни токена (и куки, в которой он передаётся)
func (m *Manager) ExpiresIn() time.Duration {
	return m.expiresIn
}

// Issue подписывает токен с идентификатором пользователя и временем выдачи
func (m *Manager) Issue(userID uint) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(m.method, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(m.expiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    m.issuer,
		},
		UserID: userID,
		Time:   now.UnixMilli(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия и возвращает идентификатор пользователя.
// Других способов достать id из токена нет.
func (m *Manager) Verify(tokenString string) (uint, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// ExpiresAt возвращает момент истечения проверенного токена
func (m *Manager) ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(claims.ExpiresAt, 0), nil
}

func (m *Manager) parse(tokenString string) (*ds.JWTClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == 0 {
		// токен без срока действия не принимаем
		return nil, ErrInvalidToken
	}

	return claims, nil
}
