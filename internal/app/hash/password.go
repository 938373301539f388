package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Password возвращает SHA-256 дайджест пароля в hex (64 символа)
func Password(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Equal сравнивает сохранённый дайджест с паролем за постоянное время
func Equal(digest, plaintext string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(Password(plaintext))) == 1
}
