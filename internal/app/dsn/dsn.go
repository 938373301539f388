package dsn

import (
	"fmt"
	"os"
)

// FromEnv собирает строку подключения к postgres из переменных окружения.
// Возвращает пустую строку, если не задан хост или имя базы.
func FromEnv() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		return ""
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, os.Getenv("DB_USER"), os.Getenv("DB_PASS"), name, sslMode)
}
