package repository

import (
	"errors"
	"fmt"

	"designer/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrForbidden      = errors.New("user is not the owner")
	ErrDuplicateLogin = errors.New("login already registered")
)

type Repository struct {
	db *gorm.DB
}

// New подключается к postgres и выполняет автоматическую миграцию
func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return NewWithDB(db)
}

// NewWithDB оборачивает уже открытое соединение (используется в тестах с sqlite)
func NewWithDB(db *gorm.DB) (*Repository, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}

	return &Repository{
		db: db,
	}, nil
}

// Migrate создаёт или обновляет таблицы users, projects, modules
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.Project{},
		&ds.Module{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DB отдаёт соединение для служебных утилит (миграции, проверка БД)
func (r *Repository) DB() *gorm.DB {
	return r.db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
