package repository

import (
	"errors"
	"time"

	"designer/internal/app/ds"
	"designer/internal/app/role"

	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser регистрирует пользователя. Повторный логин даёт ErrDuplicateLogin и ничего не пишет.
func (r *Repository) CreateUser(login, passwordHash string) (*ds.User, error) {
	user := ds.User{
		Login:            login,
		PasswordHash:     passwordHash,
		Role:             int(role.Designer),
		IsActive:         true,
		RegisterDatetime: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateLogin
		}
		return tx.Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// гонка двух регистраций: уникальный индекс сработал позже проверки
		return nil, ErrDuplicateLogin
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
