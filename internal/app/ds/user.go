package ds

import "time"

// Таблица пользователей
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Login            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"login"`
	PasswordHash     string    `gorm:"type:varchar(255);not null" json:"-"`
	Role             int       `gorm:"type:int;not null;default:1" json:"role"`
	IsActive         bool      `gorm:"type:boolean;not null;default:true" json:"isActive"`
	RegisterDatetime time.Time `gorm:"not null" json:"registerDatetime"`
}
