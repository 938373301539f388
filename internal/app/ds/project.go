package ds

import "time"

// Таблица проектов. Content хранится как есть, сервер его не разбирает.
type Project struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            *uint     `gorm:"index" json:"userId"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	ModifyingDatetime time.Time `gorm:"not null" json:"modifyingDatetime"`
	Content           string    `gorm:"type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// OwnedBy сообщает, принадлежит ли проект пользователю userID
func (p *Project) OwnedBy(userID uint) bool {
	return p.UserID != nil && *p.UserID == userID
}
