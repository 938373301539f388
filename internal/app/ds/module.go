package ds

// Каталог модулей мебели (только чтение через API)
type Module struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Type    int     `gorm:"type:int;not null;index" json:"type"`
	Width   float64 `gorm:"not null" json:"width"`
	Height  float64 `gorm:"not null" json:"height"`
	Depth   float64 `gorm:"not null" json:"depth"`
	Content string  `gorm:"type:text;not null" json:"content"`
}
