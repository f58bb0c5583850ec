package model

import "time"

// User — учётная запись владельца аудиотеки.
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Username string  `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email    *string `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Password string  `gorm:"not null" json:"-"`

	// Связи: удаление пользователя каскадно удаляет его записи.
	Audios []Audio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
