package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category — фиксированный набор категорий аудио.
type Category string

const (
	CategoryMusic          Category = "Music"
	CategoryPodcast        Category = "Podcast"
	CategoryAudiobook      Category = "Audiobook"
	CategorySoundEffect    Category = "Sound Effect"
	CategoryVoiceRecording Category = "Voice Recording"
	CategoryOther          Category = "Other"
)

// Valid проверяет принадлежность категории к перечислению.
func (c Category) Valid() bool {
	switch c {
	case CategoryMusic, CategoryPodcast, CategoryAudiobook,
		CategorySoundEffect, CategoryVoiceRecording, CategoryOther:
		return true
	}
	return false
}

// Audio — метаданные одного загруженного аудиофайла.
// Сами байты живут в объектном хранилище под StorageKey.
type Audio struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title       string   `gorm:"size:200;not null" json:"title"`
	Description string   `gorm:"size:1000" json:"description,omitempty"`
	Category    Category `gorm:"size:32;not null" json:"category"`

	// StorageKey назначается один раз при создании и не меняется.
	StorageKey string `gorm:"size:512;uniqueIndex;not null" json:"-"`
	// StorageURL — прямой локатор в хранилище. Доступ всегда идёт через
	// подписанные URL; поле хранится для совместимости.
	StorageURL string `gorm:"size:1024" json:"storage_url,omitempty"`

	FileName    string `gorm:"size:255" json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `gorm:"size:120" json:"content_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate выдаёт идентификатор, если он не задан заранее.
func (a *Audio) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
