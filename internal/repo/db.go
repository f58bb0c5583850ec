package repo

import (
	"AudioVault/internal/errvalues"
	"AudioVault/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение и накатывает миграции моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Audio{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// translateError переводит ошибки gorm в общую таксономию.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if err == gorm.ErrRecordNotFound {
		return errvalues.ErrNotFound
	}
	if err == gorm.ErrDuplicatedKey || isUniqueViolation(err) {
		return errvalues.ErrConflict
	}
	return err
}

// isUniqueViolation ловит нарушение уникальности по тексту драйвера
// (SQLSTATE 23505 у postgres, UNIQUE constraint у sqlite).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
