package repo

import (
	"AudioVault/internal/errvalues"
	"AudioVault/internal/model"
	"context"

	"gorm.io/gorm"
)

// AudioRepository — контракт доступа к записям аудио.
type AudioRepository interface {
	Create(ctx context.Context, a *model.Audio) (*model.Audio, error)
	GetByID(ctx context.Context, id string) (*model.Audio, error)
	// ListByUser возвращает записи владельца, свежие первыми.
	// Пустая категория означает «без фильтра».
	ListByUser(ctx context.Context, userID int64, category model.Category) ([]model.Audio, error)
	// FindByFileName ищет первую запись владельца с точным совпадением
	// исходного имени файла.
	FindByFileName(ctx context.Context, userID int64, fileName string) (*model.Audio, error)
	Delete(ctx context.Context, id string) error
}

type audioRepo struct {
	db *gorm.DB
}

// NewAudioRepository создаёт реализацию репозитория для Audio.
func NewAudioRepository(db *gorm.DB) AudioRepository {
	return &audioRepo{db: db}
}

func (r *audioRepo) Create(ctx context.Context, a *model.Audio) (*model.Audio, error) {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

func (r *audioRepo) GetByID(ctx context.Context, id string) (*model.Audio, error) {
	var a model.Audio
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *audioRepo) ListByUser(ctx context.Context, userID int64, category model.Category) ([]model.Audio, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var list []model.Audio
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (r *audioRepo) FindByFileName(ctx context.Context, userID int64, fileName string) (*model.Audio, error) {
	var a model.Audio
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND file_name = ?", userID, fileName).
		First(&a).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *audioRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Audio{})
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	// Ноль затронутых строк — запись уже удалили (например, параллельным
	// запросом); для вызывающего это not found, а не сбой.
	if tx.RowsAffected == 0 {
		return errvalues.ErrNotFound
	}
	return nil
}
