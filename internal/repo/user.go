package repo

import (
	"AudioVault/internal/errvalues"
	"AudioVault/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository — контракт доступа к учётным записям.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByLogin(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// UpdateUser меняет только переданные колонки.
	UpdateUser(ctx context.Context, id int64, updates map[string]any) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return nil, translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, errvalues.ErrNotFound
	}
	return r.GetUserByID(ctx, id)
}

func (r *userRepo) DeleteUser(ctx context.Context, id int64) error {
	// Связанные записи удаляет каскад на уровне БД (FK OnDelete:CASCADE).
	tx := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errvalues.ErrNotFound
	}
	return nil
}
