package service

import (
	"AudioVault/internal/errvalues"
	"AudioVault/internal/model"
	"AudioVault/internal/repo"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// UserService инкапсулирует бизнес-логику учётных записей.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// UserUpdate — частичное обновление; nil-поля не трогаются.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Register создаёт учётную запись с захешированным паролем.
func (s *UserService) Register(ctx context.Context, username, password string, email *string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", errvalues.ErrValidation)
	}

	// ранняя проверка занятости логина; гонку окончательно закрывает
	// уникальный индекс в БД
	if existing, err := s.repo.GetUserByLogin(ctx, username); err == nil && existing != nil {
		return nil, errvalues.ErrConflict
	} else if err != nil && !errors.Is(err, errvalues.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, Email: email, Password: string(hash)}
	return s.repo.CreateUser(ctx, user)
}

// Login проверяет пару логин/пароль и возвращает учётную запись.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, errvalues.ErrNotFound) {
			return nil, errvalues.ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errvalues.ErrBadCredentials
	}
	return user, nil
}

// Get возвращает учётную запись по идентификатору.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// Update меняет собственную учётную запись; чужую трогать нельзя.
func (s *UserService) Update(ctx context.Context, callerID, targetID int64, upd UserUpdate) (*model.User, error) {
	if callerID != targetID {
		return nil, errvalues.ErrForbidden
	}

	updates := map[string]any{}
	if upd.Username != nil {
		if *upd.Username == "" {
			return nil, fmt.Errorf("%w: username must not be empty", errvalues.ErrValidation)
		}
		updates["username"] = *upd.Username
	}
	if upd.Email != nil {
		if *upd.Email == "" {
			// пустая строка означает «убрать адрес»; колонка под
			// уникальным индексом, поэтому храним NULL
			updates["email"] = nil
		} else {
			updates["email"] = *upd.Email
		}
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", errvalues.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return s.repo.GetUserByID(ctx, targetID)
	}
	return s.repo.UpdateUser(ctx, targetID, updates)
}

// Delete удаляет собственную учётную запись; каскад в БД удаляет записи.
// Блобы удалённых записей остаются в хранилище — принятая утечка.
func (s *UserService) Delete(ctx context.Context, callerID, targetID int64) error {
	if callerID != targetID {
		return errvalues.ErrForbidden
	}
	return s.repo.DeleteUser(ctx, targetID)
}
