package repo

import (
	"AudioVault/internal/errvalues"
	"AudioVault/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seedUser(t *testing.T, r UserRepository, name string) *model.User {
	t.Helper()
	u, err := r.CreateUser(context.Background(), &model.User{Username: name, Password: "h"})
	assert.NoError(t, err)
	return u
}

func TestAudioRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, NewUserRepository(db), "owner")
	r := NewAudioRepository(db)
	ctx := context.Background()

	a, err := r.Create(ctx, &model.Audio{
		UserID:      u.ID,
		Title:       "Morning Jazz",
		Description: "warm-up set",
		Category:    model.CategoryMusic,
		StorageKey:  "user-1/uuid-morning.mp3",
		StorageURL:  "https://bucket.local/user-1/uuid-morning.mp3",
		FileName:    "morning.mp3",
		FileSize:    1024,
		ContentType: "audio/mpeg",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, a.ID, "идентификатор назначается при создании")

	got, err := r.GetByID(ctx, a.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Morning Jazz", got.Title)
	assert.Equal(t, model.CategoryMusic, got.Category)
	assert.Equal(t, "morning.mp3", got.FileName)

	// storage key уникален
	_, err = r.Create(ctx, &model.Audio{
		UserID:     u.ID,
		Title:      "dup key",
		Category:   model.CategoryOther,
		StorageKey: "user-1/uuid-morning.mp3",
		FileName:   "other.mp3",
	})
	assert.ErrorIs(t, err, errvalues.ErrConflict)

	_, err = r.GetByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, errvalues.ErrNotFound)
}

func TestAudioRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	ur := NewUserRepository(db)
	owner := seedUser(t, ur, "owner")
	other := seedUser(t, ur, "other")
	r := NewAudioRepository(db)
	ctx := context.Background()

	mk := func(title string, cat model.Category, uid int64, created time.Time) {
		_, err := r.Create(ctx, &model.Audio{
			UserID:     uid,
			Title:      title,
			Category:   cat,
			StorageKey: "k/" + title,
			FileName:   title + ".mp3",
			CreatedAt:  created,
		})
		assert.NoError(t, err)
	}

	base := time.Now().Add(-time.Hour)
	mk("old-music", model.CategoryMusic, owner.ID, base)
	mk("podcast", model.CategoryPodcast, owner.ID, base.Add(time.Minute))
	mk("new-music", model.CategoryMusic, owner.ID, base.Add(2*time.Minute))
	mk("foreign", model.CategoryMusic, other.ID, base.Add(3*time.Minute))

	// без фильтра: только свои, свежие первыми
	list, err := r.ListByUser(ctx, owner.ID, "")
	assert.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "new-music", list[0].Title)
	assert.Equal(t, "old-music", list[2].Title)

	// с фильтром по категории
	list, err = r.ListByUser(ctx, owner.ID, model.CategoryMusic)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	for _, a := range list {
		assert.Equal(t, model.CategoryMusic, a.Category)
	}

	// пустая библиотека — пустой список, не ошибка
	empty, err := r.ListByUser(ctx, 12345, "")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAudioRepository_FindByFileName(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, NewUserRepository(db), "owner")
	r := NewAudioRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, &model.Audio{
		UserID:     owner.ID,
		Title:      "t",
		Category:   model.CategoryOther,
		StorageKey: "k1",
		FileName:   "take.mp3",
	})
	assert.NoError(t, err)

	got, err := r.FindByFileName(ctx, owner.ID, "take.mp3")
	assert.NoError(t, err)
	assert.Equal(t, "take.mp3", got.FileName)

	// точное совпадение, не подстрока
	_, err = r.FindByFileName(ctx, owner.ID, "take")
	assert.ErrorIs(t, err, errvalues.ErrNotFound)

	// чужие файлы не видны
	_, err = r.FindByFileName(ctx, owner.ID+1, "take.mp3")
	assert.ErrorIs(t, err, errvalues.ErrNotFound)
}

func TestAudioRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, NewUserRepository(db), "owner")
	r := NewAudioRepository(db)
	ctx := context.Background()

	a, err := r.Create(ctx, &model.Audio{
		UserID:     owner.ID,
		Title:      "t",
		Category:   model.CategoryOther,
		StorageKey: "k1",
		FileName:   "f.mp3",
	})
	assert.NoError(t, err)

	assert.NoError(t, r.Delete(ctx, a.ID))

	// второй раз — not found, не сбой
	assert.ErrorIs(t, r.Delete(ctx, a.ID), errvalues.ErrNotFound)
}
