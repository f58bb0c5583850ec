package service

import (
	"AudioVault/internal/errvalues"
	"AudioVault/internal/model"
	"AudioVault/internal/repo"
	"AudioVault/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	titleMaxLen       = 200
	descriptionMaxLen = 1000
)

// allowedContentTypes — разрешённые MIME-типы загружаемого аудио.
var allowedContentTypes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/mp3":   {},
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/ogg":   {},
	"audio/webm":  {},
	"audio/aac":   {},
	"audio/flac":  {},
	"audio/mp4":   {},
	"audio/x-m4a": {},
}

// AudioService инкапсулирует жизненный цикл аудиозаписи:
// загрузка, листинг, выдача ссылок на воспроизведение, удаление.
type AudioService struct {
	repo       repo.AudioRepository
	blobs      storage.BlobStore
	logger     *zap.SugaredLogger
	maxSize    int64
	presignTTL time.Duration
}

func NewAudioService(r repo.AudioRepository, blobs storage.BlobStore, logger *zap.SugaredLogger, maxSizeMB, presignTTLMin int) *AudioService {
	return &AudioService{
		repo:       r,
		blobs:      blobs,
		logger:     logger,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		presignTTL: time.Duration(presignTTLMin) * time.Minute,
	}
}

// UploadInput — параметры загрузки одной записи.
type UploadInput struct {
	File        io.Reader
	Size        int64
	FileName    string
	ContentType string
	Title       string
	Description string
	Category    model.Category
}

func (s *AudioService) validateUpload(in UploadInput) error {
	if in.File == nil || in.FileName == "" {
		return fmt.Errorf("%w: audio file is required", errvalues.ErrValidation)
	}
	if in.Size <= 0 || in.Size > s.maxSize {
		return fmt.Errorf("%w: file size must be between 1 byte and %d bytes", errvalues.ErrValidation, s.maxSize)
	}
	if _, ok := allowedContentTypes[in.ContentType]; !ok {
		return fmt.Errorf("%w: unsupported content type %q", errvalues.ErrValidation, in.ContentType)
	}
	if n := utf8.RuneCountInString(in.Title); n < 1 || n > titleMaxLen {
		return fmt.Errorf("%w: title must be 1-%d characters", errvalues.ErrValidation, titleMaxLen)
	}
	if utf8.RuneCountInString(in.Description) > descriptionMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", errvalues.ErrValidation, descriptionMaxLen)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", errvalues.ErrValidation, in.Category)
	}
	return nil
}

// buildStorageKey собирает ключ объекта: сегмент владельца, случайный
// токен и исходное имя файла. Повторяющиеся имена не сталкиваются.
func buildStorageKey(userID int64, fileName string) string {
	return fmt.Sprintf("user-%d/%s-%s", userID, uuid.NewString(), fileName)
}

// Upload проверяет вход, кладёт байты в хранилище и лишь после этого
// создаёт запись. Сбой записи в БД оставляет осиротевший блоб —
// принятая утечка, не сбой для клиента повторной загрузки.
func (s *AudioService) Upload(ctx context.Context, userID int64, in UploadInput) (*model.Audio, error) {
	if err := s.validateUpload(in); err != nil {
		return nil, err
	}

	key := buildStorageKey(userID, in.FileName)

	locator, err := s.blobs.Put(ctx, key, in.File, in.Size, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errvalues.ErrStorage, err)
	}

	audio := &model.Audio{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		StorageKey:  key,
		StorageURL:  locator,
		FileName:    in.FileName,
		FileSize:    in.Size,
		ContentType: in.ContentType,
	}
	created, err := s.repo.Create(ctx, audio)
	if err != nil {
		s.logger.Warnw("audio record insert failed after blob write, blob orphaned",
			"key", key, "user_id", userID, "error", err)
		return nil, err
	}
	return created, nil
}

// List возвращает библиотеку владельца, опционально суженную по категории.
func (s *AudioService) List(ctx context.Context, userID int64, category string) ([]model.Audio, error) {
	cat := model.Category(category)
	if category != "" && !cat.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", errvalues.ErrValidation, category)
	}
	return s.repo.ListByUser(ctx, userID, cat)
}

// ensureOwner — единая проверка владения ресурсом.
// Вызывается только после успешного поиска записи: существование
// проверяется раньше владения.
func ensureOwner(a *model.Audio, userID int64) error {
	if a.UserID != userID {
		return errvalues.ErrForbidden
	}
	return nil
}

// Get возвращает одну запись владельца.
func (s *AudioService) Get(ctx context.Context, userID int64, id string) (*model.Audio, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(a, userID); err != nil {
		return nil, err
	}
	return a, nil
}

// PlayURL выдаёт подписанный URL на чтение блоба с фиксированным TTL.
// Выданный URL не отзывается: удаление записи после выдачи не
// закрывает доступ до истечения срока.
func (s *AudioService) PlayURL(ctx context.Context, userID int64, id string) (string, time.Duration, error) {
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", 0, err
	}
	u, err := s.blobs.PresignGet(ctx, a.StorageKey, s.presignTTL)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", errvalues.ErrStorage, err)
	}
	return u, s.presignTTL, nil
}

// Delete удаляет сначала блоб, затем запись. Сбой удаления блоба
// оставляет запись нетронутой — состояние консистентно и повторяемо.
func (s *AudioService) Delete(ctx context.Context, userID int64, id string) error {
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, a.StorageKey); err != nil {
		return fmt.Errorf("%w: %v", errvalues.ErrStorage, err)
	}

	// Параллельное удаление могло успеть раньше: ноль строк — not found.
	return s.repo.Delete(ctx, a.ID)
}

// CheckDuplicate — справочная проверка «файл с таким именем уже есть».
// Ничего не запрещает: загрузка допустима при любом результате.
func (s *AudioService) CheckDuplicate(ctx context.Context, userID int64, fileName string) (*model.Audio, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", errvalues.ErrValidation)
	}
	a, err := s.repo.FindByFileName(ctx, userID, fileName)
	if err != nil {
		if errors.Is(err, errvalues.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}
