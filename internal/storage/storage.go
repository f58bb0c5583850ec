package storage

import (
	"context"
	"io"
	"time"
)

// BlobStore — контракт объектного хранилища аудиофайлов.
// Ключи непрозрачны; доступ на чтение выдаётся только через
// подписанные URL с ограниченным сроком жизни.
type BlobStore interface {
	// Put сохраняет объект и возвращает его прямой локатор.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete удаляет объект по ключу.
	Delete(ctx context.Context, key string) error
	// PresignGet выдаёт подписанный URL на чтение объекта сроком на ttl.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
