package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FSStore — файловый драйвер для разработки и тестов.
// PresignGet возвращает file://-URL без реальной подписи.
type FSStore struct {
	base string
}

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// path проверяет, что ключ не выводит за корень хранилища.
func (s *FSStore) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := filepath.Join(s.base, filepath.Clean(key))
	base := filepath.Clean(s.base)
	if dst == base || !strings.HasPrefix(dst, base+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes store root", key)
	}
	return dst, nil
}

func (s *FSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: dst}
	return u.String(), nil
}

func (s *FSStore) Delete(ctx context.Context, key string) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil {
		return fmt.Errorf("fs remove %q: %w", key, err)
	}
	return nil
}

func (s *FSStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dst); err != nil {
		return "", fmt.Errorf("fs presign %q: %w", key, err)
	}
	u := url.URL{Scheme: "file", Path: dst}
	return u.String(), nil
}

var _ BlobStore = (*FSStore)(nil)
