package handlers_test

import (
	"AudioVault/internal/config"
	"AudioVault/internal/handlers"
	"AudioVault/internal/middleware"
	"AudioVault/internal/model"
	"AudioVault/internal/repo"
	"AudioVault/internal/service"
	"AudioVault/internal/storage"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Local light mocks
type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByLogin(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) UpdateUser(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

type hMockAudioRepo struct{ mock.Mock }

func (m *hMockAudioRepo) Create(ctx context.Context, a *model.Audio) (*model.Audio, error) {
	args := m.Called(ctx, a)
	if v, ok := args.Get(0).(*model.Audio); ok {
		return v, args.Error(1)
	}
	if args.Error(1) == nil {
		// эхо-режим: вернуть переданную запись, как сделала бы БД
		return a, nil
	}
	return nil, args.Error(1)
}
func (m *hMockAudioRepo) GetByID(ctx context.Context, id string) (*model.Audio, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Audio); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockAudioRepo) ListByUser(ctx context.Context, userID int64, category model.Category) ([]model.Audio, error) {
	args := m.Called(ctx, userID, category)
	if v, ok := args.Get(0).([]model.Audio); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockAudioRepo) FindByFileName(ctx context.Context, userID int64, fileName string) (*model.Audio, error) {
	args := m.Called(ctx, userID, fileName)
	if v, ok := args.Get(0).(*model.Audio); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockAudioRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.AudioRepository = (*hMockAudioRepo)(nil)

// memBlobStore — простое хранилище в памяти для хендлерных тестов.
type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (s *memBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	return "https://bucket.test/" + key, nil
}

func (s *memBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("no such object %q", key)
	}
	delete(s.objects, key)
	return nil
}

func (s *memBlobStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("no such object %q", key)
	}
	return "https://signed.test/" + key, nil
}

var _ storage.BlobStore = (*memBlobStore)(nil)

const testSecret = "test-secret"

type testEnv struct {
	router http.Handler
	users  *hMockUserRepo
	audios *hMockAudioRepo
	blobs  *memBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithEnv(t, "development")
}

func newTestEnvWithEnv(t *testing.T, env string) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, UploadMaxMB: 1, PresignTTLMin: 60, Env: env}
	logger := zap.NewNop().Sugar()

	ur := &hMockUserRepo{}
	ar := &hMockAudioRepo{}
	blobs := newMemBlobStore()

	userSvc := service.NewUserService(ur)
	audioSvc := service.NewAudioService(ar, blobs, logger, cfg.UploadMaxMB, cfg.PresignTTLMin)

	h := handlers.NewHandler(userSvc, audioSvc, logger, cfg)
	return &testEnv{router: h.Router, users: ur, audios: ar, blobs: blobs}
}

func addAuth(t *testing.T, req *http.Request, userID int64, username string) {
	t.Helper()
	token, err := middleware.BuildToken(userID, username, testSecret)
	if err != nil {
		t.Fatalf("BuildToken: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// multipartUpload собирает форму загрузки с файлом audio и полями.
func multipartUpload(t *testing.T, fileName, contentType, payload string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, fileName))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte(payload))

	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}
