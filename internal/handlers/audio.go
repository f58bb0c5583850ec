package handlers

import (
	"AudioVault/internal/config"
	"AudioVault/internal/errvalues"
	"AudioVault/internal/middleware"
	"AudioVault/internal/model"
	"AudioVault/internal/service"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AudioHandler обрабатывает загрузку, листинг, воспроизведение и
// удаление аудиозаписей.
type AudioHandler struct {
	AudioService *service.AudioService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewAudioHandler(audioService *service.AudioService, logger *zap.SugaredLogger, cfg *config.Config) *AudioHandler {
	return &AudioHandler{AudioService: audioService, Logger: logger, Config: cfg}
}

// Upload принимает multipart-форму: файл audio + title, description, category.
func (h *AudioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	// Лимит общего тела запроса: полезная нагрузка плюс запас на форму
	maxBody := int64(h.Config.UploadMaxMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		writeValidation(w, h.Config, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.Logger.Warnw("Upload: missing audio file", "error", err)
		writeValidation(w, h.Config, "missing audio file")
		return
	}
	defer file.Close()

	created, err := h.AudioService.Upload(r.Context(), userID, service.UploadInput{
		File:        file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
	})
	if err != nil {
		h.Logger.Warnw("Upload: failed", "user_id", userID, "file", header.Filename, "error", err)
		writeError(w, h.Config, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List возвращает библиотеку владельца, опционально по категории.
func (h *AudioHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	list, err := h.AudioService.List(r.Context(), userID, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get возвращает одну запись.
func (h *AudioHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	audio, err := h.AudioService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, audio)
}

// Play выдаёт подписанный URL на воспроизведение.
func (h *AudioHandler) Play(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	u, ttl, err := h.AudioService.PlayURL(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"url":        u,
		"expires_in": int(ttl.Seconds()),
	})
}

// Delete удаляет запись вместе с блобом.
func (h *AudioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.AudioService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CheckDuplicate — справочная проверка повторного имени файла.
// Смотреть можно только в собственную библиотеку.
func (h *AudioHandler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeValidation(w, h.Config, "invalid user id")
		return
	}
	if targetID != userID {
		writeError(w, h.Config, errvalues.ErrForbidden)
		return
	}

	fileName, err := url.PathUnescape(chi.URLParam(r, "fileName"))
	if err != nil {
		writeValidation(w, h.Config, "invalid file name")
		return
	}

	audio, err := h.AudioService.CheckDuplicate(r.Context(), userID, fileName)
	if err != nil {
		writeError(w, h.Config, err)
		return
	}

	resp := map[string]any{"exists": audio != nil}
	if audio != nil {
		resp["audio"] = audio
	}
	writeJSON(w, http.StatusOK, resp)
}
