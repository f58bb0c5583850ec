package handlers

import (
	"AudioVault/internal/config"
	"AudioVault/internal/middleware"
	"AudioVault/internal/model"
	"AudioVault/internal/service"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и управление учёткой.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

type updateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register регистрирует учётную запись и сразу выдаёт токен.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeValidation(w, h.Config, "invalid request body")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		h.Logger.Warnw("Register: failed", "username", req.Username, "error", err)
		writeError(w, h.Config, err)
		return
	}

	token, err := middleware.BuildToken(user.ID, user.Username, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Register: token build failed", "error", err)
		writeError(w, h.Config, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login проверяет учётные данные и выдаёт токен.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeValidation(w, h.Config, "invalid request body")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Config, err)
		return
	}

	token, err := middleware.BuildToken(user.ID, user.Username, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Login: token build failed", "error", err)
		writeError(w, h.Config, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me возвращает текущую учётную запись.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.UserService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update меняет поля собственной учётной записи.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeValidation(w, h.Config, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, h.Config, "invalid request body")
		return
	}

	user, err := h.UserService.Update(r.Context(), userID, targetID, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete удаляет собственную учётную запись вместе с библиотекой.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeValidation(w, h.Config, "invalid user id")
		return
	}

	if err := h.UserService.Delete(r.Context(), userID, targetID); err != nil {
		writeError(w, h.Config, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
