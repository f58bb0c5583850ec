package handlers

import (
	"AudioVault/internal/config"
	"AudioVault/internal/errvalues"
	"encoding/json"
	"errors"
	"net/http"
)

// errorBody — структурный ответ об ошибке. Detail заполняется только
// вне production-окружения.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFromError переводит таксономию ошибок в HTTP-статус.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, errvalues.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, errvalues.ErrBadCredentials):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, errvalues.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errvalues.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errvalues.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errvalues.ErrStorage):
		return http.StatusInternalServerError, "storage"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, cfg *config.Config, err error) {
	status, code := statusFromError(err)
	body := errorBody{Error: code}
	if !cfg.IsProduction() {
		body.Detail = err.Error()
	}
	writeJSON(w, status, body)
}

func writeValidation(w http.ResponseWriter, cfg *config.Config, msg string) {
	body := errorBody{Error: "validation"}
	if !cfg.IsProduction() {
		body.Detail = msg
	}
	writeJSON(w, http.StatusBadRequest, body)
}
