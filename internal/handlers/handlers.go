package handlers

import (
	"AudioVault/internal/config"
	"AudioVault/internal/middleware"
	"AudioVault/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	audioService *service.AudioService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	audioHandler := NewAudioHandler(audioService, logger, config)

	// Public routes
	r.Post("/api/auth/register", userHandler.Register)
	r.Post("/api/auth/login", userHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/users/me", userHandler.Me)
		r.Put("/api/users/{id}", userHandler.Update)
		r.Delete("/api/users/{id}", userHandler.Delete)

		r.Post("/api/audio/upload", audioHandler.Upload)
		r.Get("/api/audio", audioHandler.List)
		r.Get("/api/audio/check/{fileName}/{userId}", audioHandler.CheckDuplicate)
		r.Get("/api/audio/{id}", audioHandler.Get)
		r.Get("/api/audio/{id}/play", audioHandler.Play)
		r.Delete("/api/audio/{id}", audioHandler.Delete)
	})

	return &Handler{Router: r}
}
