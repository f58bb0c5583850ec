package main

import (
	"AudioVault/internal/config"
	"AudioVault/internal/handlers"
	"AudioVault/internal/middleware"
	"AudioVault/internal/repo"
	"AudioVault/internal/service"
	"AudioVault/internal/storage"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// драйвер объектного хранилища
	var blobs storage.BlobStore
	switch cfg.BlobDriver {
	case "s3":
		blobs, err = storage.NewS3Store(storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
	default:
		blobs, err = storage.NewFSStore(cfg.FSBasePath)
	}
	if err != nil {
		sugar.Fatalw("failed to initialize blob storage", "driver", cfg.BlobDriver, "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	audioRepo := repo.NewAudioRepository(gormDB)

	userService := service.NewUserService(userRepo)
	audioService := service.NewAudioService(audioRepo, blobs, sugar, cfg.UploadMaxMB, cfg.PresignTTLMin)

	h := handlers.NewHandler(userService, audioService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Env", cfg.Env,
		"BlobDriver", cfg.BlobDriver,
		"UploadMaxMB", cfg.UploadMaxMB,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
