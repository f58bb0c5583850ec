package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	Env         string `env:"APP_ENV"` // "production" скрывает диагностику в ответах

	// Object storage settings
	BlobDriver    string `env:"BLOB_DRIVER"` // s3|fs
	FSBasePath    string `env:"FS_BASE_PATH"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3Region      string `env:"S3_REGION"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3AccessKey   string `env:"S3_ACCESS_KEY"`
	S3SecretKey   string `env:"S3_SECRET_KEY"`
	S3UseSSL      bool   `env:"S3_USE_SSL"`
	UploadMaxMB   int    `env:"UPLOAD_MAX_MB"`
	PresignTTLMin int    `env:"PRESIGN_TTL_MIN"`

	// Shared
	ServerURL string `env:"-"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.StringVar(&cfg.Env, "env", cfg.Env, "окружение: production|development")
	flag.StringVar(&cfg.BlobDriver, "blob-driver", cfg.BlobDriver, "драйвер хранилища блобов: s3|fs")
	flag.StringVar(&cfg.FSBasePath, "fs-base", cfg.FSBasePath, "каталог fs-драйвера")
	flag.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "endpoint S3-совместимого хранилища")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "имя бакета")
	flag.IntVar(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "лимит размера загрузки, МБ")
	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.BlobDriver == "" {
		cfg.BlobDriver = "fs"
	}
	if cfg.FSBasePath == "" {
		cfg.FSBasePath = "./data"
	}
	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 50
	}
	if cfg.PresignTTLMin <= 0 {
		cfg.PresignTTLMin = 60
	}

	// BaseURL должен быть в виде "address:port" (без схемы и пути)
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}

// IsProduction сообщает, работаем ли мы в боевом окружении.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
