package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig carries every setting read from the environment at startup.
type AppConfig struct {
	Port        string
	CorsOrigins string

	DBDriver   string
	DBLogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	StorageDriver   string
	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string
	UploadDir       string
	PublicBaseURL   string

	AdminUsername  string
	AdminPassword  string
	SeedSampleData bool
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// Load reads the configuration. JWT_SECRET is mandatory because staff
// routes cannot be protected without it.
func Load() (*AppConfig, error) {
	ttlHours, err := strconv.Atoi(envOrDefault("JWT_TTL_HOURS", "12"))
	if err != nil || ttlHours <= 0 {
		return nil, errors.New("JWT_TTL_HOURS must be a positive integer")
	}

	cfg := &AppConfig{
		Port:            envOrDefault("PORT", "8080"),
		CorsOrigins:     os.Getenv("CORS_ORIGINS"),
		DBDriver:        strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
		DBLogLevel:      strings.ToLower(envOrDefault("DB_LOG_LEVEL", "warn")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:          time.Duration(ttlHours) * time.Hour,
		StorageDriver:   strings.ToLower(envOrDefault("STORAGE_DRIVER", "local")),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET_NAME")),
		S3Region:        envOrDefault("S3_REGION", "us-east-1"),
		S3PublicBaseURL: strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
		UploadDir:       envOrDefault("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:   envOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		AdminUsername:   envOrDefault("ADMIN_USERNAME", "admin@hotel.local"),
		AdminPassword:   envOrDefault("ADMIN_PASSWORD", "admin123"),
		SeedSampleData:  envBool("SEED_SAMPLE_DATA", false),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "postgres" {
		return nil, errors.New("DB_DRIVER must be mysql or postgres")
	}
	if cfg.StorageDriver == "s3" && cfg.S3Bucket == "" {
		return nil, errors.New("S3_BUCKET_NAME is required when STORAGE_DRIVER=s3")
	}
	return cfg, nil
}
