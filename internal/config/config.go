package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL connection settings for the shared local-state backend.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings used when uploads go straight to MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// APIConfig describes the remote burial records API.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// LocalStoreConfig selects where the session token and the form draft are kept.
// Driver is one of "sqlite", "postgres" or "memory".
type LocalStoreConfig struct {
	Driver string
	Path   string
}

// UploadConfig selects the attachment upload collaborator.
// Mode is "presigned" (default, PUT to a URL issued by the API) or "minio".
type UploadConfig struct {
	Mode   string
	Folder string
}

// DraftConfig tunes draft autosave timing.
type DraftConfig struct {
	Debounce   time.Duration
	StatusHold time.Duration
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	ServiceName string
	API         APIConfig
	LocalStore  LocalStoreConfig
	Database    DatabaseConfig
	Upload      UploadConfig
	MinIO       MinIOConfig
	Draft       DraftConfig
	Log         LogConfig
}

// DefaultAPIBaseURL is used when API_BASE_URL is not set.
const DefaultAPIBaseURL = "https://dwwy78aqdgea3.cloudfront.net"

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		ServiceName: getEnv("SERVICE_NAME", "burial-console"),
		API: APIConfig{
			BaseURL:    getEnv("API_BASE_URL", DefaultAPIBaseURL),
			Timeout:    getEnvDuration("API_TIMEOUT", 30*time.Second),
			RetryCount: getEnvInt("API_RETRY_COUNT", 2),
		},
		LocalStore: LocalStoreConfig{
			Driver: getEnv("LOCALSTORE_DRIVER", "sqlite"),
			Path:   getEnv("LOCALSTORE_PATH", "burial-console.db"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Upload: UploadConfig{
			Mode:   getEnv("UPLOAD_MODE", "presigned"),
			Folder: getEnv("UPLOAD_FOLDER", "records"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Draft: DraftConfig{
			Debounce:   getEnvDuration("DRAFT_DEBOUNCE", 1500*time.Millisecond),
			StatusHold: getEnvDuration("DRAFT_STATUS_HOLD", 2*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("1500ms", "2s").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d >= 0 {
			return d
		}
	}
	return def
}
