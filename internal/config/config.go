package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	OCR      OCRConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	CatalogTopic       string // in-process event bus topic
}

type DatabaseConfig struct {
	Connection string
	LogSQL     bool
}

type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	SessionBackend  string // "memory" or "redis"
	SessionKeySpace string
}

type StorageConfig struct {
	Backend       string // "local", "s3" or "gcs"
	Bucket        string
	LocalDir      string
	PublicBaseURL string
	// PublicBaseURLExplicit is false when PublicBaseURL is the local default.
	PublicBaseURLExplicit bool
	S3Region              string
	S3Prefix              string
}

type OCRConfig struct {
	Engine         string // "ocrspace", "vision" or "tesseract"
	ProviderURL    string
	APIKey         string
	Language       string
	EngineVariant  string
	VisionLanguage string
	Timeout        time.Duration

	// Where the ingestion pipeline reaches the extract-text function.
	ProxyURL string
	ProxyKey string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	SampleRatio float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")
	_, publicBaseSet := os.LookupEnv("STORAGE_PUBLIC_BASE_URL")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			CatalogTopic:       getEnv("CATALOG_TOPIC_NAME", "CATALOG_EVENTS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogSQL:     getEnv("DB_LOG_SQL", "false") == "true",
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", "default_secret"),
			TokenTTL:        getEnvAsDuration("JWT_TTL", 24*time.Hour),
			SessionBackend:  getEnv("SESSION_BACKEND", "memory"),
			SessionKeySpace: getEnv("SESSION_KEY_PREFIX", "session:"),
		},
		Storage: StorageConfig{
			Backend:               getEnv("STORAGE_BACKEND", "local"),
			Bucket:                getEnv("STORAGE_BUCKET", "note-images"),
			LocalDir:              getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicBaseURL:         getEnv("STORAGE_PUBLIC_BASE_URL", baseURL+"/uploads"),
			PublicBaseURLExplicit: publicBaseSet,
			S3Region:              getEnv("STORAGE_S3_REGION", ""),
			S3Prefix:              getEnv("STORAGE_S3_PREFIX", ""),
		},
		OCR: OCRConfig{
			Engine:         getEnv("OCR_ENGINE", "ocrspace"),
			ProviderURL:    getEnv("OCR_SPACE_URL", "https://api.ocr.space/parse/image"),
			APIKey:         getEnv("OCR_SPACE_API_KEY", "helloworld"),
			Language:       getEnv("OCR_LANGUAGE", "spa"),
			EngineVariant:  getEnv("OCR_SPACE_ENGINE", "2"),
			VisionLanguage: getEnv("OCR_VISION_LANGUAGE_HINT", "es"),
			Timeout:        getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
			ProxyURL:       getEnv("OCR_PROXY_URL", baseURL+"/functions/v1/extract-text"),
			ProxyKey:       getEnv("OCR_PROXY_KEY", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			ServiceName: getEnv("OTEL_SERVICE_NAME", "notes-repository-backend"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
