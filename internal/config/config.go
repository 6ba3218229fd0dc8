package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
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

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OCRConfig controls the Tesseract fallback used for scanned documents.
type OCRConfig struct {
	Enabled   bool
	Languages []string
	DPI       int
}

// AnalyzerConfig holds analysis tuning and the optional OpenAI-backed summarizer.
type AnalyzerConfig struct {
	SummarySentences int
	AIEnabled        bool
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
}

// AuthConfig holds JWT signing and password hashing settings, plus the
// optional owner account seeded at startup. The owner role cannot be
// obtained through registration.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLMin   int
	BcryptCost    int
	OwnerEmail    string
	OwnerPassword string
}

// Validate rejects settings that would make issued tokens forgeable.
func (a AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	OCR      OCRConfig
	Analyzer AnalyzerConfig
	Auth     AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
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
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		OCR: OCRConfig{
			Enabled:   getEnvBool("OCR_ENABLED", true),
			Languages: getEnvList("OCR_LANGUAGES", []string{"eng"}),
			DPI:       getEnvInt("OCR_DPI", 300),
		},
		Analyzer: AnalyzerConfig{
			SummarySentences: getEnvInt("ANALYZER_SUMMARY_SENTENCES", 4),
			AIEnabled:        getEnvBool("ANALYZER_AI_ENABLED", false),
			OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLMin:   getEnvInt("JWT_TTL_MIN", 720),
			BcryptCost:    getEnvInt("BCRYPT_COST", 10),
			OwnerEmail:    getEnv("OWNER_EMAIL", ""),
			OwnerPassword: getEnv("OWNER_PASSWORD", ""),
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

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
