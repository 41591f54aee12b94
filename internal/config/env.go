package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	SslCertPath    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	Port           string
	LogMode        string
	CorsOrigins    []string
	EngineProvider string
	EngineModel    string
	EngineBaseURL  string
	EngineTemp     float64
	EngineTimeout  time.Duration
	OpenAIAPIKey   string
	GeminiAPIKey   string
	SecretName     string
	SecretKeyField string
	AwsRegion      string
	AwsAccessKey   string
	AwsSecretKey   string
	ArchiveBucket  string
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LoadConfig loads the environment variables and returns the config.
// A missing engine key is not an error here; it is reported per request.
func LoadConfig() (*Config, error) {

	_ = godotenv.Load()

	maxOpen, err := getEnvInt("DB_MAX_OPEN_CONNS", 20)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getEnvInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, err
	}
	timeoutSec, err := getEnvInt("ENGINE_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	temp, err := getEnvFloat("ENGINE_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SslCertPath:    getEnv("SSL_CERT_PATH", ""),
		DBMaxOpenConns: maxOpen,
		DBMaxIdleConns: maxIdle,
		Port:           getEnv("PORT", "8000"),
		LogMode:        getEnv("LOG_MODE", "dev"),
		CorsOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		EngineProvider: strings.ToLower(getEnv("ENGINE_PROVIDER", ProviderOpenAI)),
		EngineModel:    getEnv("ENGINE_MODEL", ""),
		EngineBaseURL:  strings.TrimRight(getEnv("ENGINE_BASE_URL", "https://api.openai.com"), "/"),
		EngineTemp:     temp,
		EngineTimeout:  time.Duration(timeoutSec) * time.Second,
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		SecretName:     getEnv("SECRET_NAME", ""),
		SecretKeyField: getEnv("SECRET_KEY_FIELD", "OPENAI_API_KEY"),
		AwsRegion:      getEnv("AWS_REGION", "us-east-2"),
		AwsAccessKey:   getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:   getEnv("AWS_SECRET_KEY", ""),
		ArchiveBucket:  getEnv("ARCHIVE_BUCKET", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	switch cfg.EngineProvider {
	case ProviderOpenAI:
		if cfg.EngineModel == "" {
			cfg.EngineModel = "gpt-4"
		}
	case ProviderGemini:
		if cfg.EngineModel == "" {
			cfg.EngineModel = "gemini-1.5-flash"
		}
	default:
		return nil, fmt.Errorf("ENGINE_PROVIDER %q is not supported", cfg.EngineProvider)
	}
	if cfg.EngineTimeout <= 0 {
		return nil, fmt.Errorf("ENGINE_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

// Helper to read environment variables with a default fallback.
// Blank values count as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an int", key, v)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a number", key, v)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
