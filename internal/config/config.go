package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client.
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Logger  LoggerConfig
	Stub    StubConfig
}

// AppConfig controls application level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig holds remote quiz API connection values.
type APIConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
}

// SessionConfig defines where the credential is persisted between runs.
type SessionConfig struct {
	TokenFile string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// StubConfig holds bind values for the development stub API.
type StubConfig struct {
	Host   string
	Port   string
	Secret string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	tokenFile := os.Getenv("QUIZ_TOKEN_FILE")
	if tokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		tokenFile = filepath.Join(home, ".quizcli", "token")
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "quiz-client"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:               getEnv("QUIZ_API_BASE_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			TokenFile: tokenFile,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stub: StubConfig{
			Host:   getEnv("QUIZ_STUB_HOST", "127.0.0.1"),
			Port:   getEnv("QUIZ_STUB_PORT", "8080"),
			Secret: getEnv("QUIZ_STUB_JWT_SECRET", "dev-secret"),
		},
	}

	return cfg, nil
}

// Addr returns the stub API bind address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
