package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTSecret   = "dev-secret-change-in-production"
	placeholderAPIKey  = "your_gemini_api_key_here"
	defaultGeminiModel = "gemini-1.5-flash"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Port string
	Env  string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry time.Duration

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	NATSURL string

	CORSOrigins     []string
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// Load reads Config from the environment, applying defaults. It exits the
// process when production runs with the default JWT secret.
func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "satvic_diet_planner"),
		JWTSecret:       getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:       getEnvDuration("JWT_EXPIRY", 7*24*time.Hour),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		GeminiTimeout:   getEnvDuration("GEMINI_TIMEOUT", 60*time.Second),
		NATSURL:         getEnv("NATS_URL", ""),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// AIConfigured reports whether a usable Gemini key was supplied.
func (c Config) AIConfigured() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != placeholderAPIKey
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring malformed integer env var", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("ignoring malformed duration env var", "key", key, "value", v)
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
