package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrWeakAuthSecret     = errors.New("AUTH_SECRET must be at least 32 bytes")
)

// Config is the process configuration, read once at start-up.
type Config struct {
	HTTPAddr string

	AuthSecret   string
	SessionTTL   time.Duration
	CookieSecure bool
	BcryptCost   int

	// GeminiAPIKey may be empty; generation then fails per request with a
	// configuration error instead of blocking start-up.
	GeminiAPIKey     string
	GeminiModel      string
	GeminiAPIVersion string
	GeminiBaseURL    string
	GenerateTimeout  time.Duration
}

// Load reads the configuration from environment variables. Callers are
// expected to have loaded .env already.
func Load() (Config, error) {
	secret, err := mustEnv("AUTH_SECRET")
	if err != nil {
		return Config{}, err
	}
	if len(secret) < 32 {
		return Config{}, fmt.Errorf("%w: got %d bytes", ErrWeakAuthSecret, len(secret))
	}
	return Config{
		HTTPAddr:         getEnv("HTTP_ADDR", "0.0.0.0:8431"),
		AuthSecret:       secret,
		SessionTTL:       getDurationEnv("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:     getBoolEnv("COOKIE_SECURE", false),
		BcryptCost:       getIntEnv("BCRYPT_COST", 10),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiAPIVersion: getEnv("GEMINI_API_VERSION", "v1"),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),
		GenerateTimeout:  getDurationEnv("GENERATE_TIMEOUT", 60*time.Second),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
