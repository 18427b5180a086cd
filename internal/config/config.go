package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// Upstream collaborators
	ParishAPIBaseURL   string // black-box parish data source; empty = built-in seed index only
	ChatRelayURL       string // conversational endpoint behind the assistant widget
	AppointmentSinkURL string // fire-and-forget appointment forwarding; empty = log only
	HTTPTimeout        time.Duration

	// Viewport / bounds coordination
	DebounceWindow  time.Duration // quiescence delay before a bounds fetch
	BoundsPrecision int           // decimal degrees kept when quantizing bounds

	// CORS
	AllowedOrigins []string
}

// Load loads environment variables and returns a Config struct
func Load() *Config {
	_ = godotenv.Load()

	debounceMs, _ := strconv.Atoi(getEnv("BOUNDS_DEBOUNCE_MS", "1000"))
	httpTimeoutSec, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "15"))

	// Parse allowed origins from env (comma-separated)
	allowedOrigins := strings.Split(
		getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		",",
	)

	return &Config{
		Port:               getEnv("APP_PORT", "8780"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		ParishAPIBaseURL:   getEnv("PARISH_API_BASE_URL", ""),
		ChatRelayURL:       getEnv("CHAT_RELAY_URL", ""),
		AppointmentSinkURL: getEnv("APPOINTMENT_SINK_URL", ""),
		HTTPTimeout:        time.Duration(httpTimeoutSec) * time.Second,
		DebounceWindow:     time.Duration(debounceMs) * time.Millisecond,
		BoundsPrecision:    getEnvAsInt("BOUNDS_PRECISION", 4),
		AllowedOrigins:     allowedOrigins,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("invalid int for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}
