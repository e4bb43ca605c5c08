package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	RedisAddr     string
	RedisPassword string

	AdminJWTSecret string
	BotSharedSecret string

	CORSAllowedOrigins []string

	WhatsAppAccessToken   string
	WhatsAppPhoneNumberID string
	WhatsAppVerifyToken   string
	WhatsAppAPIBaseURL    string
	WhatsAppSendTimeout   time.Duration

	// AutoCreateMissingClient controls whether scheduling a visit for an
	// unknown client creates a stub client instead of rejecting the message.
	AutoCreateMissingClient bool

	// DefaultAppointmentHour is used when a scheduling message carries no time.
	DefaultAppointmentHour int

	TranscriptMaxMessages int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		AdminJWTSecret:  getEnv("ADMIN_JWT_SECRET", ""),
		BotSharedSecret: getEnv("BOT_SHARED_SECRET", ""),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		WhatsAppAccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppVerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", ""),
		WhatsAppAPIBaseURL:    getEnv("WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v18.0"),
		WhatsAppSendTimeout:   getEnvAsDuration("WHATSAPP_SEND_TIMEOUT", 10*time.Second),

		AutoCreateMissingClient: getEnvAsBool("AUTO_CREATE_MISSING_CLIENT", true),
		DefaultAppointmentHour:  getEnvAsInt("DEFAULT_APPOINTMENT_HOUR", 9),

		TranscriptMaxMessages: getEnvAsInt("TRANSCRIPT_MAX_MESSAGES", 250),
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
