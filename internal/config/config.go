package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	AppEnv         string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	BoltPath       string
	MigrationsPath string

	CSRFSecret   string
	WorkspaceTTL time.Duration

	// Mock login rule set
	DemoPassword   string
	SuspendedEmail string

	GeminiAPIKey string
	GeminiModel  string

	RollbarToken string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	LoginDelay     time.Duration
	PaymentDelay   time.Duration
	SyncDelay      time.Duration
	ExamDelay      time.Duration
	MessageDelay   time.Duration
	SuccessDisplay time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./schoolhub.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		BoltPath:       getEnv("BOLT_PATH", "./schoolhub.bolt"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""),

		CSRFSecret:   getEnv("CSRF_SECRET", "schoolhub-dev-secret"),
		WorkspaceTTL: getDuration("WORKSPACE_TTL", 24*time.Hour),

		DemoPassword:   getEnv("DEMO_PASSWORD", "password123"),
		SuspendedEmail: getEnv("SUSPENDED_EMAIL", "suspended@school.edu"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RollbarToken: getEnv("ROLLBAR_TOKEN", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SchoolHub"),

		LoginDelay:     getDuration("LOGIN_DELAY", 1500*time.Millisecond),
		PaymentDelay:   getDuration("PAYMENT_DELAY", 2*time.Second),
		SyncDelay:      getDuration("SYNC_DELAY", 2500*time.Millisecond),
		ExamDelay:      getDuration("EXAM_DELAY", 1500*time.Millisecond),
		MessageDelay:   getDuration("MESSAGE_DELAY", 1*time.Second),
		SuccessDisplay: getDuration("SUCCESS_DISPLAY", 3*time.Second),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go duration syntax ("1.5s") or plain milliseconds
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("Warning: invalid duration for %s: %q, using %s", key, value, defaultValue)
	return defaultValue
}
