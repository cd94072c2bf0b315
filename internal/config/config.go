package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string

	StorageRoot        string
	PublicBaseURL      string
	SignedURLSecret    string
	SignedURLTTL       time.Duration
	AllowedEmailDomain string

	QueryRetention       time.Duration
	QueryCleanupInterval time.Duration
	QueryCleanupLockTTL  time.Duration

	AdminSnapshotMaxAge time.Duration
}

// Load reads configuration from the environment, loading a .env file first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DBDriver:             getEnv("DB_DRIVER", "postgres"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "campus"),
		DBPassword:           getEnv("DB_PASSWORD", "campuspassword"),
		DBName:               getEnv("DB_NAME", "campuspreneurs"),
		DBSslMode:            getEnv("DB_SSLMODE", "disable"),
		RedisHost:            getEnv("REDIS_HOST", "localhost"),
		RedisPort:            getEnv("REDIS_PORT", "6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		SessionSecret:        getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		StorageRoot:          getEnv("STORAGE_ROOT", "./storage"),
		PublicBaseURL:        getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SignedURLSecret:      getEnv("SIGNED_URL_SECRET", "default-signing-key-change-me"),
		SignedURLTTL:         getEnvAsDuration("SIGNED_URL_TTL", 15*time.Minute),
		AllowedEmailDomain:   getEnv("ALLOWED_EMAIL_DOMAIN", "gcet.edu.in"),
		QueryRetention:       getEnvAsDuration("QUERY_RETENTION", 24*time.Hour),
		QueryCleanupInterval: getEnvAsDuration("QUERY_CLEANUP_INTERVAL", time.Hour),
		QueryCleanupLockTTL:  getEnvAsDuration("QUERY_CLEANUP_LOCK_TTL", 5*time.Minute),
		AdminSnapshotMaxAge:  getEnvAsDuration("ADMIN_SNAPSHOT_MAX_AGE", 5*time.Minute),
	}
}

// RedisAddr returns the host:port pair for Redis.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
