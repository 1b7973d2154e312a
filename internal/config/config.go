package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds server-level configuration read from the environment.
type Config struct {
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	HTTPPort     string
	JWTSecret    string
	OwnerUser    string
	OwnerPass    string
	SessionTTL   time.Duration
	MaxQuestions int
}

func Load() *Config {
	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "hirelens"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
		OwnerUser:    getEnv("OWNER_USERNAME", "admin"),
		OwnerPass:    getEnv("OWNER_PASSWORD", "password123"),
		SessionTTL:   getDurationEnv("SESSION_TTL", 30*time.Minute),
		MaxQuestions: getIntEnv("DEFAULT_MAX_QUESTIONS", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}
