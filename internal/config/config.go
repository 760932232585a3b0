package config

import (
	"os"
	"strings"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	SessionSecret  string
	GinMode        string
	BaseURL        string
	AllowedOrigins []string
	GoogleKey      string
	GoogleSecret   string
	FacebookKey    string
	FacebookSecret string
}

func Load() *Config {
	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "squaduser"),
		DBPassword:     getEnv("DB_PASSWORD", "squadpassword"),
		DBName:         getEnv("DB_NAME", "squad_database"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "")),
		GoogleKey:      getEnv("GOOGLE_KEY", ""),
		GoogleSecret:   getEnv("GOOGLE_SECRET", ""),
		FacebookKey:    getEnv("FACEBOOK_KEY", ""),
		FacebookSecret: getEnv("FACEBOOK_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitOrigins(value string) []string {
	if value == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
