package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string
	Environment    string
	ReadTimeout    int
	WriteTimeout   int
	MapsDBPath     string
	ExportDir      string
	MigrationsPath string
	DocsPath       string
	CORSOrigins    []string
	// MaxRetries число попыток генерации с новым seed.
	MaxRetries int
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 10),
		MapsDBPath:     getEnv("MAPS_DB_PATH", "data/db/maps.db"),
		ExportDir:      getEnv("MAPS_EXPORT_DIR", "data/maps"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_init_maps.sql"),
		DocsPath:       getEnv("OPENAPI_PATH", "docs/mapd.openapi.yaml"),
		CORSOrigins:    getEnvAsList("CORS_ORIGINS"),
		MaxRetries:     getEnvAsInt("MAX_RETRIES", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
