package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"goalpulse/internal/insights"
	"goalpulse/internal/store"
)

// AppConfig holds the complete application configuration. The storage
// backend is an explicit value here so the analytics engine never consults a
// global toggle to learn where its records live.
type AppConfig struct {
	Storage  store.Config
	Insights insights.Config

	DataPath    string
	HTTPAddr    string
	InsightsTTL time.Duration
}

// Load reads configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// Prefer the .env next to the binary, then fall back to the working
	// directory for development runs.
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env in working directory, relying on environment variables")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		log.Warn().Err(err).Str("path", dataPath).Msg("Failed to create data directory")
	}

	insightsTimeout, _ := strconv.Atoi(getEnv("INSIGHTS_TIMEOUT_SECONDS", "30"))
	ttlHours, _ := strconv.Atoi(getEnv("INSIGHTS_CACHE_TTL_HOURS", "168"))
	storeTimeout, _ := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "30"))

	cfg := &AppConfig{
		Storage: store.Config{
			Backend: getEnv("STORAGE_BACKEND", "sqlite"),
			Path:    getEnv("DB_PATH", filepath.Join(dataPath, "goalpulse.db")),
			BaseURL: getEnv("BACKEND_URL", ""),
			Token:   getEnv("BACKEND_TOKEN", ""),
			Timeout: time.Duration(storeTimeout) * time.Second,
		},
		Insights: insights.Config{
			URL:     getEnv("INSIGHTS_URL", ""),
			Token:   getEnv("INSIGHTS_TOKEN", ""),
			Timeout: time.Duration(insightsTimeout) * time.Second,
		},
		DataPath:    dataPath,
		HTTPAddr:    getEnv("HTTP_ADDR", ":8490"),
		InsightsTTL: time.Duration(ttlHours) * time.Hour,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
