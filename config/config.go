// Package config reads palettectl settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/color-game/palette/colors"
)

// Storage backends
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Store      string
	PaletteDir string
	PaletteKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	DatabaseType     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabaseName     string
	SSLMode          string

	SimilarityThreshold float64
	MetricsEnabled      bool
}

// Load reads .env if present, then the environment
func Load() (Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() (Config, error) {
	config := Config{
		Store:               getEnv("PALETTE_STORE", StoreFile),
		PaletteDir:          getEnv("PALETTE_DIR", ".palettes"),
		PaletteKey:          getEnv("PALETTE_KEY", "color-palette-collection"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisPrefix:         getEnv("REDIS_PREFIX", "palette"),
		DatabaseType:        getEnv("DB_TYPE", "postgres"),
		DatabaseUser:        getEnv("DB_USER", "postgres"),
		DatabasePassword:    getEnv("DB_PASSWORD", ""),
		DatabaseHost:        getEnv("DB_HOST", "localhost"),
		DatabaseName:        getEnv("DB_NAME", "colorgame"),
		SSLMode:             getEnv("SSL_MODE", "disable"),
		SimilarityThreshold: colors.ClampThreshold(getEnvFloat("SIMILARITY_THRESHOLD", colors.DefaultThreshold)),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", false),
	}

	switch config.Store {
	case StoreFile, StoreRedis, StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown PALETTE_STORE %q", config.Store)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatVal
}
