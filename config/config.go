package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Cache    CacheConfig
	Redis    RedisConfig
	CORS     CORSConfig
	WS       WSConfig
	LogLevel zerolog.Level
}

type ServerConfig struct {
	Port          int
	PublicBaseURL string
}

type DataConfig struct {
	Dir             string
	MetadataFile    string
	PreviewDir      string
	PreviewManifest string
}

// MetadataPath resolves MetadataFile against Dir unless it is already absolute.
func (d DataConfig) MetadataPath() string {
	if filepath.IsAbs(d.MetadataFile) {
		return d.MetadataFile
	}
	return filepath.Join(d.Dir, d.MetadataFile)
}

type CacheConfig struct {
	TTL time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CORSConfig struct {
	AllowedOrigins string
}

type WSConfig struct {
	PollInterval time.Duration
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	cacheTTL, err := getIntEnv("CACHE_TTL_SEC", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	pollMS, err := getIntEnv("WS_POLL_INTERVAL_MS", 2000)
	if err != nil {
		return nil, fmt.Errorf("invalid WS_POLL_INTERVAL_MS: %w", err)
	}
	if pollMS <= 0 {
		return nil, fmt.Errorf("invalid WS_POLL_INTERVAL_MS: must be positive, got %d", pollMS)
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          serverPort,
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", serverPort)),
		},
		Data: DataConfig{
			Dir:             getEnv("DATA_DIR", "datos"),
			MetadataFile:    getEnv("METADATA_FILE", "Metadatos.csv"),
			PreviewDir:      getEnv("PREVIEW_DIR", "gifs"),
			PreviewManifest: getEnv("PREVIEW_MANIFEST", ""),
		},
		Cache: CacheConfig{
			TTL: time.Duration(cacheTTL) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		WS: WSConfig{
			PollInterval: time.Duration(pollMS) * time.Millisecond,
		},
		LogLevel: level,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
