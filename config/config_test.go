package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var configKeys = []string{
	"SERVER_PORT", "PUBLIC_BASE_URL", "DATA_DIR", "METADATA_FILE", "PREVIEW_DIR",
	"PREVIEW_MANIFEST", "CACHE_TTL_SEC", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
	"REDIS_DB", "CORS_ALLOWED_ORIGINS", "WS_POLL_INTERVAL_MS", "LOG_LEVEL",
}

func clearEnv() {
	for _, key := range configKeys {
		os.Unsetenv(key)
	}
}

func TestMetadataPath(t *testing.T) {
	d := DataConfig{Dir: "datos", MetadataFile: "Metadatos.csv"}
	if got, want := d.MetadataPath(), filepath.Join("datos", "Metadatos.csv"); got != want {
		t.Errorf("MetadataPath() = %q, want %q", got, want)
	}

	abs := filepath.Join(string(filepath.Separator), "srv", "meta.csv")
	d.MetadataFile = abs
	if got := d.MetadataPath(); got != abs {
		t.Errorf("MetadataPath() = %q, want %q", got, abs)
	}
}

func TestRedisConfig(t *testing.T) {
	r := RedisConfig{Port: 6379}
	if r.Enabled() {
		t.Error("Enabled() should be false without a host")
	}
	r.Host = "cache.local"
	if !r.Enabled() {
		t.Error("Enabled() should be true with a host")
	}
	if got := r.Addr(); got != "cache.local:6379" {
		t.Errorf("Addr() = %q, want %q", got, "cache.local:6379")
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}

	os.Setenv("TEST_CONFIG_VAR", "custom")
	defer os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 8080 {
			t.Errorf("getIntEnv() = %d, want %d", got, 8080)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "9090")
		defer os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("getIntEnv() = %d, want %d", got, 9090)
		}
	})

	t.Run("error on invalid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "not_int")
		defer os.Unsetenv("TEST_INT_VAR")
		if _, err := getIntEnv("TEST_INT_VAR", 8080); err == nil {
			t.Error("expected error for invalid int value")
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.PublicBaseURL != "http://localhost:8080" {
		t.Errorf("Server.PublicBaseURL = %q", cfg.Server.PublicBaseURL)
	}
	if cfg.Data.Dir != "datos" {
		t.Errorf("Data.Dir = %q, want %q", cfg.Data.Dir, "datos")
	}
	if cfg.Data.MetadataFile != "Metadatos.csv" {
		t.Errorf("Data.MetadataFile = %q, want %q", cfg.Data.MetadataFile, "Metadatos.csv")
	}
	if cfg.Data.PreviewDir != "gifs" {
		t.Errorf("Data.PreviewDir = %q, want %q", cfg.Data.PreviewDir, "gifs")
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled by default")
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want 6379", cfg.Redis.Port)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
	if cfg.WS.PollInterval != 2*time.Second {
		t.Errorf("WS.PollInterval = %v, want 2s", cfg.WS.PollInterval)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadConfigCustom(t *testing.T) {
	clearEnv()
	os.Setenv("SERVER_PORT", "3000")
	os.Setenv("DATA_DIR", "/srv/aforo")
	os.Setenv("REDIS_HOST", "redis")
	os.Setenv("CACHE_TTL_SEC", "60")
	os.Setenv("LOG_LEVEL", "debug")
	defer clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.PublicBaseURL != "http://localhost:3000" {
		t.Errorf("Server.PublicBaseURL = %q", cfg.Server.PublicBaseURL)
	}
	if got, want := cfg.Data.MetadataPath(), filepath.Join("/srv/aforo", "Metadatos.csv"); got != want {
		t.Errorf("MetadataPath() = %q, want %q", got, want)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis should be enabled when REDIS_HOST is set")
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("Cache.TTL = %v, want 1m", cfg.Cache.TTL)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SERVER_PORT", "invalid"},
		{"CACHE_TTL_SEC", "soon"},
		{"REDIS_PORT", "x"},
		{"WS_POLL_INTERVAL_MS", "0"},
		{"LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv()
			os.Setenv(tt.key, tt.value)
			defer clearEnv()

			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
