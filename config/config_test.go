package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("SERVER_ADDR")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("MAX_AUDIO_UPLOAD_MB")
	os.Unsetenv("MAX_IMAGE_UPLOAD_MB")

	cfg := Load()

	if cfg.StoreBackend != StoreBackendMemory {
		t.Errorf("Expected default store backend %q, got %q", StoreBackendMemory, cfg.StoreBackend)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("Expected default server addr :8080, got %q", cfg.ServerAddr)
	}
	if cfg.MaxAudioUploadSize != 50<<20 {
		t.Errorf("Expected 50MB audio cap, got %d", cfg.MaxAudioUploadSize)
	}
	if cfg.MaxImageUploadSize != 5<<20 {
		t.Errorf("Expected 5MB image cap, got %d", cfg.MaxImageUploadSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", StoreBackendMySQL)
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/echofm/server.log")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	if cfg.StoreBackend != StoreBackendMySQL {
		t.Errorf("Expected store backend mysql, got %q", cfg.StoreBackend)
	}
	if cfg.ServerAddr != ":9090" {
		t.Errorf("Expected server addr :9090, got %q", cfg.ServerAddr)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("Expected redis db 3, got %d", cfg.RedisDB)
	}
	if !cfg.CacheEnabled {
		t.Error("Expected caching enabled")
	}
	if !cfg.MinioUseSSL {
		t.Error("Expected MinIO SSL enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.LogFile != "/var/log/echofm/server.log" {
		t.Errorf("Expected log file override, got %q", cfg.LogFile)
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	if cfg.RedisDB != 0 {
		t.Errorf("Expected malformed REDIS_DB to fall back to 0, got %d", cfg.RedisDB)
	}
}
