package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/healthwallet")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("BLOB_ENDPOINT", "localhost:9000")
	t.Setenv("BLOB_ACCESS_KEY", "minioadmin")
	t.Setenv("BLOB_SECRET_KEY", "minioadmin")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("AppPort = %d, want 8080", cfg.AppPort)
	}
	if cfg.TokenValidity != 24*time.Hour {
		t.Errorf("TokenValidity = %v, want 24h", cfg.TokenValidity)
	}
	if cfg.StoreTimeout != 3*time.Second {
		t.Errorf("StoreTimeout = %v, want 3s", cfg.StoreTimeout)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode by default")
	}
	if cfg.BlobBucket != "report-uploads" {
		t.Errorf("BlobBucket = %q, want report-uploads", cfg.BlobBucket)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	// t.Setenv registers the restore; Unsetenv makes the variable truly absent.
	for _, key := range []string{
		"DATABASE_URL", "REDIS_URL", "TOKEN_SECRET",
		"BLOB_ENDPOINT", "BLOB_ACCESS_KEY", "BLOB_SECRET_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error when required variables are missing")
	}
}
