package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoad_Defaults verifies an empty environment yields a valid development config.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.StorageBackend != "sqlite" || cfg.KeyPrefix != "talenttrack_" {
		t.Errorf("got %+v", cfg)
	}
	if cfg.UploadDelay != 2*time.Second || cfg.AnalysisDelay != 3*time.Second {
		t.Errorf("delays = %v/%v", cfg.UploadDelay, cfg.AnalysisDelay)
	}
	if cfg.ClientTTL != 24*time.Hour {
		t.Errorf("ClientTTL = %v", cfg.ClientTTL)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

// TestLoad_EnvOverrides verifies TALENTTRACK_ variables win over defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TALENTTRACK_ADDR", ":9090")
	t.Setenv("TALENTTRACK_STORAGE_BACKEND", "memory")
	t.Setenv("TALENTTRACK_UPLOAD_DELAY", "150ms")
	t.Setenv("TALENTTRACK_BCRYPT_COST", "4")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.StorageBackend != "memory" {
		t.Errorf("got addr=%q backend=%q", cfg.Addr, cfg.StorageBackend)
	}
	if cfg.UploadDelay != 150*time.Millisecond {
		t.Errorf("UploadDelay = %v", cfg.UploadDelay)
	}
	if cfg.BcryptCost != 4 {
		t.Errorf("BcryptCost = %d", cfg.BcryptCost)
	}
}

// TestLoad_ConfigFile verifies talenttrack.env is read from the directory.
func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "talenttrack.env"), []byte("LOG_LEVEL=debug\nCLIENT_TTL=1h\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.ClientTTL != time.Hour {
		t.Errorf("got level=%q ttl=%v", cfg.LogLevel, cfg.ClientTTL)
	}
}

// TestLoad_DotEnv verifies .env values reach the environment.
func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TALENTTRACK_REDIS_DB=3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TALENTTRACK_REDIS_DB") })

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
}

// TestValidate tests field constraints.
func TestValidate(t *testing.T) {
	valid, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.StorageBackend = "etcd" }, true},
		{"redis without addr", func(c *Config) { c.StorageBackend = "redis"; c.RedisAddr = "" }, true},
		{"redis with addr", func(c *Config) { c.StorageBackend = "redis"; c.RedisAddr = "localhost:6379" }, false},
		{"bcrypt too low", func(c *Config) { c.BcryptCost = 2 }, true},
		{"short csrf key", func(c *Config) { c.CSRFKey = "abcd" }, true},
		{"zero ttl", func(c *Config) { c.ClientTTL = 0 }, true},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidate_ProductionNeedsCSRFKey verifies production refuses to start without a key.
func TestValidate_ProductionNeedsCSRFKey(t *testing.T) {
	c, _ := Load(t.TempDir())
	c.Env = EnvProduction
	if err := c.Validate(); !errors.Is(err, ErrCSRFKeyRequired) {
		t.Errorf("got %v, want ErrCSRFKeyRequired", err)
	}
	c.CSRFKey = strings.Repeat("ab", 32)
	if err := c.Validate(); err != nil {
		t.Errorf("with key: %v", err)
	}
	key, err := c.CSRFKeyBytes()
	if err != nil || len(key) != 32 {
		t.Errorf("CSRFKeyBytes = %d bytes, %v", len(key), err)
	}
}

// TestNewLogger verifies production logs are JSON.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Env: EnvProduction, LogLevel: "info"}, &buf)
	logger.Info("auth_event", "event", "login_success")
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("not JSON: %q", buf.String())
	}
	if m["msg"] != "auth_event" || m["service"] != "talenttrack" {
		t.Errorf("got %v", m)
	}

	buf.Reset()
	logger = NewLogger(Config{Env: EnvDevelopment, LogLevel: "warn"}, &buf)
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}
