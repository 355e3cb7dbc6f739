package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"HOST", "PORT", "REQUEST_TIMEOUT", "CORS_ORIGINS", "RATE_LIMIT_RPM",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_SPEECH_MODEL",
	"OPENAI_VOICE", "OPENAI_VOICES", "SPEECH_SPEED",
	"TRANSLATION_CONTEXT", "TRANSLATION_STYLE",
	"PROVIDER_RPM", "PROVIDER_BURST", "MAX_RETRIES",
	"CACHE_TTL", "REDIS_URL", "CACHE_SNAPSHOT",
	"STORAGE_BACKEND", "STATIC_DIR", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"S3_BUCKET", "S3_REGION", "S3_SECURE", "S3_PUBLIC_URL", "S3_PREFIX",
	"LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable the config reads. Empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %s, want :8080", cfg.Addr())
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %s, want gpt-4o-mini", cfg.OpenAIModel)
	}
	if cfg.OpenAIVoice != "alloy" {
		t.Errorf("OpenAIVoice = %s, want alloy", cfg.OpenAIVoice)
	}
	if cfg.CacheTTL != time.Hour || cfg.CacheTTLSeconds() != 3600 {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.StorageBackend != "dir" || cfg.StaticDir != "static" {
		t.Errorf("Storage = %s/%s, want dir/static", cfg.StorageBackend, cfg.StaticDir)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if !cfg.S3Secure {
		t.Error("S3Secure should default to true")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("Logging = %s/%s, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OPENAI_VOICES", "ja=shimmer, es = nova,broken")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("S3_SECURE", "false")
	t.Setenv("SPEECH_SPEED", "1.5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %s, want 127.0.0.1:9090", cfg.Addr())
	}
	if strings.Join(cfg.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if len(cfg.OpenAIVoices) != 2 || cfg.OpenAIVoices["es"] != "nova" || cfg.OpenAIVoices["ja"] != "shimmer" {
		t.Errorf("OpenAIVoices = %v", cfg.OpenAIVoices)
	}
	if cfg.CacheTTLSeconds() != 90 {
		t.Errorf("CacheTTLSeconds() = %d, want 90", cfg.CacheTTLSeconds())
	}
	if cfg.S3Secure {
		t.Error("S3Secure should be false")
	}
	if cfg.SpeechSpeed != 1.5 {
		t.Errorf("SpeechSpeed = %v, want 1.5", cfg.SpeechSpeed)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("Logging = %s/%s, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want default 8080", cfg.HTTPPort)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want default 1h", cfg.CacheTTL)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("OPENAI_MODEL")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=7070\nOPENAI_MODEL=gpt-4o\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("OPENAI_MODEL")
	})

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.HTTPPort != 7070 || cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("Expected values from env file, got port=%d model=%s", cfg.HTTPPort, cfg.OpenAIModel)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for missing env file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		clearEnv(t)
		return FromEnv()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.HTTPPort = 0 }, "PORT"},
		{"port too high", func(c *Config) { c.HTTPPort = 70000 }, "PORT"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
		{"negative rpm", func(c *Config) { c.ProviderRPM = -1 }, "PROVIDER_RPM"},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, "MAX_RETRIES"},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, "CACHE_TTL"},
		{"speed", func(c *Config) { c.SpeechSpeed = 5 }, "SPEECH_SPEED"},
		{"style", func(c *Config) { c.TranslationStyle = "pirate" }, "TRANSLATION_STYLE"},
		{"backend", func(c *Config) { c.StorageBackend = "ftp" }, "STORAGE_BACKEND"},
		{"dir without dir", func(c *Config) { c.StaticDir = "" }, "STATIC_DIR"},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = "s3"; c.S3Endpoint = "s3.local" }, "S3_BUCKET"},
		{"s3 complete", func(c *Config) { c.StorageBackend = "s3"; c.S3Endpoint = "s3.local"; c.S3Bucket = "tts" }, ""},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
