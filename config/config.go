// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP settings
	Host           string
	HTTPPort       int
	RequestTimeout time.Duration
	CORSOrigins    []string
	RateLimitRPM   int // per client IP

	// OpenAI settings
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAISpeechModel string
	OpenAIVoice       string
	OpenAIVoices      map[string]string
	SpeechSpeed       float64

	// Translation settings
	TranslationContext string
	TranslationStyle   string

	// Provider resilience
	ProviderRPM   int
	ProviderBurst int
	MaxRetries    int

	// Cache settings
	CacheTTL      time.Duration
	RedisURL      string
	CacheSnapshot string

	// Storage settings
	StorageBackend string // "dir" or "s3"
	StaticDir      string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3Secure       bool
	S3PublicURL    string
	S3Prefix       string

	// Logging settings
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sane defaults.
// Values from a .env file in the working directory fill unset variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile is like Load but reads the given env files.
func LoadFile(paths ...string) (*Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv() *Config {
	return &Config{
		// HTTP settings
		Host:           getEnvString("HOST", ""),
		HTTPPort:       getEnvInt("PORT", 8080),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 60),

		// OpenAI settings
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       getEnvString("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAISpeechModel: getEnvString("OPENAI_SPEECH_MODEL", "tts-1"),
		OpenAIVoice:       getEnvString("OPENAI_VOICE", "alloy"),
		OpenAIVoices:      getEnvMap("OPENAI_VOICES"),
		SpeechSpeed:       getEnvFloat("SPEECH_SPEED", 1.0),

		// Translation settings
		TranslationContext: os.Getenv("TRANSLATION_CONTEXT"),
		TranslationStyle:   getEnvString("TRANSLATION_STYLE", "neutral"),

		// Provider resilience
		ProviderRPM:   getEnvInt("PROVIDER_RPM", 60),
		ProviderBurst: getEnvInt("PROVIDER_BURST", 10),
		MaxRetries:    getEnvInt("MAX_RETRIES", 3),

		// Cache settings
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Hour),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheSnapshot: os.Getenv("CACHE_SNAPSHOT"),

		// Storage settings
		StorageBackend: getEnvString("STORAGE_BACKEND", "dir"),
		StaticDir:      getEnvString("STATIC_DIR", "static"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Secure:       getEnvBool("S3_SECURE", true),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		S3Prefix:       getEnvString("S3_PREFIX", "audio/"),

		// Logging settings
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// CacheTTLSeconds returns the cache TTL in whole seconds.
func (c *Config) CacheTTLSeconds() int {
	return int(c.CacheTTL / time.Second)
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}

	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}

	if c.RateLimitRPM < 0 || c.ProviderRPM < 0 || c.ProviderBurst < 0 {
		return errors.New("RATE_LIMIT_RPM, PROVIDER_RPM and PROVIDER_BURST must be non-negative")
	}

	if c.MaxRetries < 0 {
		return errors.New("MAX_RETRIES must be non-negative")
	}

	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must be non-negative")
	}

	if c.SpeechSpeed < 0.25 || c.SpeechSpeed > 4.0 {
		return errors.New("SPEECH_SPEED must be between 0.25 and 4.0")
	}

	validStyles := map[string]bool{"formal": true, "neutral": true, "casual": true}
	if !validStyles[c.TranslationStyle] {
		return errors.New("TRANSLATION_STYLE must be one of: formal, neutral, casual")
	}

	switch c.StorageBackend {
	case "dir":
		if c.StaticDir == "" {
			return errors.New("STATIC_DIR is required for the dir storage backend")
		}
	case "s3":
		if c.S3Endpoint == "" || c.S3Bucket == "" {
			return errors.New("S3_ENDPOINT and S3_BUCKET are required for the s3 storage backend")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: dir, s3")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return errors.New("LOG_FORMAT must be one of: text, json")
	}

	return nil
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnvMap parses "k1=v1,k2=v2". Malformed pairs are skipped.
func getEnvMap(key string) map[string]string {
	m := make(map[string]string)
	for _, pair := range getEnvList(key, nil) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			m[k] = v
		}
	}
	return m
}
