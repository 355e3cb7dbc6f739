package main

import (
	"context"
	"fmt"

	"github.com/ZaguanLabs/voxlai"
	"github.com/ZaguanLabs/voxlai/cache"
	"github.com/ZaguanLabs/voxlai/config"
	"github.com/ZaguanLabs/voxlai/provider"
	"github.com/ZaguanLabs/voxlai/server"
	"github.com/ZaguanLabs/voxlai/storage"
	"github.com/ZaguanLabs/voxlai/web"
	"go.uber.org/zap"
)

// app is the wired server with the resources it owns.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	server *server.Server
	memory *cache.InMemoryCache // nil when Redis is used
	redis  *cache.RedisCache
}

// providers returns the translation and speech backends for cfg.
func providers(cfg *config.Config, useMock bool) (voxlai.AIProvider, voxlai.SpeechProvider, error) {
	if useMock {
		m := provider.NewMockProvider()
		return m, m, nil
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, nil, fmt.Errorf("OpenAI API key required (OPENAI_API_KEY env)")
	}

	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		SpeechModel: cfg.OpenAISpeechModel,
		Voice:       cfg.OpenAIVoice,
		Voices:      cfg.OpenAIVoices,
		Speed:       cfg.SpeechSpeed,
	})
	return p, p, nil
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, useMock bool) (*app, error) {
	translateBackend, speechBackend, err := providers(cfg, useMock)
	if err != nil {
		return nil, err
	}

	// One token bucket for both endpoints of the provider account.
	rlCfg := voxlai.RateLimitConfig{RequestsPerMinute: cfg.ProviderRPM, BurstSize: cfg.ProviderBurst}
	limiter := voxlai.NewRateLimiter(rlCfg)

	retryCfg := voxlai.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.MaxRetries

	translateProvider := voxlai.NewRetryableProvider(
		voxlai.NewRateLimitedProvider(translateBackend, rlCfg, limiter), retryCfg)
	speechProvider := voxlai.NewRetryableSpeechProvider(
		voxlai.NewRateLimitedSpeechProvider(speechBackend, rlCfg, limiter), retryCfg)

	a := &app{cfg: cfg, logger: logger}

	var c voxlai.TranslationCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL: cfg.RedisURL,
			TTL: cfg.CacheTTLSeconds(),
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		rc.OnError(func(op, key string, err error) {
			logger.Warn("redis cache error", zap.String("op", op), zap.String("key", key), zap.Error(err))
		})
		a.redis = rc
		c = rc
	} else {
		a.memory = cache.NewInMemoryCache(cfg.CacheTTLSeconds())
		if cfg.CacheSnapshot != "" {
			res, err := cache.LoadSnapshotFile(cfg.CacheSnapshot, a.memory)
			if err != nil {
				return nil, fmt.Errorf("loading cache snapshot: %w", err)
			}
			logger.Info("cache snapshot loaded",
				zap.String("path", cfg.CacheSnapshot),
				zap.Int("loaded", res.Loaded),
				zap.Int("failed", res.Failed))
		}
		c = a.memory
	}

	var store voxlai.AudioStore
	audioDir := ""
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Secure:    cfg.S3Secure,
			PublicURL: cfg.S3PublicURL,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			a.close()
			return nil, err
		}
	default:
		store = storage.NewDirStore(cfg.StaticDir, "/static")
		audioDir = cfg.StaticDir
	}

	translator := voxlai.NewTranslator(translateProvider,
		voxlai.WithCache(c),
		voxlai.WithModel(cfg.OpenAIModel),
		voxlai.WithContext(cfg.TranslationContext),
		voxlai.WithStyle(voxlai.TranslationStyle(cfg.TranslationStyle)),
	)
	synthesizer := voxlai.NewSynthesizer(speechProvider, store, voxlai.WithAudioCache(c))

	index, err := web.NewIndex(web.IndexConfig{})
	if err != nil {
		a.close()
		return nil, err
	}

	opts := server.Options{
		Addr:           cfg.Addr(),
		AudioDir:       audioDir,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPM:   cfg.RateLimitRPM,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
	}
	if a.memory != nil {
		opts.CacheStats = a.memory.Stats
	}

	a.server = server.New(translator, synthesizer, index, opts)
	return a, nil
}

// close saves the cache snapshot and releases connections.
func (a *app) close() error {
	var firstErr error
	if a.memory != nil && a.cfg.CacheSnapshot != "" {
		a.memory.Prune()
		if err := cache.SaveSnapshotFile(a.cfg.CacheSnapshot, a.memory); err != nil {
			firstErr = fmt.Errorf("saving cache snapshot: %w", err)
		} else {
			a.logger.Info("cache snapshot saved", zap.String("path", a.cfg.CacheSnapshot), zap.Int("entries", a.memory.Len()))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
