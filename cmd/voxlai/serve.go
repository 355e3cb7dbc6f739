package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZaguanLabs/voxlai"
	"github.com/ZaguanLabs/voxlai/config"
	"github.com/ZaguanLabs/voxlai/logging"
	"go.uber.org/zap"
)

// serveFlags are command-line overrides for the environment configuration.
type serveFlags struct {
	envFile       string
	port          int
	host          string
	staticDir     string
	redisURL      string
	cacheSnapshot string
	logLevel      string
	logFormat     string
	mock          bool
}

func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &serveFlags{}
	fs.StringVar(&f.envFile, "env-file", "", "Load environment from this file (default: .env if present)")
	fs.IntVar(&f.port, "port", 0, "HTTP port (default: PORT env or 8080)")
	fs.StringVar(&f.host, "host", "", "Listen host (default: HOST env, all interfaces)")
	fs.StringVar(&f.staticDir, "static-dir", "", "Directory for generated audio (default: STATIC_DIR env or static)")
	fs.StringVar(&f.redisURL, "redis-url", "", "Redis URL for the shared cache (default: REDIS_URL env)")
	fs.StringVar(&f.cacheSnapshot, "cache-snapshot", "", "Load and save the in-memory cache at this path")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: text, json")
	fs.BoolVar(&f.mock, "mock", false, "Use the mock provider instead of OpenAI")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// loadServeConfig reads the environment and applies flag overrides.
func loadServeConfig(f *serveFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.envFile != "" {
		cfg, err = config.LoadFile(f.envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.port != 0 {
		cfg.HTTPPort = f.port
	}
	if f.host != "" {
		cfg.Host = f.host
	}
	if f.staticDir != "" {
		cfg.StaticDir = f.staticDir
	}
	if f.redisURL != "" {
		cfg.RedisURL = f.redisURL
	}
	if f.cacheSnapshot != "" {
		cfg.CacheSnapshot = f.cacheSnapshot
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(args []string, stdout, stderr io.Writer) error {
	f, err := parseServeFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadServeConfig(f)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger, f.mock)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			logger.Error("shutdown cleanup failed", zap.Error(err))
		}
	}()

	logger.Info("voxlai starting",
		zap.String("version", voxlai.FullVersion()),
		zap.String("addr", cfg.Addr()),
		zap.String("storage", cfg.StorageBackend),
		zap.Bool("redis", cfg.RedisURL != ""),
		zap.Bool("mock", f.mock))

	if a.memory != nil && cfg.CacheTTL > 0 {
		go pruneLoop(ctx, a, cfg.CacheTTL)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// pruneLoop drops expired in-memory cache entries once per TTL.
func pruneLoop(ctx context.Context, a *app, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.memory.Prune(); n > 0 {
				a.logger.Debug("pruned cache entries", zap.Int("count", n))
			}
		}
	}
}
