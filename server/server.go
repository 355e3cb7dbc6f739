// Package server exposes the translate and synthesize endpoints used by the page.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZaguanLabs/voxlai"
	"github.com/ZaguanLabs/voxlai/cache"
	"github.com/ZaguanLabs/voxlai/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// Options configures the HTTP server.
type Options struct {
	Addr           string
	AudioDir       string        // directory of generated audio served under /static/ ("" disables)
	CORSOrigins    []string      // default: ["*"]
	RateLimitRPM   int           // requests per minute per client IP (0 disables)
	RequestTimeout time.Duration // default: 60s
	Logger         *zap.Logger
	CacheStats     func() cache.Stats // reported by /healthz when set
}

// Server handles HTTP requests for the translator page.
type Server struct {
	opts        Options
	logger      *zap.Logger
	translator  *voxlai.Translator
	synthesizer *voxlai.Synthesizer
	speaker     *voxlai.Speaker
	index       *web.Index
	router      chi.Router
	server      *http.Server
}

// New creates a server around a translator and synthesizer.
func New(translator *voxlai.Translator, synthesizer *voxlai.Synthesizer, index *web.Index, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	s := &Server{
		opts:        opts,
		logger:      opts.Logger,
		translator:  translator,
		synthesizer: synthesizer,
		speaker:     voxlai.NewSpeaker(translator, synthesizer),
		index:       index,
	}
	s.router = s.routes()

	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      opts.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
	})

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/static/*", http.StripPrefix("/static/", s.staticHandler()))
	if s.index != nil {
		r.Method(http.MethodGet, "/", s.index)
	}

	r.Group(func(r chi.Router) {
		if s.opts.RateLimitRPM > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimitRPM, time.Minute))
		}
		r.Use(middleware.Timeout(s.opts.RequestTimeout))

		r.Post("/translate", s.handleTranslate)
		r.Post("/synthesize", s.handleSynthesize)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
