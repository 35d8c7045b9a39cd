// Package server exposes the Telegram webhook and operational endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edgard/stickerbot/internal/sentry"
)

// UpdateProcessor handles a decoded update synchronously.
type UpdateProcessor interface {
	Process(ctx context.Context, update *models.Update) error
}

// Pinger reports storage readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the server.
type Options struct {
	Addr            string
	WebhookPath     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// Registry backs /metrics; nil disables the endpoint.
	Registry *prometheus.Registry
}

// Server is the HTTP front end.
type Server struct {
	opts      Options
	logger    *slog.Logger
	processor UpdateProcessor
	pinger    Pinger
	router    *gin.Engine
	http      *http.Server
}

// New builds the router and the underlying http.Server.
func New(opts Options, processor UpdateProcessor, pinger Pinger, logger *slog.Logger) *Server {
	log := logger.With("component", "http_server")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(RequestID())
	router.Use(Logger(log))

	s := &Server{
		opts:      opts,
		logger:    log,
		processor: processor,
		pinger:    pinger,
		router:    router,
	}

	router.POST(opts.WebhookPath, s.handleWebhook)
	router.GET("/healthz", s.handleHealth)
	router.HEAD("/healthz", s.handleHealth)
	router.GET("/ready", s.handleReady)
	if opts.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: opts.ReadTimeout,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.opts.Addr, "webhook_path", s.opts.WebhookPath)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received, stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped.")
	return nil
}

func (s *Server) handleWebhook(c *gin.Context) {
	var update models.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.WarnContext(c.Request.Context(), "Rejected malformed update", "error", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}

	if err := s.processor.Process(c.Request.Context(), &update); err != nil {
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
		_ = c.Error(err)
		// A non-2xx status makes Telegram redeliver the update.
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "update not processed"})
		return
	}

	c.Status(http.StatusOK)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "Readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
