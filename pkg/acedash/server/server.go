// Package server exposes the chart service over HTTP: the JSON API used by
// the dashboard front end, Prometheus metrics and the static client bundle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/config"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// Service is the part of acedash.Service the API needs.
type Service interface {
	Generate(ctx context.Context, chartID string, window []calendar.MonthKey, mode models.AggregationMode) (*models.ChartResult, error)
	TimeOptions(ctx context.Context) (*models.TimeOptions, error)
	Window(ctx context.Context, mode models.TimeMode, selections []string) ([]calendar.MonthKey, error)
}

// Flusher empties a table cache.
type Flusher interface {
	Flush()
}

// Options carries the collaborators of a Server.
type Options struct {
	// Cache is flushed by POST /api/clear-cache. May be nil.
	Cache Flusher
	// Registry collects request metrics and backs /metrics. If nil, a
	// private registry is used.
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// Server serves the dashboard API.
type Server struct {
	cfg      config.ServerConfig
	svc      Service
	cache    Flusher
	registry *prometheus.Registry
	metrics  *httpMetrics
	limiter  *clientLimiter
	log      *zap.Logger
	handler  http.Handler
}

// New creates a Server and registers its metrics.
func New(cfg config.ServerConfig, svc Service, opts Options) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("server: nil service")
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("server: max body bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("server: rate limit needs positive requests and window")
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := newHTTPMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		svc:      svc,
		cache:    opts.Cache,
		registry: reg,
		metrics:  metrics,
		limiter:  newClientLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, time.Now),
		log:      log,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/time-options", s.handleTimeOptions)
	mux.HandleFunc("POST /api/chart-data", s.handleChartData)
	mux.HandleFunc("POST /api/clear-cache", s.handleClearCache)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.Handle("/", s.staticHandler())

	var h http.Handler = gzhttp.GzipHandler(mux)
	h = s.rateLimit(h)
	if s.cfg.CORS {
		h = cors(h)
	}
	h = securityHeaders(h)
	h = s.recoverer(h)
	h = s.accessLog(h)
	return requestID(h)
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. In-flight requests get
// the configured shutdown timeout to complete.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(s.log),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("server shutting down", zap.Duration("timeout", timeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
