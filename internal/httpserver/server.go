// Package httpserver exposes the dashboard data set and incident analysis
// over a JSON HTTP API.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thobs40/LLM-Rights-Monitor/internal/metrics"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
)

// Options configures optional Server dependencies.
type Options struct {
	// Gatherer backs GET /metrics; defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server provides an HTTP API over a model.Provider.
type Server struct {
	addr      string
	provider  model.Provider
	analyzer  rca.Analyzer
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, provider model.Provider, analyzer rca.Analyzer, opts Options) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		provider:  provider,
		analyzer:  analyzer,
		gatherer:  opts.Gatherer,
		logger:    opts.Logger.With("component", "httpserver"),
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the gin engine with every API route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/incidents", s.handleIncidents)
	api.GET("/incidents/:id", s.handleIncident)
	api.POST("/incidents/:id/analysis", s.handleAnalysis)
	api.GET("/metrics/series", s.handleMetricSeries)
	api.GET("/kpis", s.handleKPIs)
	api.GET("/quality-rules", s.handleQualityRules)
	api.GET("/quality-rules/:id/history", s.handleRuleHistory)
	api.POST("/quality-rules/rerun", s.handleRerun)
	api.GET("/telemetry", s.handleTelemetry)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server. In-flight analyses are
// cancelled through the base context.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// observe counts each request by its route template and status code.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.ObserveHTTPRequest(c.FullPath(), c.Writer.Status())
	}
}
