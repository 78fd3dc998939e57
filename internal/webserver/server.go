package webserver

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"textstats/internal/config"
	"textstats/internal/textstats"
)

const (
	HomePath       = "/"
	UploadPagePath = "/upload-page"
	UploadPath     = "/upload/"
	HealthPath     = "/healthz"
)

// Server exposes a textstats.Processor over HTTP
type Server struct {
	config    config.Config
	processor *textstats.Processor
	logger    *slog.Logger
	pages     *template.Template
	registry  *prometheus.Registry
	metrics   *Metrics
	handler   http.Handler
}

// New builds the server and its routing tree. The metrics registry is private
// to the server so several instances can coexist in one process.
func New(cfg config.Config, processor *textstats.Processor, logger *slog.Logger) (*Server, error) {
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	pages, err := template.ParseFS(wwwFiles, "www/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		config:    cfg,
		processor: processor,
		logger:    logger,
		pages:     pages,
		registry:  registry,
		metrics:   NewMetrics(registry),
	}

	var handler http.Handler = s.NewRouter()
	if cfg.Compression.Enabled {
		handler = CompressionMiddleware(handler)
	}

	handler = CORSMiddleware(handler)
	s.handler = LoggingMiddleware(logger)(handler)

	return s, nil
}

// NewRouter registers every route on a fresh router
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc(HomePath, s.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc(UploadPagePath, s.UploadPageHandler).Methods(http.MethodGet)
	r.HandleFunc(UploadPath, s.UploadInfoHandler).Methods(http.MethodGet)
	r.HandleFunc(UploadPath, s.UploadHandler).Methods(http.MethodPost)
	r.Handle("/upload", http.RedirectHandler(UploadPath, http.StatusTemporaryRedirect))
	r.HandleFunc(HealthPath, HealthHandler).Methods(http.MethodGet)

	if s.config.Metrics.Enabled {
		r.Handle(s.config.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			// CompressionMiddleware already negotiates the response encoding
			DisableCompression: true,
		})).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	return r
}

// ServeHTTP makes Server an http.Handler with all middleware applied
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe listens on the configured address until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Addr(), err)
	}

	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then shuts
// down gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)

	go func() {
		s.logger.Info("Server started", "addr", listener.Addr().String(), "encodings", s.processor.Encodings())
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", "timeout", s.config.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
