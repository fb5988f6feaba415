package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/acronis/go-scoop/internal/pkg/slogex"
	"github.com/acronis/go-scoop/pkg/manifest"
	"github.com/acronis/go-scoop/pkg/metrics"
)

const (
	RouteLicense = "license"
	RouteVersion = "version"

	shutdownTimeout = 10 * time.Second
)

// Service answers badge lookups.
type Service interface {
	Version(ctx context.Context, app, bucket string) (string, error)
	Licenses(ctx context.Context, app, bucket string) (manifest.LicenseList, error)
}

type Option func(*Server)

// WithMetrics records requests and exposes /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

type Server struct {
	service Service
	metrics *metrics.Metrics
	router  chi.Router
}

func New(svc Service, opts ...Option) *Server {
	s := &Server{service: svc}
	for _, o := range opts {
		o(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Route("/scoop", func(r chi.Router) {
		r.Get("/l/{app}", s.instrument(RouteLicense, s.handleLicense))
		r.Get("/v/{app}", s.instrument(RouteVersion, s.handleVersion))
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	if s.metrics == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next(ww, r)
		s.metrics.ObserveRequest(route, ww.Status(), time.Since(start))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("Served",
			slog.Any("request", r),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slogex.Status(ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
