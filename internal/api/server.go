package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"littlelemon/internal/core/app"
	"littlelemon/internal/core/ports"
	"littlelemon/internal/shared/util"

	"github.com/getkin/kin-openapi/routers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports component status for /health.
type HealthChecker interface {
	Check(ctx context.Context) app.HealthStatus
}

type Options struct {
	Address        string
	RateLimit      float64
	Burst          int
	RequestTimeout time.Duration
}

// Server exposes the menu read path over HTTP.
type Server struct {
	addr           string
	menu           ports.MenuService
	health         HealthChecker
	limiters       *util.LimiterRegistry
	contractRouter routers.Router
	requestTimeout time.Duration
	logger         *slog.Logger

	handler  http.Handler
	server   *http.Server
	listener net.Listener
}

func NewServer(ctx context.Context, opts Options, menuSvc ports.MenuService, health HealthChecker) (*Server, error) {
	if menuSvc == nil {
		return nil, fmt.Errorf("menu service is required")
	}
	_, contractRouter, err := loadContract(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:           opts.Address,
		menu:           menuSvc,
		health:         health,
		limiters:       util.NewLimiterRegistry(opts.RateLimit, opts.Burst, limiterIdleTTL),
		contractRouter: contractRouter,
		requestTimeout: opts.RequestTimeout,
		logger:         slog.Default().With("component", "api"),
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware, s.rateLimitMiddleware, s.validationMiddleware, s.timeoutMiddleware)

	r.HandleFunc("/menu", s.handleListMenu).Methods(http.MethodGet)
	r.HandleFunc("/menu/categories", s.handleCategories).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/openapi.yaml", s.handleContract).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the bound address once Start has returned.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("menu api starting", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("menu api failed", "error", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.limiters.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
