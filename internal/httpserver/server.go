package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"retailstore/backend/internal/config"
	authusecase "retailstore/backend/internal/usecase/auth"
	customerusecase "retailstore/backend/internal/usecase/customer"

	"go.uber.org/zap"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer      *http.Server
	router          *http.ServeMux
	authService     *authusecase.Service
	customerService *customerusecase.Service
	logger          *zap.Logger
	addr            string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, logger *zap.Logger, authService *authusecase.Service, customerService *customerusecase.Service) *Server {
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	handler := withRequestID(withLogging(withCORS(mux, cfg.AllowedOrigins), logger))

	srv := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
		},
		router:          mux,
		authService:     authService,
		customerService: customerService,
		logger:          logger,
		addr:            addr,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
