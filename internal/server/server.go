// Package server implements the HTTP hosting surface: the command
// webhook, health check, metrics, and the middleware around them.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scpsl-tools/slbind/internal/command"
	"github.com/scpsl-tools/slbind/internal/config"
)

// Server holds the command router and the request-handling settings.
type Server struct {
	router     *command.Router
	authToken  string
	maxBody    int64
	trustProxy bool
}

// New creates a Server around the command router.
func New(router *command.Router, cfg *config.Config) *Server {
	return &Server{
		router:     router,
		authToken:  cfg.Server.AuthToken,
		maxBody:    cfg.Server.MaxBodySize,
		trustProxy: cfg.Server.TrustProxy,
	}
}

// Run configures the HTTP routes and returns the main handler.
func (s *Server) Run() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/command", AuthMiddleware(s.authToken, http.HandlerFunc(s.handleCommand)))
	mux.Handle("GET /metrics", AuthMiddleware(s.authToken, promhttp.Handler()))
	mux.Handle("GET /healthz", http.HandlerFunc(s.handleHealth))

	return s.LoggingMiddleware(mux)
}
