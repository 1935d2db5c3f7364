// Package httpserver is the localhost facade the storefront pages talk
// to. It plays the role the page event handlers played: every request
// calls into the state managers and renders what they return. The remote
// backend is never exposed through here except where a page genuinely
// proxied it (login, tracking, checkout).
package httpserver

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *sql.DB
}

// New builds a Server for the given storefront origins.
func New(addr string, logger *log.Logger, db *sql.DB, deps Deps, origins []string) (*Server, error) {
	router := buildRouter(logger, db, deps, origins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
