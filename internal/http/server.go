// README: HTTP server wrapper with graceful shutdown.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"wayfarer/internal/logger"
)

type Server struct {
	srv *http.Server
}

// NewServer wraps handler in an http.Server whose write budget covers the
// slowest allowed plan generation.
func NewServer(addr string, handler http.Handler, timeoutSeconds int) *Server {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      timeout + 10*time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// Start blocks until the listener stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	logger.Infof("http server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
