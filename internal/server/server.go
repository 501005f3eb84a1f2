package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"writing_challenge/internal/config"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
	baseCtx    context.Context
	timeouts   config.HTTPConfig
}

const (
	maxHeaderBytes           = 1 << 20 // 1 MB
	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

// New returns a Server using the given timeouts; zero values fall back to defaults.
// Every request context derives from ctx, so cancelling it ends long-lived
// requests such as websocket streams, which Shutdown does not wait for.
func New(ctx context.Context, timeouts config.HTTPConfig) *Server {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Server{baseCtx: ctx, timeouts: timeouts}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// newHTTPServer builds a configured *http.Server for the given address and handler.
func (s *Server) newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: orDefault(s.timeouts.ReadHeaderTimeout, defaultReadHeaderTimeout),
		WriteTimeout:      orDefault(s.timeouts.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:       orDefault(s.timeouts.IdleTimeout, defaultIdleTimeout),
		BaseContext:       func(net.Listener) context.Context { return s.baseCtx },
	}
}

// normalizeAddr accepts "8080" or ":8080".
func normalizeAddr(port string) string {
	if port == "" {
		return ""
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Run starts the HTTP server on the given port and blocks until it stops.
// A graceful Shutdown is not reported as an error.
func (s *Server) Run(port string, handler http.Handler) error {
	s.httpServer = s.newHTTPServer(normalizeAddr(port), handler)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
