// Package server exposes the benchmark's Prometheus metrics over HTTP while
// the CLI, REPL or TUI is running.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/agbru/stratbench/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves /metrics and /healthz on a single address.
type Server struct {
	addr     string
	metrics  http.Handler
	security SecurityConfig
	logger   logging.Logger
	http     *http.Server
}

// New creates a server. metrics is typically metrics.Recorder.Handler().
func New(addr string, metrics http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger()
	}
	s := &Server{
		addr:     addr,
		metrics:  metrics,
		security: DefaultSecurityConfig(),
		logger:   logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.handleMetrics))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.handleHealth))
	s.http = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	return s
}

// Start listens on the configured address and serves in the background
// until ctx is done. It returns the bound address, which differs from the
// configured one when port 0 was requested.
func (s *Server) Start(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", err
	}
	bound := ln.Addr().String()
	s.logger.Info("metrics endpoint listening", logging.String("addr", bound))

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics endpoint stopped", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()
	return bound, nil
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
