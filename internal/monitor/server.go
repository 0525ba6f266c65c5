package monitor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server runs the monitor's HTTP endpoints.
type Server struct {
	monitor *Monitor
	http    *http.Server
	ln      net.Listener
	cancel  context.CancelFunc
}

// NewServer prepares a server on addr. Nothing listens until Start.
func NewServer(addr string, m *Monitor, cfg RouterConfig) *Server {
	return &Server{
		monitor: m,
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(m, cfg),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start binds the address and serves in the background until ctx is done
// or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("monitor: listen %s: %w", s.http.Addr, err)
	}
	s.ln = ln

	ctx, s.cancel = context.WithCancel(ctx)
	go s.monitor.hub.Run(ctx)
	go func() {
		s.monitor.logger.Info("monitor listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.monitor.logger.Error("monitor server", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.http.Shutdown(shutdownCtx)
	}()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.http.Addr
}

// Shutdown stops accepting requests and closes the live feed.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.http.Shutdown(ctx)
}
