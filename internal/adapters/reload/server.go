// Package reload serves live reload notifications and rebuild metrics for
// watch mode.
package reload

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

const shutdownTimeout = 5 * time.Second

// Message kinds sent to browsers.
const (
	MessageCSS    = "css"
	MessageReload = "reload"
	MessageError  = "error"
)

// Message is the JSON payload broadcast on every rebuild.
type Message struct {
	Type   string `json:"type"`
	Bundle string `json:"bundle"`
	File   string `json:"file,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server implements ports.ReloadServer.
type Server struct {
	logger   ports.Logger
	upgrader websocket.Upgrader
	metrics  *metrics
	registry *prometheus.Registry
	router   chi.Router

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

// New creates a Server with its own metrics registry.
func New(logger ports.Logger) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Pages are served from any local dev origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		metrics:  newMetrics(registry),
		registry: registry,
		clients:  make(map[*websocket.Conn]struct{}),
	}

	r := chi.NewRouter()
	r.Get("/livereload", s.handleWebSocket)
	r.Get("/livereload.js", handleScript)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.router = r

	return s
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is canceled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}
	s.logger.Info("live reload listening on " + lis.Addr().String())
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, "live reload server failed")
	case <-ctx.Done():
	}

	s.closeClients()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "failed to shut down live reload server")
	}
	return nil
}

// Notify records the rebuild and broadcasts it to connected browsers.
func (s *Server) Notify(rebuild domain.Rebuild) {
	s.metrics.observe(rebuild)
	s.broadcast(messageFor(rebuild))
}

// ClientCount returns the number of connected browsers.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func messageFor(rebuild domain.Rebuild) Message {
	msg := Message{Bundle: rebuild.Bundle, File: rebuild.URL}
	switch {
	case rebuild.Err != nil:
		msg.Type = MessageError
		msg.Error = rebuild.Err.Error()
	case rebuild.Type == domain.AssetTypeCSS:
		msg.Type = MessageCSS
	default:
		msg.Type = MessageReload
	}
	return msg
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("live reload upgrade failed: " + err.Error())
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.metrics.clients.Set(float64(len(s.clients)))
	s.mu.Unlock()

	defer s.drop(conn)

	// Browsers never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error(zerr.Wrap(err, "failed to encode live reload message"))
		return
	}

	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.drop(conn)
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		_ = conn.Close()
	}
	s.metrics.clients.Set(float64(len(s.clients)))
	s.mu.Unlock()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, conn)
	}
	s.metrics.clients.Set(0)
}
